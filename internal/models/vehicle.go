package models

type Vehicle struct {
	ID                uint    `gorm:"primaryKey" json:"id"`
	Name              string  `gorm:"size:120;uniqueIndex;not null" json:"name"`
	Model             string  `gorm:"size:120;not null" json:"model"`
	Manufacturer      string  `gorm:"size:120;not null" json:"manufacturer"`
	CostInCredits     *string `gorm:"size:40" json:"cost_in_credits"`
	Color             *string `gorm:"size:40" json:"color"`
	YearOfManufacture *string `gorm:"size:20" json:"year_of_manufacture"`
}

type VehicleResponse struct {
	ID                uint    `json:"id"`
	Name              string  `json:"name"`
	Model             string  `json:"model"`
	Manufacturer      string  `json:"manufacturer"`
	CostInCredits     *string `json:"cost_in_credits"`
	Color             *string `json:"color"`
	YearOfManufacture *string `json:"year_of_manufacture"`
}

func (v *Vehicle) ToResponse() VehicleResponse {
	return VehicleResponse{
		ID:                v.ID,
		Name:              v.Name,
		Model:             v.Model,
		Manufacturer:      v.Manufacturer,
		CostInCredits:     v.CostInCredits,
		Color:             v.Color,
		YearOfManufacture: v.YearOfManufacture,
	}
}
