package services

import (
	"go-echo-starwars/internal/models"
	"go-echo-starwars/internal/repository"

	"gorm.io/gorm"
)

type CreateVehicleInput struct {
	Name              string  `json:"name"`
	Model             string  `json:"model"`
	Manufacturer      string  `json:"manufacturer"`
	CostInCredits     *string `json:"cost_in_credits"`
	Color             *string `json:"color"`
	YearOfManufacture *string `json:"year_of_manufacture"`
}

type UpdateVehicleInput struct {
	Name              *string `json:"name"`
	Model             *string `json:"model"`
	Manufacturer      *string `json:"manufacturer"`
	CostInCredits     *string `json:"cost_in_credits"`
	Color             *string `json:"color"`
	YearOfManufacture *string `json:"year_of_manufacture"`
}

type VehicleService = CRUDService[models.Vehicle, CreateVehicleInput, UpdateVehicleInput]

func NewVehicleService(db *gorm.DB) *VehicleService {
	repo := repository.New[models.Vehicle](db,
		repository.WithCascade[models.Vehicle](favoritesOf("vehicle_id")),
	)
	return newCRUDService("vehicle", "Vehicle", repo, buildVehicle, vehicleChanges)
}

func buildVehicle(in CreateVehicleInput) (*models.Vehicle, error) {
	if in.Name == "" || in.Model == "" || in.Manufacturer == "" {
		return nil, missingFields()
	}
	return &models.Vehicle{
		Name:              in.Name,
		Model:             in.Model,
		Manufacturer:      in.Manufacturer,
		CostInCredits:     in.CostInCredits,
		Color:             in.Color,
		YearOfManufacture: in.YearOfManufacture,
	}, nil
}

func vehicleChanges(in UpdateVehicleInput) (map[string]interface{}, error) {
	changes := make(map[string]interface{})
	for _, f := range []struct {
		column   string
		value    *string
		required bool
	}{
		{"name", in.Name, true},
		{"model", in.Model, true},
		{"manufacturer", in.Manufacturer, true},
		{"cost_in_credits", in.CostInCredits, false},
		{"color", in.Color, false},
		{"year_of_manufacture", in.YearOfManufacture, false},
	} {
		if err := setString(changes, f.column, f.value, f.required); err != nil {
			return nil, err
		}
	}
	return changes, nil
}
