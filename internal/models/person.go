package models

// Person is stored in the "people" table.
type Person struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	Name      string  `gorm:"size:120;uniqueIndex;not null" json:"name"`
	Gender    *string `gorm:"size:20" json:"gender"`
	BirthYear *string `gorm:"size:20" json:"birth_year"`
	EyeColor  *string `gorm:"size:20" json:"eye_color"`
}

func (Person) TableName() string {
	return "people"
}

type PersonResponse struct {
	ID        uint    `json:"id"`
	Name      string  `json:"name"`
	Gender    *string `json:"gender"`
	BirthYear *string `json:"birth_year"`
	EyeColor  *string `json:"eye_color"`
}

func (p *Person) ToResponse() PersonResponse {
	return PersonResponse{
		ID:        p.ID,
		Name:      p.Name,
		Gender:    p.Gender,
		BirthYear: p.BirthYear,
		EyeColor:  p.EyeColor,
	}
}
