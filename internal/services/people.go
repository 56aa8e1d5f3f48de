package services

import (
	"go-echo-starwars/internal/models"
	"go-echo-starwars/internal/repository"

	"gorm.io/gorm"
)

type CreatePersonInput struct {
	Name      string  `json:"name"`
	Gender    *string `json:"gender"`
	BirthYear *string `json:"birth_year"`
	EyeColor  *string `json:"eye_color"`
}

type UpdatePersonInput struct {
	Name      *string `json:"name"`
	Gender    *string `json:"gender"`
	BirthYear *string `json:"birth_year"`
	EyeColor  *string `json:"eye_color"`
}

type PersonService = CRUDService[models.Person, CreatePersonInput, UpdatePersonInput]

func NewPersonService(db *gorm.DB) *PersonService {
	repo := repository.New[models.Person](db,
		repository.WithCascade[models.Person](favoritesOf("people_id")),
	)
	return newCRUDService("person", "Person", repo, buildPerson, personChanges)
}

func buildPerson(in CreatePersonInput) (*models.Person, error) {
	if in.Name == "" {
		return nil, missingFields()
	}
	return &models.Person{
		Name:      in.Name,
		Gender:    in.Gender,
		BirthYear: in.BirthYear,
		EyeColor:  in.EyeColor,
	}, nil
}

func personChanges(in UpdatePersonInput) (map[string]interface{}, error) {
	changes := make(map[string]interface{})
	for _, f := range []struct {
		column   string
		value    *string
		required bool
	}{
		{"name", in.Name, true},
		{"gender", in.Gender, false},
		{"birth_year", in.BirthYear, false},
		{"eye_color", in.EyeColor, false},
	} {
		if err := setString(changes, f.column, f.value, f.required); err != nil {
			return nil, err
		}
	}
	return changes, nil
}
