package services

import (
	"go-echo-starwars/internal/models"
	"go-echo-starwars/internal/repository"

	"gorm.io/gorm"
)

type CreatePlanetInput struct {
	Name       string  `json:"name"`
	Climate    *string `json:"climate"`
	Terrain    *string `json:"terrain"`
	Population *string `json:"population"`
}

type UpdatePlanetInput struct {
	Name       *string `json:"name"`
	Climate    *string `json:"climate"`
	Terrain    *string `json:"terrain"`
	Population *string `json:"population"`
}

type PlanetService = CRUDService[models.Planet, CreatePlanetInput, UpdatePlanetInput]

func NewPlanetService(db *gorm.DB) *PlanetService {
	repo := repository.New[models.Planet](db,
		repository.WithCascade[models.Planet](favoritesOf("planet_id")),
	)
	return newCRUDService("planet", "Planet", repo, buildPlanet, planetChanges)
}

func buildPlanet(in CreatePlanetInput) (*models.Planet, error) {
	if in.Name == "" {
		return nil, missingFields()
	}
	return &models.Planet{
		Name:       in.Name,
		Climate:    in.Climate,
		Terrain:    in.Terrain,
		Population: in.Population,
	}, nil
}

func planetChanges(in UpdatePlanetInput) (map[string]interface{}, error) {
	changes := make(map[string]interface{})
	for _, f := range []struct {
		column   string
		value    *string
		required bool
	}{
		{"name", in.Name, true},
		{"climate", in.Climate, false},
		{"terrain", in.Terrain, false},
		{"population", in.Population, false},
	} {
		if err := setString(changes, f.column, f.value, f.required); err != nil {
			return nil, err
		}
	}
	return changes, nil
}
