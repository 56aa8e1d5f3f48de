package models

type Planet struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	Name       string  `gorm:"size:120;uniqueIndex;not null" json:"name"`
	Climate    *string `gorm:"size:20" json:"climate"`
	Terrain    *string `gorm:"size:20" json:"terrain"`
	Population *string `gorm:"size:20" json:"population"`
}

type PlanetResponse struct {
	ID         uint    `json:"id"`
	Name       string  `json:"name"`
	Climate    *string `json:"climate"`
	Terrain    *string `json:"terrain"`
	Population *string `json:"population"`
}

func (p *Planet) ToResponse() PlanetResponse {
	return PlanetResponse{
		ID:         p.ID,
		Name:       p.Name,
		Climate:    p.Climate,
		Terrain:    p.Terrain,
		Population: p.Population,
	}
}
