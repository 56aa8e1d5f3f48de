package models

import "fmt"

// Favorite links a user to any combination of a person, a planet and a
// vehicle. Rows created through the narrow endpoints set exactly one target,
// but a row may legitimately reference more than one.
type Favorite struct {
	ID        uint  `gorm:"primaryKey" json:"id"`
	UserID    uint  `gorm:"not null;index" json:"user_id"`
	PeopleID  *uint `gorm:"index" json:"people_id"`
	PlanetID  *uint `gorm:"index" json:"planet_id"`
	VehicleID *uint `gorm:"index" json:"vehicle_id"`

	User    *User    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Person  *Person  `gorm:"foreignKey:PeopleID;constraint:OnDelete:CASCADE" json:"-"`
	Planet  *Planet  `gorm:"foreignKey:PlanetID;constraint:OnDelete:CASCADE" json:"-"`
	Vehicle *Vehicle `gorm:"foreignKey:VehicleID;constraint:OnDelete:CASCADE" json:"-"`
}

// FavoriteResponse is the denormalized view. Names are resolved from the
// preloaded associations at read time and never stored.
type FavoriteResponse struct {
	ID           uint    `json:"id"`
	UserID       uint    `json:"user_id"`
	UserUsername *string `json:"user_username"`
	UserEmail    *string `json:"user_email"`
	PeopleID     *uint   `json:"people_id"`
	PeopleName   *string `json:"people_name"`
	PlanetID     *uint   `json:"planet_id"`
	PlanetName   *string `json:"planet_name"`
	VehicleID    *uint   `json:"vehicle_id"`
	VehicleName  *string `json:"vehicle_name"`
}

func (f *Favorite) ToResponse() FavoriteResponse {
	resp := FavoriteResponse{
		ID:        f.ID,
		UserID:    f.UserID,
		PeopleID:  f.PeopleID,
		PlanetID:  f.PlanetID,
		VehicleID: f.VehicleID,
	}
	if f.User != nil {
		resp.UserUsername = &f.User.Username
		resp.UserEmail = &f.User.Email
	}
	if f.Person != nil {
		resp.PeopleName = &f.Person.Name
	}
	if f.Planet != nil {
		resp.PlanetName = &f.Planet.Name
	}
	if f.Vehicle != nil {
		resp.VehicleName = &f.Vehicle.Name
	}
	return resp
}

// FavoriteAssociations lists the relations to preload before ToResponse.
var FavoriteAssociations = []string{"User", "Person", "Planet", "Vehicle"}

// TargetKind names one of the three references a favorite can carry.
type TargetKind string

const (
	TargetPeople  TargetKind = "people"
	TargetPlanet  TargetKind = "planet"
	TargetVehicle TargetKind = "vehicle"
)

var TargetKinds = []TargetKind{TargetPeople, TargetPlanet, TargetVehicle}

func ParseTargetKind(s string) (TargetKind, error) {
	for _, k := range TargetKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown favorite target %q", s)
}

// Column is the favorites column holding this kind of reference.
func (k TargetKind) Column() string {
	switch k {
	case TargetPeople:
		return "people_id"
	case TargetPlanet:
		return "planet_id"
	case TargetVehicle:
		return "vehicle_id"
	}
	return ""
}

// Label is the user-facing entity name used in messages.
func (k TargetKind) Label() string {
	switch k {
	case TargetPeople:
		return "Person"
	case TargetPlanet:
		return "Planet"
	case TargetVehicle:
		return "Vehicle"
	}
	return "Target"
}

// Target returns a favorite referencing only id through this kind.
func (k TargetKind) Target(userID, id uint) Favorite {
	f := Favorite{UserID: userID}
	switch k {
	case TargetPeople:
		f.PeopleID = &id
	case TargetPlanet:
		f.PlanetID = &id
	case TargetVehicle:
		f.VehicleID = &id
	}
	return f
}
