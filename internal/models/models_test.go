package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserResponse_OmitsPassword(t *testing.T) {
	u := User{ID: 1, Username: "ana", Email: "a@x.com", Password: "hash", IsActive: true}

	for _, v := range []interface{}{u, u.ToResponse()} {
		body, err := json.Marshal(v)
		require.NoError(t, err)

		var out map[string]interface{}
		require.NoError(t, json.Unmarshal(body, &out))
		assert.NotContains(t, out, "password")
		assert.Equal(t, "ana", out["username"])
		assert.Equal(t, "a@x.com", out["email"])
	}
}

func TestFavoriteResponse_ResolvesNames(t *testing.T) {
	planetID := uint(5)
	f := Favorite{
		ID:       3,
		UserID:   1,
		PlanetID: &planetID,
		User:     &User{ID: 1, Username: "ana", Email: "a@x.com"},
		Planet:   &Planet{ID: 5, Name: "Tatooine"},
	}

	body, err := json.Marshal(f.ToResponse())
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "Tatooine", out["planet_name"])
	assert.Equal(t, float64(5), out["planet_id"])
	assert.Equal(t, "ana", out["user_username"])
	assert.Equal(t, "a@x.com", out["user_email"])
	assert.Contains(t, out, "people_name")
	assert.Nil(t, out["people_name"])
	assert.Nil(t, out["vehicle_id"])
	assert.Nil(t, out["vehicle_name"])
}

func TestTargetKind(t *testing.T) {
	k, err := ParseTargetKind("planet")
	require.NoError(t, err)
	assert.Equal(t, TargetPlanet, k)
	assert.Equal(t, "planet_id", k.Column())
	assert.Equal(t, "Planet", k.Label())

	f := TargetPeople.Target(2, 9)
	require.NotNil(t, f.PeopleID)
	assert.Equal(t, uint(9), *f.PeopleID)
	assert.Nil(t, f.PlanetID)
	assert.Nil(t, f.VehicleID)

	_, err = ParseTargetKind("starship")
	assert.Error(t, err)
}
