//go:build integration

package database

import (
	"context"
	"testing"
	"time"

	"go-echo-starwars/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

func setupPostgres(t *testing.T) *gorm.DB {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("starwars"),
		postgres.WithUsername("starwars"),
		postgres.WithPassword("starwars"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := Connect(connStr, false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	require.NoError(t, Migrate(db))
	return db
}

func TestPostgres_ConstraintsTranslate(t *testing.T) {
	db := setupPostgres(t)
	require.NoError(t, CheckHealth(context.Background(), db))

	user := models.User{Username: "ana", Email: "a@x.com", Password: "hash", IsActive: true}
	require.NoError(t, db.Create(&user).Error)

	err := db.Create(&models.User{Username: "ana", Email: "b@x.com", Password: "hash"}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	missing := uint(999)
	err = db.Create(&models.Favorite{UserID: user.ID, PlanetID: &missing}).Error
	assert.ErrorIs(t, err, gorm.ErrForeignKeyViolated)
}

func TestPostgres_CascadeOnDelete(t *testing.T) {
	db := setupPostgres(t)

	user := models.User{Username: "ana", Email: "a@x.com", Password: "hash", IsActive: true}
	require.NoError(t, db.Create(&user).Error)
	planet := models.Planet{Name: "Tatooine"}
	require.NoError(t, db.Create(&planet).Error)
	require.NoError(t, db.Create(&models.Favorite{UserID: user.ID, PlanetID: &planet.ID}).Error)

	require.NoError(t, db.Delete(&models.Planet{}, planet.ID).Error)

	var count int64
	require.NoError(t, db.Model(&models.Favorite{}).Count(&count).Error)
	assert.Zero(t, count)
}
