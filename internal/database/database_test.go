package database

import (
	"context"
	"testing"

	"go-echo-starwars/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "/tmp/test.db?_foreign_keys=on", sqliteDSN("sqlite:///tmp/test.db"))
	assert.Equal(t,
		"file:x?mode=memory&cache=shared&_foreign_keys=on",
		sqliteDSN("sqlite://file:x?mode=memory&cache=shared"),
	)
}

func TestConnect_UnsupportedScheme(t *testing.T) {
	_, err := Connect("mysql://localhost/starwars", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mysql")
}

func TestConnect_SQLiteMigrate(t *testing.T) {
	db, err := Connect("sqlite://file:database_test?mode=memory&cache=shared", false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	require.NoError(t, Migrate(db))
	require.NoError(t, CheckHealth(context.Background(), db))

	for _, table := range []string{"users", "people", "planets", "vehicles", "favorites"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}

	require.NoError(t, db.Create(&models.Person{Name: "Luke Skywalker"}).Error)
	err = db.Create(&models.Person{Name: "Luke Skywalker"}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}
