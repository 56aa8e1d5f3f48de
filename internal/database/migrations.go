package database

import (
	"go-echo-starwars/internal/models"

	"gorm.io/gorm"
)

// Tables lists every model in dependency order.
var Tables = []interface{}{
	&models.User{},
	&models.Person{},
	&models.Planet{},
	&models.Vehicle{},
	&models.Favorite{},
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Tables...)
}
