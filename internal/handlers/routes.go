package handlers

import (
	"go-echo-starwars/internal/models"
	"go-echo-starwars/internal/services"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// Services bundles what the HTTP layer needs.
type Services struct {
	Users     *services.UserService
	People    *services.PersonService
	Planets   *services.PlanetService
	Vehicles  *services.VehicleService
	Favorites *services.FavoriteService
}

// NewServices wires every service against db. publisher may be nil.
func NewServices(db *gorm.DB, hashCost int, publisher services.FavoritePublisher) *Services {
	return &Services{
		Users:     services.NewUserService(db, hashCost),
		People:    services.NewPersonService(db),
		Planets:   services.NewPlanetService(db),
		Vehicles:  services.NewVehicleService(db),
		Favorites: services.NewFavoriteService(db, publisher),
	}
}

// Register mounts every route on e.
func Register(e *echo.Echo, svc *Services, health *HealthHandler) {
	e.GET("/", Sitemap(e))
	if health != nil {
		e.GET("/health", health.Check)
	}
	// Go runtime and process collectors for scrapers; request metrics go
	// through OTel.
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	NewResourceHandler(svc.Users, (*models.User).ToResponse).Mount(e, "/users")
	NewResourceHandler(svc.People, (*models.Person).ToResponse).Mount(e, "/people")
	NewResourceHandler(svc.Planets, (*models.Planet).ToResponse).Mount(e, "/planets")
	NewResourceHandler(svc.Vehicles, (*models.Vehicle).ToResponse).Mount(e, "/vehicles")
	NewFavoriteHandler(svc.Favorites).Mount(e)
}
