package services

import (
	"context"
	"errors"

	"go-echo-starwars/internal/logging"
	"go-echo-starwars/internal/models"
	"go-echo-starwars/internal/repository"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"gorm.io/gorm"
)

// FavoritePublisher is notified after a favorite is stored.
type FavoritePublisher interface {
	PublishFavoriteCreated(ctx context.Context, favoriteID, userID uint) error
}

type CreateFavoriteInput struct {
	UserID    *uint `json:"user_id"`
	PeopleID  *uint `json:"people_id"`
	PlanetID  *uint `json:"planet_id"`
	VehicleID *uint `json:"vehicle_id"`
}

type FavoriteService struct {
	favorites *repository.Repository[models.Favorite]
	users     *repository.Repository[models.User]
	exists    map[models.TargetKind]func(context.Context, uint) (bool, error)
	publisher FavoritePublisher
}

// NewFavoriteService builds the favorite operations. publisher may be nil.
func NewFavoriteService(db *gorm.DB, publisher FavoritePublisher) *FavoriteService {
	initMetrics()

	people := repository.New[models.Person](db)
	planets := repository.New[models.Planet](db)
	vehicles := repository.New[models.Vehicle](db)

	return &FavoriteService{
		favorites: repository.New[models.Favorite](db,
			repository.WithPreload[models.Favorite](models.FavoriteAssociations...),
		),
		users: repository.New[models.User](db),
		exists: map[models.TargetKind]func(context.Context, uint) (bool, error){
			models.TargetPeople:  people.Exists,
			models.TargetPlanet:  planets.Exists,
			models.TargetVehicle: vehicles.Exists,
		},
		publisher: publisher,
	}
}

func (s *FavoriteService) List(ctx context.Context) ([]models.Favorite, error) {
	ctx, span := tracer.Start(ctx, "favorite.list")
	defer span.End()

	favorites, err := s.favorites.List(ctx)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("result.count", len(favorites)))
	return favorites, nil
}

func (s *FavoriteService) Get(ctx context.Context, id uint) (*models.Favorite, error) {
	ctx, span := tracer.Start(ctx, "favorite.get_by_id")
	defer span.End()

	span.SetAttributes(attribute.Int64("favorite.id", int64(id)))

	favorite, err := s.favorites.Get(ctx, id)
	if err != nil {
		return nil, classify("Favorite", err)
	}
	return favorite, nil
}

// ListForUser returns the user's favorites, failing when the user is unknown.
func (s *FavoriteService) ListForUser(ctx context.Context, userID uint) ([]models.Favorite, error) {
	ctx, span := tracer.Start(ctx, "favorite.list_for_user")
	defer span.End()

	span.SetAttributes(attribute.Int64("user.id", int64(userID)))

	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	favorites, err := s.favorites.Find(ctx, map[string]interface{}{"user_id": userID})
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("result.count", len(favorites)))
	return favorites, nil
}

// Create stores a favorite with any combination of targets. The user and
// every referenced target must exist, and an identical favorite must not.
func (s *FavoriteService) Create(ctx context.Context, input CreateFavoriteInput) (*models.Favorite, error) {
	ctx, span := tracer.Start(ctx, "favorite.create")
	defer span.End()

	if input.UserID == nil {
		return nil, missingFields()
	}
	userID := *input.UserID
	span.SetAttributes(attribute.Int64("user.id", int64(userID)))

	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	refs := map[models.TargetKind]*uint{
		models.TargetPeople:  input.PeopleID,
		models.TargetPlanet:  input.PlanetID,
		models.TargetVehicle: input.VehicleID,
	}
	conds := map[string]interface{}{"user_id": userID}
	for _, kind := range models.TargetKinds {
		id := refs[kind]
		if id == nil {
			conds[kind.Column()] = nil
			continue
		}
		ok, err := s.exists[kind](ctx, *id)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, &NotFoundError{Kind: kind.Label()}
		}
		conds[kind.Column()] = *id
		span.SetAttributes(attribute.Int64(string(kind)+".id", int64(*id)))
	}

	if _, err := s.favorites.First(ctx, conds); err == nil {
		return nil, &ConflictError{Kind: "Favorite"}
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	favorite := &models.Favorite{
		UserID:    userID,
		PeopleID:  input.PeopleID,
		PlanetID:  input.PlanetID,
		VehicleID: input.VehicleID,
	}
	created, err := s.favorites.Create(ctx, favorite)
	if err != nil {
		return nil, classify("Favorite", err)
	}

	if favoritesCreated != nil {
		favoritesCreated.Add(ctx, 1, metric.WithAttributes(attribute.Int("targets", targetCount(created))))
	}

	logging.Info(ctx).
		Uint("favorite_id", created.ID).
		Uint("user_id", userID).
		Msg("favorite created")

	if s.publisher != nil {
		if err := s.publisher.PublishFavoriteCreated(ctx, created.ID, userID); err != nil {
			logging.Warn(ctx).Err(err).Uint("favorite_id", created.ID).Msg("failed to publish favorite event")
		}
	}

	return created, nil
}

// AddTarget favorites a single person, planet or vehicle for the user.
func (s *FavoriteService) AddTarget(ctx context.Context, userID uint, kind models.TargetKind, targetID uint) (*models.Favorite, error) {
	target := kind.Target(userID, targetID)
	return s.Create(ctx, CreateFavoriteInput{
		UserID:    &userID,
		PeopleID:  target.PeopleID,
		PlanetID:  target.PlanetID,
		VehicleID: target.VehicleID,
	})
}

// RemoveTarget deletes the user's favorite pointing at targetID.
func (s *FavoriteService) RemoveTarget(ctx context.Context, userID uint, kind models.TargetKind, targetID uint) error {
	ctx, span := tracer.Start(ctx, "favorite.remove_target")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("user.id", int64(userID)),
		attribute.String("favorite.target", string(kind)),
		attribute.Int64("target.id", int64(targetID)),
	)

	deleted, err := s.favorites.DeleteFirst(ctx, map[string]interface{}{
		"user_id":     userID,
		kind.Column(): targetID,
	})
	if err != nil {
		return classify("Favorite", err)
	}

	logging.Info(ctx).
		Uint("favorite_id", deleted.ID).
		Uint("user_id", userID).
		Msg("favorite deleted")

	return nil
}

func (s *FavoriteService) Delete(ctx context.Context, id uint) error {
	ctx, span := tracer.Start(ctx, "favorite.delete")
	defer span.End()

	span.SetAttributes(attribute.Int64("favorite.id", int64(id)))

	if err := s.favorites.Delete(ctx, id); err != nil {
		return classify("Favorite", err)
	}

	logging.Info(ctx).Uint("favorite_id", id).Msg("favorite deleted")
	return nil
}

func (s *FavoriteService) requireUser(ctx context.Context, userID uint) error {
	ok, err := s.users.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !ok {
		return &NotFoundError{Kind: "User"}
	}
	return nil
}

func targetCount(f *models.Favorite) int {
	n := 0
	for _, ref := range []*uint{f.PeopleID, f.PlanetID, f.VehicleID} {
		if ref != nil {
			n++
		}
	}
	return n
}
