package handlers

import (
	"net/http"
	"strconv"

	"go-echo-starwars/internal/models"
	"go-echo-starwars/internal/services"

	"github.com/labstack/echo/v4"
)

type FavoriteHandler struct {
	favoriteService *services.FavoriteService
}

func NewFavoriteHandler(favoriteService *services.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteService}
}

type targetRequest struct {
	UserID *uint `json:"user_id"`
}

// ownerOf reads user_id from the JSON body, falling back to ?user_id= for
// clients that cannot send a body with DELETE.
func ownerOf(c echo.Context) (uint, error) {
	var req targetRequest
	if err := c.Bind(&req); err != nil {
		return 0, invalidBody(err)
	}
	if req.UserID != nil {
		return *req.UserID, nil
	}
	if q := c.QueryParam("user_id"); q != "" {
		if id, err := strconv.ParseUint(q, 10, 64); err == nil {
			return uint(id), nil
		}
	}
	return 0, echo.NewHTTPError(http.StatusBadRequest, "Missing required fields")
}

func (h *FavoriteHandler) Mount(e *echo.Echo) {
	e.GET("/favorites", h.List)
	e.POST("/favorites", h.Create)
	e.GET("/favorites/:id", h.Get)
	e.DELETE("/favorites/:id", h.Delete)
	e.GET("/users/:id/favorites", h.ListForUser)

	for _, kind := range models.TargetKinds {
		path := "/favorite/" + string(kind) + "/:" + kind.Column()
		e.POST(path, h.AddTarget(kind))
		e.DELETE(path, h.RemoveTarget(kind))
	}
}

func (h *FavoriteHandler) List(c echo.Context) error {
	favorites, err := h.favoriteService.List(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, renderFavorites(favorites))
}

func (h *FavoriteHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id", "Favorite")
	if err != nil {
		return err
	}

	favorite, err := h.favoriteService.Get(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, favorite.ToResponse())
}

func (h *FavoriteHandler) ListForUser(c echo.Context) error {
	userID, err := pathID(c, "id", "User")
	if err != nil {
		return err
	}

	favorites, err := h.favoriteService.ListForUser(c.Request().Context(), userID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, renderFavorites(favorites))
}

func (h *FavoriteHandler) Create(c echo.Context) error {
	var input services.CreateFavoriteInput
	if err := c.Bind(&input); err != nil {
		return invalidBody(err)
	}

	favorite, err := h.favoriteService.Create(c.Request().Context(), input)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, favorite.ToResponse())
}

func (h *FavoriteHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id", "Favorite")
	if err != nil {
		return err
	}

	if err := h.favoriteService.Delete(c.Request().Context(), id); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, Message{Msg: "Favorite deleted"})
}

func (h *FavoriteHandler) AddTarget(kind models.TargetKind) echo.HandlerFunc {
	return func(c echo.Context) error {
		targetID, err := pathID(c, kind.Column(), kind.Label())
		if err != nil {
			return err
		}

		userID, err := ownerOf(c)
		if err != nil {
			return err
		}

		favorite, err := h.favoriteService.AddTarget(c.Request().Context(), userID, kind, targetID)
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(http.StatusCreated, favorite.ToResponse())
	}
}

func (h *FavoriteHandler) RemoveTarget(kind models.TargetKind) echo.HandlerFunc {
	return func(c echo.Context) error {
		targetID, err := pathID(c, kind.Column(), "Favorite")
		if err != nil {
			return err
		}

		userID, err := ownerOf(c)
		if err != nil {
			return err
		}

		if err := h.favoriteService.RemoveTarget(c.Request().Context(), userID, kind, targetID); err != nil {
			return toHTTPError(err)
		}
		return c.JSON(http.StatusOK, Message{Msg: "Favorite deleted"})
	}
}

func renderFavorites(favorites []models.Favorite) []models.FavoriteResponse {
	out := make([]models.FavoriteResponse, len(favorites))
	for i := range favorites {
		out[i] = favorites[i].ToResponse()
	}
	return out
}
