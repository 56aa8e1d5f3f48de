package handlers

import (
	"net/http"
	"sort"

	"github.com/labstack/echo/v4"
)

type RouteInfo struct {
	Method string `json:"method"`
	Path   string `json:"path"`
}

// Sitemap lists every route registered on e, sorted by path then method.
func Sitemap(e *echo.Echo) echo.HandlerFunc {
	return func(c echo.Context) error {
		routes := make([]RouteInfo, 0, len(e.Routes()))
		for _, r := range e.Routes() {
			if r.Method == echo.RouteNotFound {
				continue
			}
			routes = append(routes, RouteInfo{Method: r.Method, Path: r.Path})
		}

		sort.Slice(routes, func(i, j int) bool {
			if routes[i].Path != routes[j].Path {
				return routes[i].Path < routes[j].Path
			}
			return routes[i].Method < routes[j].Method
		})

		return c.JSON(http.StatusOK, routes)
	}
}
