// Package admin renders the database tables for operators.
package admin

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"

	"go-echo-starwars/internal/models"
	"go-echo-starwars/internal/repository"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gorm.io/gorm"
)

// View is one browsable table: its column headers and the rendered rows.
type View struct {
	Title   string
	Headers []string
	Rows    [][]string
}

type loader func(ctx context.Context, db *gorm.DB) (View, error)

var views = map[string]loader{
	"users":     loadUsers,
	"people":    loadPeople,
	"planets":   loadPlanets,
	"vehicles":  loadVehicles,
	"favorites": loadFavorites,
}

// Tables lists the names Load accepts.
func Tables() []string {
	names := make([]string, 0, len(views))
	for name := range views {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func Load(ctx context.Context, db *gorm.DB, name string) (View, error) {
	load, ok := views[name]
	if !ok {
		return View{}, fmt.Errorf("unknown table %q (want one of %v)", name, Tables())
	}
	return load(ctx, db)
}

// Render writes v as a bordered table.
func Render(w io.Writer, v View) error {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(v.Headers...).
		Rows(v.Rows...)

	if _, err := fmt.Fprintln(w, titleStyle.Render(v.Title)); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, t.Render()); err != nil {
		return err
	}
	Muted(w, "%d row(s)", len(v.Rows))
	return nil
}

func loadUsers(ctx context.Context, db *gorm.DB) (View, error) {
	users, err := repository.New[models.User](db).List(ctx)
	if err != nil {
		return View{}, err
	}

	v := View{Title: "Users", Headers: []string{"ID", "Username", "Email", "Active"}}
	for _, u := range users {
		v.Rows = append(v.Rows, []string{id(u.ID), u.Username, u.Email, strconv.FormatBool(u.IsActive)})
	}
	return v, nil
}

func loadPeople(ctx context.Context, db *gorm.DB) (View, error) {
	people, err := repository.New[models.Person](db).List(ctx)
	if err != nil {
		return View{}, err
	}

	v := View{Title: "People", Headers: []string{"ID", "Name", "Gender", "Birth Year", "Eye Color"}}
	for _, p := range people {
		v.Rows = append(v.Rows, []string{id(p.ID), p.Name, str(p.Gender), str(p.BirthYear), str(p.EyeColor)})
	}
	return v, nil
}

func loadPlanets(ctx context.Context, db *gorm.DB) (View, error) {
	planets, err := repository.New[models.Planet](db).List(ctx)
	if err != nil {
		return View{}, err
	}

	v := View{Title: "Planets", Headers: []string{"ID", "Name", "Climate", "Terrain", "Population"}}
	for _, p := range planets {
		v.Rows = append(v.Rows, []string{id(p.ID), p.Name, str(p.Climate), str(p.Terrain), str(p.Population)})
	}
	return v, nil
}

func loadVehicles(ctx context.Context, db *gorm.DB) (View, error) {
	vehicles, err := repository.New[models.Vehicle](db).List(ctx)
	if err != nil {
		return View{}, err
	}

	v := View{Title: "Vehicles", Headers: []string{"ID", "Name", "Model", "Manufacturer", "Cost In Credits", "Color", "Year Of Manufacture"}}
	for _, x := range vehicles {
		v.Rows = append(v.Rows, []string{
			id(x.ID), x.Name, x.Model, x.Manufacturer,
			str(x.CostInCredits), str(x.Color), str(x.YearOfManufacture),
		})
	}
	return v, nil
}

func loadFavorites(ctx context.Context, db *gorm.DB) (View, error) {
	favorites, err := repository.New[models.Favorite](db,
		repository.WithPreload[models.Favorite](models.FavoriteAssociations...),
	).List(ctx)
	if err != nil {
		return View{}, err
	}

	v := View{Title: "Favorites", Headers: []string{"ID", "User Email", "Character Name", "Planet Name", "Vehicle Name"}}
	for i := range favorites {
		r := favorites[i].ToResponse()
		v.Rows = append(v.Rows, []string{id(r.ID), str(r.UserEmail), str(r.PeopleName), str(r.PlanetName), str(r.VehicleName)})
	}
	return v, nil
}

func id(n uint) string {
	return strconv.FormatUint(uint64(n), 10)
}

func str(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
