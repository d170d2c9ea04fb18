package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/dmitrijs2005/natman/internal/client/models"
	"github.com/dmitrijs2005/natman/internal/common"
)

// List prints one kind of remote record. An unreachable server is shown as
// "unavailable", which is not the same as an empty list.
func (a *App) List(ctx context.Context, kind string) error {
	return a.submit(ctx, func(ctx context.Context) error {
		lines, err := a.listLines(ctx, kind)
		if err != nil {
			return a.alertErr("Данные недоступны", err)
		}
		if len(lines) == 0 {
			fmt.Fprintln(a.out, "Нет записей")
			return nil
		}
		for _, l := range lines {
			fmt.Fprintln(a.out, l)
		}
		return nil
	})
}

func (a *App) listLines(ctx context.Context, kind string) ([]string, error) {
	switch kind {
	case "games":
		games, err := a.resources.Games(ctx)
		return formatAll(games, func(g models.Game) string {
			s := fmt.Sprintf("#%d %s", g.ID, g.StartTime)
			if g.EndTime != nil {
				s += " .. " + *g.EndTime
			}
			if g.RegionID != nil {
				s += fmt.Sprintf(" (region %d)", *g.RegionID)
			}
			return s
		}), err
	case "marks":
		marks, err := a.resources.Marks(ctx)
		return formatAll(marks, func(m models.Mark) string {
			return fmt.Sprintf("#%d %s (%.6f, %.6f) by user %d", m.ID, m.MarkName, m.Latitude, m.Longitude, m.UserID)
		}), err
	case "regions":
		regions, err := a.resources.Regions(ctx)
		return formatAll(regions, func(r models.Region) string {
			s := fmt.Sprintf("#%d %s, %s", r.ID, r.Country, r.City)
			if r.Street != nil {
				s += ", " + *r.Street
			}
			return s
		}), err
	case "roles":
		roles, err := a.resources.Roles(ctx)
		return formatAll(roles, func(r models.Role) string {
			return fmt.Sprintf("#%d %s", r.ID, r.RoleName)
		}), err
	case "teams":
		teams, err := a.resources.Teams(ctx)
		return formatAll(teams, func(t models.Team) string {
			return fmt.Sprintf("#%d %s", t.ID, t.TeamName)
		}), err
	case "users":
		users, err := a.resources.Users(ctx)
		return formatAll(users, func(u models.User) string {
			return fmt.Sprintf("#%d %s (%s) %s", u.ID, u.Username, u.DisplayName(), u.Role)
		}), err
	default:
		return nil, fmt.Errorf("unknown record kind %q", kind)
	}
}

// formatAll renders every item with f.
func formatAll[T any](items []T, f func(T) string) []string {
	lines := make([]string, 0, len(items))
	for _, it := range items {
		lines = append(lines, f(it))
	}
	return lines
}

// Add prompts for a new record of the given kind and creates it.
func (a *App) Add(ctx context.Context, kind string) error {
	var (
		create func(ctx context.Context) (*models.CreatedRecord, error)
		err    error
	)
	switch kind {
	case "mark":
		create, err = a.markForm()
	case "team":
		create, err = a.teamForm()
	case "region":
		create, err = a.regionForm()
	case "game":
		create, err = a.gameForm()
	default:
		return fmt.Errorf("unknown record kind %q", kind)
	}
	if err != nil {
		if errors.Is(err, io.EOF) {
			return err
		}
		return a.alertErr("Ошибка", err)
	}

	return a.submit(ctx, func(ctx context.Context) error {
		rec, err := create(ctx)
		if err != nil {
			return a.alertErr("Ошибка", err)
		}
		a.alert("Готово", fmt.Sprintf("%s (id %d)", rec.Message, rec.ID()))
		return nil
	})
}

func (a *App) markForm() (func(context.Context) (*models.CreatedRecord, error), error) {
	user, ok := a.holder.User()
	if !ok {
		return nil, common.ErrNotAuthenticated
	}
	name, err := a.ask("Название метки")
	if err != nil {
		return nil, err
	}
	lat, err := a.askFloat("Широта", "latitude")
	if err != nil {
		return nil, err
	}
	lon, err := a.askFloat("Долгота", "longitude")
	if err != nil {
		return nil, err
	}
	in := models.MarkInput{UserID: user.ID, Latitude: lat, Longitude: lon, MarkName: name}
	return func(ctx context.Context) (*models.CreatedRecord, error) {
		return a.resources.CreateMark(ctx, in)
	}, nil
}

func (a *App) teamForm() (func(context.Context) (*models.CreatedRecord, error), error) {
	name, err := a.ask("Название команды")
	if err != nil {
		return nil, err
	}
	in := models.TeamInput{TeamName: name}
	return func(ctx context.Context) (*models.CreatedRecord, error) {
		return a.resources.CreateTeam(ctx, in)
	}, nil
}

func (a *App) regionForm() (func(context.Context) (*models.CreatedRecord, error), error) {
	country, err := a.ask("Страна")
	if err != nil {
		return nil, err
	}
	city, err := a.ask("Город")
	if err != nil {
		return nil, err
	}
	street, err := a.ask("Улица (Enter чтобы пропустить)")
	if err != nil {
		return nil, err
	}
	in := models.RegionInput{Country: country, City: city}
	if street != "" {
		in.Street = &street
	}
	return func(ctx context.Context) (*models.CreatedRecord, error) {
		return a.resources.CreateRegion(ctx, in)
	}, nil
}

func (a *App) gameForm() (func(context.Context) (*models.CreatedRecord, error), error) {
	start, err := a.ask("Начало (2024-12-15T10:00:00)")
	if err != nil {
		return nil, err
	}
	end, err := a.ask("Окончание (Enter чтобы пропустить)")
	if err != nil {
		return nil, err
	}
	regionText, err := a.ask("ID региона (Enter чтобы пропустить)")
	if err != nil {
		return nil, err
	}

	in := models.GameInput{StartTime: start}
	if end != "" {
		in.EndTime = &end
	}
	if regionText != "" {
		id, err := strconv.ParseInt(regionText, 10, 64)
		if err != nil {
			return nil, &common.ValidationError{Field: "id_region", Reason: "must be a number"}
		}
		in.RegionID = &id
	}
	return func(ctx context.Context) (*models.CreatedRecord, error) {
		return a.resources.CreateGame(ctx, in)
	}, nil
}

func (a *App) askFloat(prompt, field string) (float64, error) {
	text, err := a.ask(prompt)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, &common.ValidationError{Field: field, Reason: "must be a number"}
	}
	return v, nil
}
