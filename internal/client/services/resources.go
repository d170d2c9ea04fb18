package services

import (
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/natman/internal/client/api"
	"github.com/dmitrijs2005/natman/internal/client/models"
	"github.com/dmitrijs2005/natman/internal/client/validation"
	"github.com/dmitrijs2005/natman/internal/common"
	"github.com/dmitrijs2005/natman/internal/logging"
)

// ResourceService reads and creates the park's remote records.
//
// List methods never return a partial result: on any failure they log it
// and return a nil slice with an error matching common.ErrUnavailable. A
// reachable server with no records yields an empty, non-nil slice.
type ResourceService interface {
	Users(ctx context.Context) ([]models.User, error)
	Games(ctx context.Context) ([]models.Game, error)
	Marks(ctx context.Context) ([]models.Mark, error)
	Regions(ctx context.Context) ([]models.Region, error)
	Roles(ctx context.Context) ([]models.Role, error)
	Teams(ctx context.Context) ([]models.Team, error)

	CreateUser(ctx context.Context, reg models.Registration) (*models.CreatedRecord, error)
	CreateGame(ctx context.Context, in models.GameInput) (*models.CreatedRecord, error)
	CreateMark(ctx context.Context, in models.MarkInput) (*models.CreatedRecord, error)
	CreateRegion(ctx context.Context, in models.RegionInput) (*models.CreatedRecord, error)
	CreateTeam(ctx context.Context, in models.TeamInput) (*models.CreatedRecord, error)

	Dashboard(ctx context.Context) (*Dashboard, error)
}

// Section is one independently fetched part of the dashboard. Err is
// non-nil when the section is unavailable.
type Section[T any] struct {
	Items []T
	Err   error
}

// Available reports whether the section was fetched.
func (s Section[T]) Available() bool { return s.Err == nil }

// Dashboard is the home screen summary.
type Dashboard struct {
	Games   Section[models.Game]
	Marks   Section[models.Mark]
	Regions Section[models.Region]
	Teams   Section[models.Team]
}

type resourceService struct {
	transport api.Transport
	log       logging.Logger
}

func NewResourceService(transport api.Transport, log logging.Logger) ResourceService {
	if log == nil {
		log = logging.Nop()
	}
	return &resourceService{transport: transport, log: log}
}

// fetchList GETs path and decodes the array stored under field.
func fetchList[T any](ctx context.Context, r *resourceService, path, field string) ([]T, error) {
	var body map[string]json.RawMessage
	err := r.transport.GetJSON(ctx, path, &body)
	if err == nil {
		raw, ok := body[field]
		if !ok {
			err = fmt.Errorf("response has no %q field", field)
		} else {
			var items []T
			if err = json.Unmarshal(raw, &items); err == nil {
				if items == nil {
					items = []T{}
				}
				return items, nil
			}
		}
	}

	r.log.Error(ctx, "list fetch failed", "path", path, "error", err)
	return nil, fmt.Errorf("%s: %w: %w", path, common.ErrUnavailable, err)
}

func (r *resourceService) Users(ctx context.Context) ([]models.User, error) {
	return fetchList[models.User](ctx, r, "/users/", "users")
}

func (r *resourceService) Games(ctx context.Context) ([]models.Game, error) {
	return fetchList[models.Game](ctx, r, "/games", "games")
}

func (r *resourceService) Marks(ctx context.Context) ([]models.Mark, error) {
	return fetchList[models.Mark](ctx, r, "/marks", "marks")
}

func (r *resourceService) Regions(ctx context.Context) ([]models.Region, error) {
	return fetchList[models.Region](ctx, r, "/regions", "regions")
}

func (r *resourceService) Roles(ctx context.Context) ([]models.Role, error) {
	return fetchList[models.Role](ctx, r, "/roles", "roles")
}

func (r *resourceService) Teams(ctx context.Context) ([]models.Team, error) {
	return fetchList[models.Team](ctx, r, "/teams", "teams")
}

func (r *resourceService) create(ctx context.Context, path string, in any) (*models.CreatedRecord, error) {
	var out models.CreatedRecord
	if err := r.transport.PostJSON(ctx, path, in, &out); err != nil {
		r.log.Error(ctx, "create failed", "path", path, "error", err)
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	r.log.Info(ctx, "record created", "path", path, "id", out.ID())
	return &out, nil
}

// CreateUser registers an account without signing in.
func (r *resourceService) CreateUser(ctx context.Context, reg models.Registration) (*models.CreatedRecord, error) {
	if err := validation.ValidateRegistration(reg).Err(); err != nil {
		return nil, err
	}
	return r.create(ctx, "/users/", reg)
}

func (r *resourceService) CreateGame(ctx context.Context, in models.GameInput) (*models.CreatedRecord, error) {
	if in.StartTime == "" {
		return nil, &common.ValidationError{Field: "start_time", Reason: "is required"}
	}
	return r.create(ctx, "/games", in)
}

func (r *resourceService) CreateMark(ctx context.Context, in models.MarkInput) (*models.CreatedRecord, error) {
	if in.MarkName == "" {
		return nil, &common.ValidationError{Field: "mark_name", Reason: "is required"}
	}
	return r.create(ctx, "/marks", in)
}

func (r *resourceService) CreateRegion(ctx context.Context, in models.RegionInput) (*models.CreatedRecord, error) {
	switch {
	case in.Country == "":
		return nil, &common.ValidationError{Field: "country", Reason: "is required"}
	case in.City == "":
		return nil, &common.ValidationError{Field: "city", Reason: "is required"}
	}
	return r.create(ctx, "/regions", in)
}

func (r *resourceService) CreateTeam(ctx context.Context, in models.TeamInput) (*models.CreatedRecord, error) {
	if in.TeamName == "" {
		return nil, &common.ValidationError{Field: "team_name", Reason: "is required"}
	}
	return r.create(ctx, "/teams", in)
}

// Dashboard fetches the home screen sections concurrently. A failing
// section does not cancel the others; only cancellation of ctx itself is
// returned as an error.
func (r *resourceService) Dashboard(ctx context.Context) (*Dashboard, error) {
	var (
		d Dashboard
		g errgroup.Group
	)
	g.Go(func() error {
		d.Games.Items, d.Games.Err = r.Games(ctx)
		return nil
	})
	g.Go(func() error {
		d.Marks.Items, d.Marks.Err = r.Marks(ctx)
		return nil
	})
	g.Go(func() error {
		d.Regions.Items, d.Regions.Err = r.Regions(ctx)
		return nil
	})
	g.Go(func() error {
		d.Teams.Items, d.Teams.Err = r.Teams(ctx)
		return nil
	})
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &d, nil
}
