package models

// Game is an entry of GET /games.
type Game struct {
	ID        int64   `json:"id"`
	StartTime string  `json:"start_time"`
	EndTime   *string `json:"end_time"`
	RegionID  *int64  `json:"id_region"`
}

type GameInput struct {
	StartTime string  `json:"start_time"`
	EndTime   *string `json:"end_time,omitempty"`
	RegionID  *int64  `json:"id_region,omitempty"`
}

// Mark is a user-placed point on the map.
type Mark struct {
	ID        int64   `json:"id"`
	UserID    int64   `json:"user_id"`
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
	MarkName  string  `json:"mark_name"`
}

type MarkInput struct {
	UserID    int64   `json:"user_id"`
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
	MarkName  string  `json:"mark_name"`
}

type Region struct {
	ID      int64   `json:"id"`
	Country string  `json:"country"`
	City    string  `json:"city"`
	Street  *string `json:"street"`
}

type RegionInput struct {
	Country string  `json:"country"`
	City    string  `json:"city"`
	Street  *string `json:"street,omitempty"`
}

type Role struct {
	ID       int64  `json:"id"`
	RoleName string `json:"role_name"`
}

type Team struct {
	ID       int64  `json:"id"`
	TeamName string `json:"team_name"`
}

type TeamInput struct {
	TeamName string `json:"team_name"`
}

// CreatedRecord is the body returned by the create endpoints. Each endpoint
// names its id field after the resource.
type CreatedRecord struct {
	Message  string `json:"message"`
	UserID   int64  `json:"user_id,omitempty"`
	GameID   int64  `json:"game_id,omitempty"`
	MarkID   int64  `json:"mark_id,omitempty"`
	RegionID int64  `json:"region_id,omitempty"`
	TeamID   int64  `json:"team_id,omitempty"`
}

// ID returns whichever id field the server filled in.
func (c CreatedRecord) ID() int64 {
	for _, id := range []int64{c.UserID, c.GameID, c.MarkID, c.RegionID, c.TeamID} {
		if id != 0 {
			return id
		}
	}
	return 0
}

// Root is the body of GET /.
type Root struct {
	Message string `json:"message"`
	Version string `json:"version"`
}
