package models

type TicketStatus string

const (
	TicketActive TicketStatus = "Активен"
	TicketUsed   TicketStatus = "Использован"
)

type Ticket struct {
	ID          int          `json:"id"`
	Type        string       `json:"type"`
	Date        string       `json:"date"`
	Price       string       `json:"price"`
	Status      TicketStatus `json:"status"`
	QRCode      string       `json:"qr_code,omitempty"`
	Description string       `json:"description"`
}

// TicketOffer is one choice of the purchase dialog.
type TicketOffer struct {
	Type  string `json:"type"`
	Price string `json:"price"`
}

type MarkerType string

const (
	MarkerEntrance      MarkerType = "entrance"
	MarkerAttraction    MarkerType = "attraction"
	MarkerCafe          MarkerType = "cafe"
	MarkerLandmark      MarkerType = "landmark"
	MarkerPlayground    MarkerType = "playground"
	MarkerShop          MarkerType = "shop"
	MarkerEntertainment MarkerType = "entertainment"
)

// Marker is a point of interest on the park map.
type Marker struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Type        MarkerType `json:"type"`
	Latitude    float64    `json:"latitude"`
	Longitude   float64    `json:"longitude"`
	Details     string     `json:"details,omitempty"`
}

// MapRegion is the visible map window.
type MapRegion struct {
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	LatitudeDelta  float64 `json:"latitude_delta"`
	LongitudeDelta float64 `json:"longitude_delta"`
}

// Contains reports whether the point lies inside the region window.
func (r MapRegion) Contains(lat, lon float64) bool {
	return lat >= r.Latitude-r.LatitudeDelta && lat <= r.Latitude+r.LatitudeDelta &&
		lon >= r.Longitude-r.LongitudeDelta && lon <= r.Longitude+r.LongitudeDelta
}
