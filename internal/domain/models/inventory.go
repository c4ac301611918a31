package models

type Hotel struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	City          string   `json:"city"`
	Address       string   `json:"address"`
	PricePerNight float64  `json:"price_per_night"`
	Rating        float64  `json:"rating"`
	ImageURL      string   `json:"image_url"`
	Amenities     []string `json:"amenities"`
	Description   string   `json:"description"`
}

type Bus struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	FromCity  string  `json:"from_city"`
	ToCity    string  `json:"to_city"`
	Departure string  `json:"departure"`
	Arrival   string  `json:"arrival"`
	Duration  string  `json:"duration"`
	Price     float64 `json:"price"`
	BusType   string  `json:"bus_type"`
	ImageURL  string  `json:"image_url"`
}

// Stop is an ordered boarding point of one bus.
type Stop struct {
	ID        int64  `json:"id"`
	BusID     int64  `json:"bus_id"`
	StopName  string `json:"stop_name"`
	Arrival   string `json:"arrival"`
	Departure string `json:"departure"`
	StopOrder int    `json:"stop_order"`
}

// Train ids are strings: numeric for stored rows, "T-<from>-<to>-<n>" for demo rows.
type Train struct {
	ID        string   `json:"id"`
	Number    string   `json:"number"`
	Name      string   `json:"name"`
	From      string   `json:"from_station"`
	To        string   `json:"to_station"`
	Departure string   `json:"departure"`
	Arrival   string   `json:"arrival"`
	Duration  string   `json:"duration"`
	Classes   []string `json:"classes"`
	Price     float64  `json:"price"`
}

// CabType is one row of the cab rate card.
type CabType struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	PricePerKm  float64 `json:"pricePerKm"`
	Description string  `json:"description"`
}
