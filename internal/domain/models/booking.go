package models

import "time"

type HotelBooking struct {
	ID         int64     `json:"id"`
	Type       string    `json:"type"`
	UserID     int64     `json:"user_id"`
	HotelID    int64     `json:"hotel_id"`
	Name       string    `json:"name,omitempty"`
	City       string    `json:"city,omitempty"`
	Checkin    string    `json:"checkin"`
	Checkout   string    `json:"checkout"`
	Guests     int       `json:"guests"`
	TotalPrice float64   `json:"total_price"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

type BusBooking struct {
	ID            int64     `json:"id"`
	Type          string    `json:"type"`
	UserID        int64     `json:"user_id"`
	BusID         int64     `json:"bus_id"`
	Name          string    `json:"name,omitempty"`
	Date          string    `json:"date"`
	Pickup        string    `json:"pickup"`
	Drop          string    `json:"drop,omitempty"`
	PassengerName string    `json:"passenger_name"`
	Price         float64   `json:"price"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

type TrainBooking struct {
	ID            int64     `json:"id"`
	Type          string    `json:"type"`
	PNR           string    `json:"pnr"`
	UserID        int64     `json:"user_id"`
	TrainID       string    `json:"train_id"`
	TrainName     string    `json:"train_name"`
	FromStation   string    `json:"from_station"`
	ToStation     string    `json:"to_station"`
	TravelDate    string    `json:"travel_date"`
	PassengerName string    `json:"passenger_name"`
	Price         float64   `json:"price"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

type CabBooking struct {
	ID         int64     `json:"id"`
	Type       string    `json:"type"`
	UserID     int64     `json:"user_id"`
	CabType    string    `json:"cab_type"`
	Pickup     string    `json:"pickup"`
	Drop       string    `json:"drop"`
	DistanceKm float64   `json:"distance_km"`
	Date       string    `json:"date"`
	Fare       float64   `json:"fare"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// UserBookings is the caller's history partitioned by travel mode.
type UserBookings struct {
	Hotels []HotelBooking `json:"hotels"`
	Buses  []BusBooking   `json:"buses"`
	Trains []TrainBooking `json:"trains"`
	Cabs   []CabBooking   `json:"cabs"`
}
