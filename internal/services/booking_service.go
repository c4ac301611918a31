package services

import (
	"context"
	"fmt"
	"strings"

	"travelapp/internal/domain"
	"travelapp/internal/domain/models"
	"travelapp/internal/repositories"
	"travelapp/internal/utils"
)

const pnrAttempts = 3

// BookingService validates trip parameters, prices them and writes confirmed bookings.
type BookingService struct {
	Bookings  repositories.BookingRepository
	Hotels    repositories.HotelRepository
	Buses     repositories.BusRepository
	Inventory InventoryService
	RequestID string
}

type HotelQuote struct {
	TotalPrice    float64 `json:"totalPrice"`
	Nights        int     `json:"nights"`
	PricePerNight float64 `json:"pricePerNight"`
}

type HotelBookingInput struct {
	HotelID  int64
	Checkin  string
	Checkout string
	Guests   int
}

type BusBookingInput struct {
	BusID          int64
	TravelDate     string
	PassengerName  string
	BoardingStopID int64
}

type TrainBookingInput struct {
	TrainID       string
	FromStation   string
	ToStation     string
	TravelDate    string
	PassengerName string
}

type CabBookingInput struct {
	CabType    string
	Pickup     string
	Drop       string
	DistanceKm float64
	TravelDate string
}

// QuoteHotel prices a stay without writing anything.
func (s BookingService) QuoteHotel(ctx context.Context, in HotelBookingInput) (HotelQuote, error) {
	if in.HotelID <= 0 {
		return HotelQuote{}, domain.ValidationError{Field: "hotel_id", Msg: "hotel_id is required"}
	}
	if in.Guests < 1 {
		return HotelQuote{}, domain.ValidationError{Field: "guests", Msg: "guests must be at least 1"}
	}
	checkin, err := utils.ParseDate(in.Checkin)
	if err != nil {
		return HotelQuote{}, domain.ValidationError{Field: "checkin", Msg: "checkin must be YYYY-MM-DD", Err: err}
	}
	checkout, err := utils.ParseDate(in.Checkout)
	if err != nil {
		return HotelQuote{}, domain.ValidationError{Field: "checkout", Msg: "checkout must be YYYY-MM-DD", Err: err}
	}
	if !checkout.After(checkin) {
		return HotelQuote{}, domain.ValidationError{Field: "checkout", Msg: "checkout must be after checkin"}
	}

	hotel, err := s.Hotels.GetByID(ctx, in.HotelID)
	if err != nil {
		return HotelQuote{}, wrapLookup(err, "hotel lookup failed")
	}
	return HotelQuote{
		TotalPrice:    utils.HotelTotal(hotel.PricePerNight, checkin, checkout, in.Guests),
		Nights:        utils.Nights(checkin, checkout),
		PricePerNight: hotel.PricePerNight,
	}, nil
}

func (s BookingService) BookHotel(ctx context.Context, userID int64, in HotelBookingInput) (models.HotelBooking, error) {
	quote, err := s.QuoteHotel(ctx, in)
	if err != nil {
		return models.HotelBooking{}, err
	}
	checkin, _ := utils.ParseDate(in.Checkin)
	checkout, _ := utils.ParseDate(in.Checkout)

	b := models.HotelBooking{
		Type:       domain.ModeHotel,
		UserID:     userID,
		HotelID:    in.HotelID,
		Checkin:    utils.FormatDate(checkin),
		Checkout:   utils.FormatDate(checkout),
		Guests:     in.Guests,
		TotalPrice: quote.TotalPrice,
		Status:     domain.BookingConfirmed,
		CreatedAt:  utils.NowUTC(),
	}
	if err := s.Bookings.CreateHotel(ctx, &b); err != nil {
		return models.HotelBooking{}, domain.InternalError{Msg: "hotel booking failed", Err: err}
	}
	utils.LogEvent(s.RequestID, "booking", "hotel", fmt.Sprintf("booking_id=%d hotel_id=%d total=%.2f", b.ID, b.HotelID, b.TotalPrice))
	return b, nil
}

func (s BookingService) BookBus(ctx context.Context, userID int64, in BusBookingInput) (models.BusBooking, error) {
	in.PassengerName = utils.NormalizeSpace(in.PassengerName)
	if in.BusID <= 0 {
		return models.BusBooking{}, domain.ValidationError{Field: "bus_id", Msg: "bus_id is required"}
	}
	if in.PassengerName == "" {
		return models.BusBooking{}, domain.ValidationError{Field: "passenger_name", Msg: "passenger_name is required"}
	}
	day, err := utils.ParseDate(in.TravelDate)
	if err != nil {
		return models.BusBooking{}, domain.ValidationError{Field: "travel_date", Msg: "travel_date must be YYYY-MM-DD", Err: err}
	}

	bus, err := s.Buses.GetByID(ctx, in.BusID)
	if err != nil {
		return models.BusBooking{}, wrapLookup(err, "bus lookup failed")
	}
	pickup := bus.FromCity
	if in.BoardingStopID > 0 {
		stop, err := s.Buses.GetStop(ctx, bus.ID, in.BoardingStopID)
		if err != nil {
			if domain.IsNotFound(err) {
				return models.BusBooking{}, domain.ValidationError{Field: "boarding_stop_id", Msg: "stop does not belong to this bus", Err: err}
			}
			return models.BusBooking{}, domain.InternalError{Msg: "stop lookup failed", Err: err}
		}
		pickup = stop.StopName
	}

	b := models.BusBooking{
		Type:          domain.ModeBus,
		UserID:        userID,
		BusID:         bus.ID,
		Name:          bus.Name,
		Date:          utils.FormatDate(day),
		Pickup:        pickup,
		Drop:          bus.ToCity,
		PassengerName: in.PassengerName,
		Price:         bus.Price,
		Status:        domain.BookingConfirmed,
		CreatedAt:     utils.NowUTC(),
	}
	if err := s.Bookings.CreateBus(ctx, &b); err != nil {
		return models.BusBooking{}, domain.InternalError{Msg: "bus booking failed", Err: err}
	}
	utils.LogEvent(s.RequestID, "booking", "bus", fmt.Sprintf("booking_id=%d bus_id=%d", b.ID, b.BusID))
	return b, nil
}

// BookTrain charges the inventory price and stamps a fresh PNR.
func (s BookingService) BookTrain(ctx context.Context, userID int64, in TrainBookingInput) (models.TrainBooking, error) {
	in.PassengerName = utils.NormalizeSpace(in.PassengerName)
	in.FromStation = utils.NormalizeSpace(in.FromStation)
	in.ToStation = utils.NormalizeSpace(in.ToStation)
	if in.PassengerName == "" {
		return models.TrainBooking{}, domain.ValidationError{Field: "passenger_name", Msg: "passenger_name is required"}
	}
	day, err := utils.ParseDate(in.TravelDate)
	if err != nil {
		return models.TrainBooking{}, domain.ValidationError{Field: "travel_date", Msg: "travel_date must be YYYY-MM-DD", Err: err}
	}

	train, err := s.Inventory.ResolveTrain(ctx, in.TrainID)
	if err != nil {
		return models.TrainBooking{}, err
	}
	if in.FromStation == "" {
		in.FromStation = train.From
	}
	if in.ToStation == "" {
		in.ToStation = train.To
	}
	if in.FromStation == "" || in.ToStation == "" {
		return models.TrainBooking{}, domain.ValidationError{Msg: "from_station and to_station are required"}
	}

	b := models.TrainBooking{
		Type:          domain.ModeTrain,
		UserID:        userID,
		TrainID:       train.ID,
		TrainName:     train.Name,
		FromStation:   in.FromStation,
		ToStation:     in.ToStation,
		TravelDate:    utils.FormatDate(day),
		PassengerName: in.PassengerName,
		Price:         train.Price,
		Status:        domain.BookingConfirmed,
		CreatedAt:     utils.NowUTC(),
	}
	for attempt := 1; ; attempt++ {
		if b.PNR, err = utils.NewPNR(); err != nil {
			return models.TrainBooking{}, domain.InternalError{Msg: "train booking failed", Err: err}
		}
		err = s.Bookings.CreateTrain(ctx, &b)
		if err == nil {
			break
		}
		if !domain.IsConflict(err) || attempt == pnrAttempts {
			return models.TrainBooking{}, domain.InternalError{Msg: "train booking failed", Err: err}
		}
	}
	utils.LogEvent(s.RequestID, "booking", "train", fmt.Sprintf("booking_id=%d pnr=%s train_id=%s", b.ID, b.PNR, b.TrainID))
	return b, nil
}

func (s BookingService) BookCab(ctx context.Context, userID int64, in CabBookingInput) (models.CabBooking, error) {
	cab, ok := s.Inventory.CabType(in.CabType)
	if !ok {
		return models.CabBooking{}, domain.ValidationError{Field: "cab_type", Msg: "unknown cab type"}
	}
	in.Pickup = utils.NormalizeSpace(in.Pickup)
	in.Drop = utils.NormalizeSpace(in.Drop)
	if in.Pickup == "" || in.Drop == "" {
		return models.CabBooking{}, domain.ValidationError{Msg: "pickup and drop are required"}
	}
	if in.DistanceKm <= 0 {
		return models.CabBooking{}, domain.ValidationError{Field: "distance_km", Msg: "distance_km must be greater than zero"}
	}
	day, err := utils.ParseDate(in.TravelDate)
	if err != nil {
		return models.CabBooking{}, domain.ValidationError{Field: "travel_date", Msg: "travel_date must be YYYY-MM-DD", Err: err}
	}

	b := models.CabBooking{
		Type:       domain.ModeCab,
		UserID:     userID,
		CabType:    cab.Name,
		Pickup:     in.Pickup,
		Drop:       in.Drop,
		DistanceKm: in.DistanceKm,
		Date:       utils.FormatDate(day),
		Fare:       utils.CabFare(cab.PricePerKm, in.DistanceKm),
		Status:     domain.BookingConfirmed,
		CreatedAt:  utils.NowUTC(),
	}
	if err := s.Bookings.CreateCab(ctx, &b); err != nil {
		return models.CabBooking{}, domain.InternalError{Msg: "cab booking failed", Err: err}
	}
	utils.LogEvent(s.RequestID, "booking", "cab", fmt.Sprintf("booking_id=%d cab_type=%s fare=%.0f", b.ID, b.CabType, b.Fare))
	return b, nil
}

// ListForUser never fails as a whole: a broken category comes back empty.
func (s BookingService) ListForUser(ctx context.Context, userID int64) models.UserBookings {
	out := models.UserBookings{
		Hotels: []models.HotelBooking{},
		Buses:  []models.BusBooking{},
		Trains: []models.TrainBooking{},
		Cabs:   []models.CabBooking{},
	}
	if hotels, err := s.Bookings.ListHotels(ctx, userID); err != nil {
		utils.LogError(s.RequestID, "booking", "list_hotels", "hotel bookings unavailable", err)
	} else {
		out.Hotels = hotels
	}
	if buses, err := s.Bookings.ListBuses(ctx, userID); err != nil {
		utils.LogError(s.RequestID, "booking", "list_buses", "bus bookings unavailable", err)
	} else {
		out.Buses = buses
	}
	if trains, err := s.Bookings.ListTrains(ctx, userID); err != nil {
		utils.LogError(s.RequestID, "booking", "list_trains", "train bookings unavailable", err)
	} else {
		out.Trains = trains
	}
	if !s.Bookings.CabsEnabled(ctx) {
		utils.LogEvent(s.RequestID, "booking", "list_cabs", "cab_bookings table missing")
	} else if cabs, err := s.Bookings.ListCabs(ctx, userID); err != nil {
		utils.LogError(s.RequestID, "booking", "list_cabs", "cab bookings unavailable", err)
	} else {
		out.Cabs = cabs
	}
	return out
}

func (s BookingService) GetTrainByPNR(ctx context.Context, pnr string) (models.TrainBooking, error) {
	pnr = strings.ToUpper(strings.TrimSpace(pnr))
	if !utils.IsPNR(pnr) {
		return models.TrainBooking{}, domain.ValidationError{Field: "pnr", Msg: "invalid PNR"}
	}
	b, err := s.Bookings.GetTrainByPNR(ctx, pnr)
	if err != nil {
		return models.TrainBooking{}, wrapLookup(err, "pnr lookup failed")
	}
	return b, nil
}
