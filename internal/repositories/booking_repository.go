package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	intdb "travelapp/internal/db"
	"travelapp/internal/domain"
	"travelapp/internal/domain/models"
	"travelapp/internal/utils"
)

// BookingRepository writes and reads confirmed bookings of every travel mode.
type BookingRepository struct {
	base
}

func NewBookingRepository(store *intdb.Store) BookingRepository {
	return BookingRepository{base{Store: store}}
}

func (r BookingRepository) InTx(tx *sql.Tx) BookingRepository {
	r.Tx = tx
	return r
}

func (r BookingRepository) CreateHotel(ctx context.Context, b *models.HotelBooking) error {
	id, err := r.Store.InsertID(ctx, r.q(), `
		INSERT INTO hotel_bookings (user_id, hotel_id, checkin, checkout, guests, total_price, status)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		b.UserID, b.HotelID, b.Checkin, b.Checkout, b.Guests, b.TotalPrice, b.Status,
	)
	if err != nil {
		return err
	}
	b.ID = id
	return nil
}

func (r BookingRepository) CreateBus(ctx context.Context, b *models.BusBooking) error {
	id, err := r.Store.InsertID(ctx, r.q(), `
		INSERT INTO bookings (user_id, service_type, service_id, travel_date, boarding_point, passenger_name, amount, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		b.UserID, domain.ModeBus, b.BusID, b.Date, intdb.NullIfEmpty(b.Pickup), b.PassengerName, b.Price, b.Status,
	)
	if err != nil {
		return err
	}
	b.ID = id
	return nil
}

// CreateTrain inserts the booking. A PNR collision surfaces as ConflictError so the caller can retry.
func (r BookingRepository) CreateTrain(ctx context.Context, b *models.TrainBooking) error {
	id, err := r.Store.InsertID(ctx, r.q(), `
		INSERT INTO train_bookings (pnr, user_id, train_id, train_name, from_station, to_station, travel_date, passenger_name, price, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.PNR, b.UserID, b.TrainID, intdb.NullIfEmpty(b.TrainName), b.FromStation, b.ToStation,
		b.TravelDate, b.PassengerName, b.Price, b.Status,
	)
	if err != nil {
		if r.Store.IsUniqueViolation(err) {
			return domain.ConflictError{Resource: "pnr", Err: err}
		}
		return err
	}
	b.ID = id
	return nil
}

func (r BookingRepository) CreateCab(ctx context.Context, b *models.CabBooking) error {
	id, err := r.Store.InsertID(ctx, r.q(), `
		INSERT INTO cab_bookings (user_id, cab_type, pickup, drop_location, distance_km, travel_date, fare, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		b.UserID, b.CabType, b.Pickup, b.Drop, b.DistanceKm, b.Date, b.Fare, b.Status,
	)
	if err != nil {
		return err
	}
	b.ID = id
	return nil
}

func (r BookingRepository) ListHotels(ctx context.Context, userID int64) ([]models.HotelBooking, error) {
	rows, err := r.q().QueryContext(ctx, r.rebind(`
		SELECT hb.id, hb.user_id, hb.hotel_id, h.name, h.city, hb.checkin, hb.checkout, hb.guests,
		       hb.total_price, COALESCE(hb.status, 'CONFIRMED'), hb.created_at
		FROM hotel_bookings hb
		JOIN hotels h ON h.id = hb.hotel_id
		WHERE hb.user_id = ?
		ORDER BY hb.created_at DESC, hb.id DESC`), userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.HotelBooking{}
	for rows.Next() {
		var (
			b                 models.HotelBooking
			checkin, checkout time.Time
		)
		if err := rows.Scan(&b.ID, &b.UserID, &b.HotelID, &b.Name, &b.City, &checkin, &checkout,
			&b.Guests, &b.TotalPrice, &b.Status, &b.CreatedAt); err != nil {
			return nil, err
		}
		b.Type = domain.ModeHotel
		b.Checkin = utils.FormatDate(checkin)
		b.Checkout = utils.FormatDate(checkout)
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r BookingRepository) ListBuses(ctx context.Context, userID int64) ([]models.BusBooking, error) {
	rows, err := r.q().QueryContext(ctx, r.rebind(`
		SELECT b.id, b.user_id, b.service_id, bs.name, b.travel_date, COALESCE(b.boarding_point, ''),
		       bs.to_city, b.passenger_name, b.amount, COALESCE(b.status, 'CONFIRMED'), b.created_at
		FROM bookings b
		JOIN buses bs ON bs.id = b.service_id
		WHERE b.user_id = ? AND b.service_type = ?
		ORDER BY b.created_at DESC, b.id DESC`), userID, domain.ModeBus)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.BusBooking{}
	for rows.Next() {
		var (
			b    models.BusBooking
			date time.Time
		)
		if err := rows.Scan(&b.ID, &b.UserID, &b.BusID, &b.Name, &date, &b.Pickup, &b.Drop,
			&b.PassengerName, &b.Price, &b.Status, &b.CreatedAt); err != nil {
			return nil, err
		}
		b.Type = domain.ModeBus
		b.Date = utils.FormatDate(date)
		out = append(out, b)
	}
	return out, rows.Err()
}

const trainBookingColumns = `id, pnr, user_id, train_id, COALESCE(train_name, ''), from_station, to_station,
	travel_date, passenger_name, price, COALESCE(status, 'CONFIRMED'), created_at`

func (r BookingRepository) ListTrains(ctx context.Context, userID int64) ([]models.TrainBooking, error) {
	rows, err := r.q().QueryContext(ctx, r.rebind(`
		SELECT `+trainBookingColumns+`
		FROM train_bookings
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC`), userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.TrainBooking{}
	for rows.Next() {
		b, err := scanTrainBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r BookingRepository) GetTrainByPNR(ctx context.Context, pnr string) (models.TrainBooking, error) {
	row := r.q().QueryRowContext(ctx, r.rebind(`
		SELECT `+trainBookingColumns+`
		FROM train_bookings
		WHERE pnr = ?
		LIMIT 1`), pnr)
	b, err := scanTrainBooking(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.TrainBooking{}, domain.NotFoundError{Resource: "booking", Err: err}
	}
	return b, err
}

// CabsEnabled reports whether the cab_bookings table exists. Older databases were created without it.
func (r BookingRepository) CabsEnabled(ctx context.Context) bool {
	return r.Store.HasTable(ctx, "cab_bookings")
}

func (r BookingRepository) ListCabs(ctx context.Context, userID int64) ([]models.CabBooking, error) {
	rows, err := r.q().QueryContext(ctx, r.rebind(`
		SELECT id, user_id, cab_type, pickup, drop_location, distance_km, travel_date, fare,
		       COALESCE(status, 'CONFIRMED'), created_at
		FROM cab_bookings
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC`), userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.CabBooking{}
	for rows.Next() {
		var (
			b    models.CabBooking
			date time.Time
		)
		if err := rows.Scan(&b.ID, &b.UserID, &b.CabType, &b.Pickup, &b.Drop, &b.DistanceKm, &date,
			&b.Fare, &b.Status, &b.CreatedAt); err != nil {
			return nil, err
		}
		b.Type = domain.ModeCab
		b.Date = utils.FormatDate(date)
		out = append(out, b)
	}
	return out, rows.Err()
}

func scanTrainBooking(s scanner) (models.TrainBooking, error) {
	var (
		b    models.TrainBooking
		date time.Time
	)
	if err := s.Scan(&b.ID, &b.PNR, &b.UserID, &b.TrainID, &b.TrainName, &b.FromStation, &b.ToStation,
		&date, &b.PassengerName, &b.Price, &b.Status, &b.CreatedAt); err != nil {
		return models.TrainBooking{}, err
	}
	b.Type = domain.ModeTrain
	b.TravelDate = utils.FormatDate(date)
	return b, nil
}
