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

type BusRepository struct {
	base
}

func NewBusRepository(store *intdb.Store) BusRepository {
	return BusRepository{base{Store: store}}
}

const busColumns = `id, name, from_city, to_city, departure, arrival, COALESCE(duration, ''), price,
	COALESCE(bus_type, ''), COALESCE(image_url, '')`

// Search matches both endpoints case-insensitively. A non-nil date keeps only
// buses that run every day or on that date.
func (r BusRepository) Search(ctx context.Context, from, to string, date *time.Time) ([]models.Bus, error) {
	query := `SELECT ` + busColumns + `
		FROM buses
		WHERE LOWER(from_city) LIKE ? AND LOWER(to_city) LIKE ?`
	args := []any{utils.LikePattern(from), utils.LikePattern(to)}
	if date != nil {
		query += ` AND (runs_on IS NULL OR runs_on = ?)`
		args = append(args, utils.FormatDate(*date))
	}
	query += ` ORDER BY departure ASC, id ASC`

	rows, err := r.q().QueryContext(ctx, r.rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	buses := []models.Bus{}
	for rows.Next() {
		b, err := scanBus(rows)
		if err != nil {
			return nil, err
		}
		buses = append(buses, b)
	}
	return buses, rows.Err()
}

func (r BusRepository) GetByID(ctx context.Context, id int64) (models.Bus, error) {
	row := r.q().QueryRowContext(ctx, r.rebind(`SELECT `+busColumns+` FROM buses WHERE id = ? LIMIT 1`), id)
	b, err := scanBus(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Bus{}, domain.NotFoundError{Resource: "bus", Err: err}
	}
	return b, err
}

// ListStops returns the bus's stops ordered by arrival time.
func (r BusRepository) ListStops(ctx context.Context, busID int64) ([]models.Stop, error) {
	rows, err := r.q().QueryContext(ctx, r.rebind(`
		SELECT id, bus_id, stop_name, COALESCE(arrival, ''), COALESCE(departure, ''), COALESCE(stop_order, 0)
		FROM bus_stops
		WHERE bus_id = ?
		ORDER BY arrival ASC, stop_order ASC`), busID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stops := []models.Stop{}
	for rows.Next() {
		var s models.Stop
		if err := rows.Scan(&s.ID, &s.BusID, &s.StopName, &s.Arrival, &s.Departure, &s.StopOrder); err != nil {
			return nil, err
		}
		stops = append(stops, s)
	}
	return stops, rows.Err()
}

// GetStop loads a stop only if it belongs to busID.
func (r BusRepository) GetStop(ctx context.Context, busID, stopID int64) (models.Stop, error) {
	var s models.Stop
	err := r.q().QueryRowContext(ctx, r.rebind(`
		SELECT id, bus_id, stop_name, COALESCE(arrival, ''), COALESCE(departure, ''), COALESCE(stop_order, 0)
		FROM bus_stops
		WHERE id = ? AND bus_id = ?
		LIMIT 1`), stopID, busID).Scan(&s.ID, &s.BusID, &s.StopName, &s.Arrival, &s.Departure, &s.StopOrder)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Stop{}, domain.NotFoundError{Resource: "boarding stop", Err: err}
	}
	return s, err
}

func scanBus(s scanner) (models.Bus, error) {
	var b models.Bus
	err := s.Scan(&b.ID, &b.Name, &b.FromCity, &b.ToCity, &b.Departure, &b.Arrival, &b.Duration,
		&b.Price, &b.BusType, &b.ImageURL)
	return b, err
}
