package repositories

import (
	"context"
	"database/sql"
	"errors"

	intdb "travelapp/internal/db"
	"travelapp/internal/domain"
	"travelapp/internal/domain/models"
	"travelapp/internal/utils"
)

type HotelRepository struct {
	base
}

func NewHotelRepository(store *intdb.Store) HotelRepository {
	return HotelRepository{base{Store: store}}
}

const hotelColumns = `id, name, city, COALESCE(address, ''), price_per_night, COALESCE(rating, 0),
	COALESCE(image_url, ''), COALESCE(amenities, ''), COALESCE(description, '')`

// SearchByCity is a case-insensitive substring match on city.
func (r HotelRepository) SearchByCity(ctx context.Context, city string) ([]models.Hotel, error) {
	rows, err := r.q().QueryContext(ctx, r.rebind(`
		SELECT `+hotelColumns+`
		FROM hotels
		WHERE LOWER(city) LIKE ?
		ORDER BY rating DESC, id ASC`), utils.LikePattern(city))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	hotels := []models.Hotel{}
	for rows.Next() {
		h, err := scanHotel(rows)
		if err != nil {
			return nil, err
		}
		hotels = append(hotels, h)
	}
	return hotels, rows.Err()
}

func (r HotelRepository) GetByID(ctx context.Context, id int64) (models.Hotel, error) {
	row := r.q().QueryRowContext(ctx, r.rebind(`SELECT `+hotelColumns+` FROM hotels WHERE id = ? LIMIT 1`), id)
	h, err := scanHotel(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Hotel{}, domain.NotFoundError{Resource: "hotel", Err: err}
	}
	return h, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanHotel(s scanner) (models.Hotel, error) {
	var (
		h         models.Hotel
		amenities string
	)
	if err := s.Scan(&h.ID, &h.Name, &h.City, &h.Address, &h.PricePerNight, &h.Rating,
		&h.ImageURL, &amenities, &h.Description); err != nil {
		return models.Hotel{}, err
	}
	h.Amenities = utils.SplitList(amenities)
	return h, nil
}
