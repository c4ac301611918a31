package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	intdb "travelapp/internal/db"
	"travelapp/internal/domain"
	"travelapp/internal/domain/models"
	"travelapp/internal/utils"
)

type TrainRepository struct {
	base
}

func NewTrainRepository(store *intdb.Store) TrainRepository {
	return TrainRepository{base{Store: store}}
}

const trainColumns = `id, number, name, from_station, to_station, COALESCE(departure, ''), COALESCE(arrival, ''),
	COALESCE(duration, ''), COALESCE(classes, ''), price`

func (r TrainRepository) Search(ctx context.Context, from, to string, date *time.Time) ([]models.Train, error) {
	query := `SELECT ` + trainColumns + `
		FROM trains
		WHERE LOWER(from_station) LIKE ? AND LOWER(to_station) LIKE ?`
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

	trains := []models.Train{}
	for rows.Next() {
		t, err := scanTrain(rows)
		if err != nil {
			return nil, err
		}
		trains = append(trains, t)
	}
	return trains, rows.Err()
}

func (r TrainRepository) GetByID(ctx context.Context, id int64) (models.Train, error) {
	row := r.q().QueryRowContext(ctx, r.rebind(`SELECT `+trainColumns+` FROM trains WHERE id = ? LIMIT 1`), id)
	t, err := scanTrain(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Train{}, domain.NotFoundError{Resource: "train", Err: err}
	}
	return t, err
}

func scanTrain(s scanner) (models.Train, error) {
	var (
		t       models.Train
		id      int64
		classes string
	)
	if err := s.Scan(&id, &t.Number, &t.Name, &t.From, &t.To, &t.Departure, &t.Arrival,
		&t.Duration, &classes, &t.Price); err != nil {
		return models.Train{}, err
	}
	t.ID = strconv.FormatInt(id, 10)
	t.Classes = utils.SplitList(classes)
	return t, nil
}
