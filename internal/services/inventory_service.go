package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"travelapp/internal/domain"
	"travelapp/internal/domain/models"
	"travelapp/internal/repositories"
	"travelapp/internal/utils"
)

// InventoryService is read-only search over hotels, buses and trains.
type InventoryService struct {
	Hotels repositories.HotelRepository
	Buses  repositories.BusRepository
	Trains repositories.TrainRepository

	// FilterByDate drops rows whose runs_on differs from the requested date.
	FilterByDate bool
	// TrainDemoMode answers an empty train search with a generated list.
	TrainDemoMode bool
	RequestID     string
}

var cabRateCard = []models.CabType{
	{ID: 1, Name: "Sedan", PricePerKm: 12, Description: "Comfortable 4-seater for city rides"},
	{ID: 2, Name: "SUV", PricePerKm: 16, Description: "Spacious 6-seater for families and luggage"},
	{ID: 3, Name: "Luxury", PricePerKm: 25, Description: "Premium cars for special occasions"},
}

func (s InventoryService) SearchHotels(ctx context.Context, city string) ([]models.Hotel, error) {
	city = utils.NormalizeSpace(city)
	if city == "" {
		return nil, domain.ValidationError{Field: "city", Msg: "city is required"}
	}
	hotels, err := s.Hotels.SearchByCity(ctx, city)
	if err != nil {
		return nil, domain.InternalError{Msg: "hotel search failed", Err: err}
	}
	return hotels, nil
}

func (s InventoryService) GetHotel(ctx context.Context, id int64) (models.Hotel, error) {
	if id <= 0 {
		return models.Hotel{}, domain.ValidationError{Field: "id", Msg: "invalid hotel id"}
	}
	h, err := s.Hotels.GetByID(ctx, id)
	if err != nil {
		return models.Hotel{}, wrapLookup(err, "hotel lookup failed")
	}
	return h, nil
}

func (s InventoryService) SearchBuses(ctx context.Context, from, to, date string) ([]models.Bus, error) {
	from, to, day, err := routeParams(from, to, date)
	if err != nil {
		return nil, err
	}
	buses, err := s.Buses.Search(ctx, from, to, s.dateFilter(day))
	if err != nil {
		return nil, domain.InternalError{Msg: "bus search failed", Err: err}
	}
	utils.LogEvent(s.RequestID, "inventory", "search_buses", fmt.Sprintf("from=%s to=%s results=%d", from, to, len(buses)))
	return buses, nil
}

func (s InventoryService) ListStops(ctx context.Context, busID int64) ([]models.Stop, error) {
	if busID <= 0 {
		return nil, domain.ValidationError{Field: "busId", Msg: "invalid bus id"}
	}
	stops, err := s.Buses.ListStops(ctx, busID)
	if err != nil {
		return nil, domain.InternalError{Msg: "stop lookup failed", Err: err}
	}
	return stops, nil
}

func (s InventoryService) SearchTrains(ctx context.Context, from, to, date string) ([]models.Train, error) {
	from, to, day, err := routeParams(from, to, date)
	if err != nil {
		return nil, err
	}
	trains, err := s.Trains.Search(ctx, from, to, s.dateFilter(day))
	if err != nil {
		return nil, domain.InternalError{Msg: "train search failed", Err: err}
	}
	if len(trains) == 0 && s.TrainDemoMode {
		utils.LogEvent(s.RequestID, "inventory", "search_trains", "no stored trains, serving demo list")
		return demoTrains(from, to), nil
	}
	return trains, nil
}

// ResolveTrain finds a stored train by numeric id, or a demo train by its generated id.
func (s InventoryService) ResolveTrain(ctx context.Context, id string) (models.Train, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return models.Train{}, domain.ValidationError{Field: "train_id", Msg: "train_id is required"}
	}
	if n, err := strconv.ParseInt(id, 10, 64); err == nil {
		if n <= 0 {
			return models.Train{}, domain.ValidationError{Field: "train_id", Msg: "invalid train id"}
		}
		t, err := s.Trains.GetByID(ctx, n)
		if err != nil {
			return models.Train{}, wrapLookup(err, "train lookup failed")
		}
		return t, nil
	}
	if s.TrainDemoMode {
		if t, ok := findDemoTrain(id); ok {
			return t, nil
		}
	}
	return models.Train{}, domain.NotFoundError{Resource: "train"}
}

// CabTypes returns the fixed per-km rate card.
func (s InventoryService) CabTypes() []models.CabType {
	out := make([]models.CabType, len(cabRateCard))
	copy(out, cabRateCard)
	return out
}

func (s InventoryService) CabType(name string) (models.CabType, bool) {
	for _, c := range cabRateCard {
		if strings.EqualFold(c.Name, strings.TrimSpace(name)) {
			return c, true
		}
	}
	return models.CabType{}, false
}

func (s InventoryService) dateFilter(day time.Time) *time.Time {
	if !s.FilterByDate {
		return nil
	}
	return &day
}

func routeParams(from, to, date string) (string, string, time.Time, error) {
	from = utils.NormalizeSpace(from)
	to = utils.NormalizeSpace(to)
	date = strings.TrimSpace(date)
	if from == "" || to == "" || date == "" {
		return "", "", time.Time{}, domain.ValidationError{Msg: "from, to and date are required"}
	}
	day, err := utils.ParseDate(date)
	if err != nil {
		return "", "", time.Time{}, domain.ValidationError{Field: "date", Msg: "date must be YYYY-MM-DD", Err: err}
	}
	return from, to, day, nil
}

func demoTrains(from, to string) []models.Train {
	return []models.Train{
		{
			ID:        fmt.Sprintf("T-%s-%s-1", from, to),
			Number:    "12345",
			Name:      from + " Express",
			From:      from,
			To:        to,
			Departure: "09:00",
			Arrival:   "15:30",
			Duration:  "6h 30m",
			Classes:   []string{"SL", "3A", "2A"},
			Price:     550,
		},
		{
			ID:        fmt.Sprintf("T-%s-%s-2", from, to),
			Number:    "54321",
			Name:      to + " Intercity",
			From:      from,
			To:        to,
			Departure: "14:00",
			Arrival:   "20:00",
			Duration:  "6h 0m",
			Classes:   []string{"SL", "3A"},
			Price:     450,
		},
	}
}

// findDemoTrain regenerates the demo list from an id of the form T-<from>-<to>-<n>.
func findDemoTrain(id string) (models.Train, bool) {
	if !strings.HasPrefix(id, "T-") {
		return models.Train{}, false
	}
	body := strings.TrimPrefix(id, "T-")
	cut := strings.LastIndex(body, "-")
	if cut <= 0 {
		return models.Train{}, false
	}
	route := body[:cut]
	// station names may contain dashes; try every split point
	for i := 0; i < len(route); i++ {
		if route[i] != '-' {
			continue
		}
		for _, t := range demoTrains(route[:i], route[i+1:]) {
			if t.ID == id {
				return t, true
			}
		}
	}
	return models.Train{}, false
}

func wrapLookup(err error, msg string) error {
	if domain.IsNotFound(err) {
		return err
	}
	return domain.InternalError{Msg: msg, Err: err}
}
