package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/require"

	"travelapp/internal/domain"
	"travelapp/internal/repositories"
	"travelapp/internal/utils"
)

func newBookingService(t *testing.T) (BookingService, sqlmock.Sqlmock) {
	store, mock := newMockStore(t)
	inv := InventoryService{
		Hotels: repositories.NewHotelRepository(store),
		Buses:  repositories.NewBusRepository(store),
		Trains: repositories.NewTrainRepository(store),
	}
	return BookingService{
		Bookings:  repositories.NewBookingRepository(store),
		Hotels:    inv.Hotels,
		Buses:     inv.Buses,
		Inventory: inv,
	}, mock
}

func expectHotel(mock sqlmock.Sqlmock, id int64, price float64) {
	mock.ExpectQuery("FROM hotels WHERE id = ").WithArgs(id).
		WillReturnRows(sqlmock.NewRows(hotelCols).AddRow(id, "Taj Palace", "Delhi", "Chanakyapuri", price, 4.8, "", "", ""))
}

func TestHotelBookingRoundTripKeepsTotal(t *testing.T) {
	svc, mock := newBookingService(t)
	ctx := context.Background()

	expectHotel(mock, 3, 2500)
	mock.ExpectExec("INSERT INTO hotel_bookings").
		WithArgs(int64(5), int64(3), "2025-03-01", "2025-03-04", 2, 15000.0, domain.BookingConfirmed).
		WillReturnResult(sqlmock.NewResult(11, 1))

	booking, err := svc.BookHotel(ctx, 5, HotelBookingInput{HotelID: 3, Checkin: "2025-03-01", Checkout: "2025-03-04", Guests: 2})
	require.NoError(t, err)
	require.Equal(t, int64(11), booking.ID)
	require.Equal(t, 15000.0, booking.TotalPrice)
	require.Equal(t, domain.BookingConfirmed, booking.Status)

	mock.ExpectQuery("FROM hotel_bookings hb").WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "hotel_id", "name", "city", "checkin", "checkout",
			"guests", "total_price", "status", "created_at"}).
			AddRow(11, 5, 3, "Taj Palace", "Delhi", day("2025-03-01"), day("2025-03-04"), 2, 15000.0, "CONFIRMED", time.Now()))
	mock.ExpectQuery("FROM bookings b").WithArgs(int64(5), domain.ModeBus).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery("FROM train_bookings").WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`information_schema\.tables`).WithArgs("cab_bookings").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}))

	list := svc.ListForUser(ctx, 5)
	require.Len(t, list.Hotels, 1)
	require.Equal(t, booking.TotalPrice, list.Hotels[0].TotalPrice)
	require.Equal(t, "2025-03-01", list.Hotels[0].Checkin)
	require.Equal(t, domain.ModeHotel, list.Hotels[0].Type)
	require.NotNil(t, list.Cabs)
	require.Empty(t, list.Cabs)
	require.Empty(t, list.Buses)
	require.Empty(t, list.Trains)

	expectationsMet(t, mock)
}

func expectCabTable(mock sqlmock.Sqlmock) {
	mock.ExpectQuery(`information_schema\.tables`).WithArgs("cab_bookings").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("cab_bookings"))
}

func TestListForUserDegradesPerCategory(t *testing.T) {
	svc, mock := newBookingService(t)
	boom := errors.New("connection reset")

	mock.ExpectQuery("FROM hotel_bookings hb").WillReturnError(boom)
	mock.ExpectQuery("FROM bookings b").WillReturnError(boom)
	mock.ExpectQuery("FROM train_bookings").WillReturnError(boom)
	expectCabTable(mock)
	mock.ExpectQuery("FROM cab_bookings").WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "cab_type", "pickup", "drop_location", "distance_km",
			"travel_date", "fare", "status", "created_at"}).
			AddRow(1, 5, "Sedan", "Airport", "Connaught Place", 18.5, day("2025-02-01"), 222.0, "CONFIRMED", time.Now()))

	list := svc.ListForUser(context.Background(), 5)
	require.Empty(t, list.Hotels)
	require.Empty(t, list.Buses)
	require.Empty(t, list.Trains)
	require.Len(t, list.Cabs, 1)
	require.Equal(t, "Connaught Place", list.Cabs[0].Drop)
	expectationsMet(t, mock)
}

func TestListForUserCabQueryFailure(t *testing.T) {
	svc, mock := newBookingService(t)
	empty := func() *sqlmock.Rows { return sqlmock.NewRows([]string{"id"}) }

	mock.ExpectQuery("FROM hotel_bookings hb").WillReturnRows(empty())
	mock.ExpectQuery("FROM bookings b").WillReturnRows(empty())
	mock.ExpectQuery("FROM train_bookings").WillReturnRows(empty())
	expectCabTable(mock)
	mock.ExpectQuery("FROM cab_bookings").WillReturnError(errors.New("bad connection"))

	list := svc.ListForUser(context.Background(), 5)
	require.NotNil(t, list.Cabs)
	require.Empty(t, list.Cabs)
	expectationsMet(t, mock)
}

func TestQuoteHotelValidation(t *testing.T) {
	svc, mock := newBookingService(t)
	ctx := context.Background()

	cases := []HotelBookingInput{
		{HotelID: 3, Checkin: "2025-03-01", Checkout: "2025-03-01", Guests: 1},
		{HotelID: 3, Checkin: "2025-03-05", Checkout: "2025-03-01", Guests: 1},
		{HotelID: 3, Checkin: "2025-03-01", Checkout: "2025-03-02", Guests: 0},
		{HotelID: 0, Checkin: "2025-03-01", Checkout: "2025-03-02", Guests: 1},
		{HotelID: 3, Checkin: "soon", Checkout: "2025-03-02", Guests: 1},
	}
	for _, in := range cases {
		_, err := svc.QuoteHotel(ctx, in)
		require.True(t, domain.IsValidation(err), "input %+v got %v", in, err)
	}

	mock.ExpectQuery("FROM hotels WHERE id = ").WithArgs(int64(9)).WillReturnRows(sqlmock.NewRows(hotelCols))
	_, err := svc.QuoteHotel(ctx, HotelBookingInput{HotelID: 9, Checkin: "2025-03-01", Checkout: "2025-03-02", Guests: 1})
	require.True(t, domain.IsNotFound(err))

	expectationsMet(t, mock)
}

func TestQuoteHotel(t *testing.T) {
	svc, mock := newBookingService(t)
	expectHotel(mock, 3, 1999.5)

	q, err := svc.QuoteHotel(context.Background(), HotelBookingInput{HotelID: 3, Checkin: "2025-03-01", Checkout: "2025-03-03", Guests: 3})
	require.NoError(t, err)
	require.Equal(t, 2, q.Nights)
	require.Equal(t, 1999.5, q.PricePerNight)
	require.Equal(t, utils.RoundMoney(1999.5*2*3), q.TotalPrice)
	expectationsMet(t, mock)
}

func expectBus(mock sqlmock.Sqlmock) {
	mock.ExpectQuery("FROM buses WHERE id = ").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(busCols).
			AddRow(1, "Pink City Volvo", "Delhi", "Jaipur", "06:00 AM", "11:30 AM", "5h 30m", 650.0, "AC Sleeper", ""))
}

func TestBookBusWithBoardingStop(t *testing.T) {
	svc, mock := newBookingService(t)

	expectBus(mock)
	mock.ExpectQuery("FROM bus_stops").WithArgs(int64(10), int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "bus_id", "stop_name", "arrival", "departure", "stop_order"}).
			AddRow(10, 1, "Gurugram", "06:40", "06:45", 2))
	mock.ExpectExec("INSERT INTO bookings").
		WithArgs(int64(5), domain.ModeBus, int64(1), "2025-02-01", "Gurugram", "Ravi Kumar", 650.0, domain.BookingConfirmed).
		WillReturnResult(sqlmock.NewResult(21, 1))

	b, err := svc.BookBus(context.Background(), 5, BusBookingInput{BusID: 1, TravelDate: "2025-02-01", PassengerName: " Ravi  Kumar", BoardingStopID: 10})
	require.NoError(t, err)
	require.Equal(t, int64(21), b.ID)
	require.Equal(t, "Gurugram", b.Pickup)
	require.Equal(t, "Jaipur", b.Drop)
	expectationsMet(t, mock)
}

func TestBookBusRejectsForeignStop(t *testing.T) {
	svc, mock := newBookingService(t)

	expectBus(mock)
	mock.ExpectQuery("FROM bus_stops").WithArgs(int64(99), int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "bus_id", "stop_name", "arrival", "departure", "stop_order"}))

	_, err := svc.BookBus(context.Background(), 5, BusBookingInput{BusID: 1, TravelDate: "2025-02-01", PassengerName: "Ravi", BoardingStopID: 99})
	require.True(t, domain.IsValidation(err), "got %v", err)
	expectationsMet(t, mock)
}

func TestBookTrainDemoGeneratesPNR(t *testing.T) {
	svc, mock := newBookingService(t)
	svc.Inventory.TrainDemoMode = true
	pnr := &captureArg{}

	mock.ExpectExec("INSERT INTO train_bookings").
		WithArgs(pnr, int64(5), "T-Delhi-Jaipur-1", "Delhi Express", "Delhi", "Jaipur", "2025-02-01", "Ravi", 550.0, domain.BookingConfirmed).
		WillReturnResult(sqlmock.NewResult(3, 1))

	b, err := svc.BookTrain(context.Background(), 5, TrainBookingInput{
		TrainID:       "T-Delhi-Jaipur-1",
		FromStation:   "Delhi",
		ToStation:     "Jaipur",
		TravelDate:    "2025-02-01",
		PassengerName: "Ravi",
	})
	require.NoError(t, err)
	require.True(t, utils.IsPNR(b.PNR), "pnr %q", b.PNR)
	require.Equal(t, pnr.value, b.PNR)
	require.Equal(t, 550.0, b.Price)
	expectationsMet(t, mock)
}

func TestBookTrainRetriesPNRCollision(t *testing.T) {
	svc, mock := newBookingService(t)
	svc.Inventory.TrainDemoMode = true

	mock.ExpectExec("INSERT INTO train_bookings").WillReturnError(&mysql.MySQLError{Number: 1062})
	mock.ExpectExec("INSERT INTO train_bookings").WillReturnResult(sqlmock.NewResult(4, 1))

	b, err := svc.BookTrain(context.Background(), 5, TrainBookingInput{TrainID: "T-Delhi-Jaipur-2", TravelDate: "2025-02-01", PassengerName: "Ravi"})
	require.NoError(t, err)
	require.Equal(t, int64(4), b.ID)
	require.Equal(t, "Delhi", b.FromStation)
	expectationsMet(t, mock)
}

func TestBookTrainUnknownTrain(t *testing.T) {
	svc, mock := newBookingService(t)
	mock.ExpectQuery("FROM trains WHERE id = ").WithArgs(int64(77)).WillReturnRows(sqlmock.NewRows(trainCols))

	_, err := svc.BookTrain(context.Background(), 5, TrainBookingInput{TrainID: "77", TravelDate: "2025-02-01", PassengerName: "Ravi"})
	require.True(t, domain.IsNotFound(err))
	expectationsMet(t, mock)
}

func TestBookCabFare(t *testing.T) {
	svc, mock := newBookingService(t)

	mock.ExpectExec("INSERT INTO cab_bookings").
		WithArgs(int64(5), "Sedan", "Airport", "Karol Bagh", 10.4, "2025-02-01", 125.0, domain.BookingConfirmed).
		WillReturnResult(sqlmock.NewResult(8, 1))

	b, err := svc.BookCab(context.Background(), 5, CabBookingInput{CabType: "sedan", Pickup: "Airport", Drop: "Karol Bagh", DistanceKm: 10.4, TravelDate: "2025-02-01"})
	require.NoError(t, err)
	require.Equal(t, 125.0, b.Fare)

	_, err = svc.BookCab(context.Background(), 5, CabBookingInput{CabType: "Helicopter", Pickup: "A", Drop: "B", DistanceKm: 1, TravelDate: "2025-02-01"})
	require.True(t, domain.IsValidation(err))
	_, err = svc.BookCab(context.Background(), 5, CabBookingInput{CabType: "SUV", Pickup: "A", Drop: "B", DistanceKm: 0, TravelDate: "2025-02-01"})
	require.True(t, domain.IsValidation(err))
	expectationsMet(t, mock)
}

func TestGetTrainByPNRValidatesFormat(t *testing.T) {
	svc, mock := newBookingService(t)
	_, err := svc.GetTrainByPNR(context.Background(), "nope")
	require.True(t, domain.IsValidation(err))

	mock.ExpectQuery("FROM train_bookings").WithArgs("ABCDEF0123").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	_, err = svc.GetTrainByPNR(context.Background(), "abcdef0123")
	require.True(t, domain.IsNotFound(err), "got %v", err)
	expectationsMet(t, mock)
}
