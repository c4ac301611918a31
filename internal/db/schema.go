package db

import (
	"context"
	"fmt"
)

// EnsureSchema creates missing tables. Existing tables are left untouched.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, ddl := range s.Dialect.Schema() {
		if _, err := s.DB.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

func (MySQL) Schema() []string {
	const tail = ` ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`
	return []string{
		`CREATE TABLE IF NOT EXISTS users (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	fullname VARCHAR(150) NOT NULL,
	username VARCHAR(100) NOT NULL,
	email VARCHAR(255) NULL,
	password_hash VARCHAR(255) NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_users_username (username),
	UNIQUE KEY uniq_users_email (email)
)` + tail,
		`CREATE TABLE IF NOT EXISTS hotels (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	city VARCHAR(100) NOT NULL,
	address VARCHAR(255),
	price_per_night DECIMAL(10,2) NOT NULL DEFAULT 0,
	rating DECIMAL(2,1),
	image_url VARCHAR(500),
	amenities TEXT,
	description TEXT,
	KEY idx_hotels_city (city)
)` + tail,
		`CREATE TABLE IF NOT EXISTS buses (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(100) NOT NULL,
	from_city VARCHAR(100) NOT NULL,
	to_city VARCHAR(100) NOT NULL,
	departure VARCHAR(20) NOT NULL,
	arrival VARCHAR(20) NOT NULL,
	duration VARCHAR(50),
	price DECIMAL(10,2) NOT NULL,
	bus_type VARCHAR(100),
	image_url VARCHAR(500),
	runs_on DATE NULL
)` + tail,
		`CREATE TABLE IF NOT EXISTS bus_stops (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	bus_id BIGINT NOT NULL,
	stop_name VARCHAR(150) NOT NULL,
	arrival VARCHAR(20),
	departure VARCHAR(20),
	stop_order INT,
	KEY idx_bus_stops_bus (bus_id),
	FOREIGN KEY (bus_id) REFERENCES buses(id) ON DELETE CASCADE
)` + tail,
		`CREATE TABLE IF NOT EXISTS trains (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	number VARCHAR(20) NOT NULL,
	name VARCHAR(150) NOT NULL,
	from_station VARCHAR(100) NOT NULL,
	to_station VARCHAR(100) NOT NULL,
	departure VARCHAR(20),
	arrival VARCHAR(20),
	duration VARCHAR(50),
	classes VARCHAR(100),
	price DECIMAL(10,2) NOT NULL,
	runs_on DATE NULL
)` + tail,
		`CREATE TABLE IF NOT EXISTS hotel_bookings (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	user_id BIGINT NOT NULL,
	hotel_id BIGINT NOT NULL,
	checkin DATE NOT NULL,
	checkout DATE NOT NULL,
	guests INT NOT NULL,
	total_price DECIMAL(12,2) NOT NULL,
	status VARCHAR(50) DEFAULT 'CONFIRMED',
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
	FOREIGN KEY (hotel_id) REFERENCES hotels(id) ON DELETE CASCADE
)` + tail,
		`CREATE TABLE IF NOT EXISTS bookings (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	user_id BIGINT NOT NULL,
	service_type VARCHAR(20) NOT NULL DEFAULT 'bus',
	service_id BIGINT NOT NULL,
	travel_date DATE NOT NULL,
	boarding_point VARCHAR(150),
	passenger_name VARCHAR(150) NOT NULL,
	amount DECIMAL(12,2) NOT NULL,
	status VARCHAR(50) DEFAULT 'CONFIRMED',
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
	FOREIGN KEY (service_id) REFERENCES buses(id) ON DELETE CASCADE
)` + tail,
		`CREATE TABLE IF NOT EXISTS train_bookings (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	pnr VARCHAR(10) NOT NULL,
	user_id BIGINT NOT NULL,
	train_id VARCHAR(64) NOT NULL,
	train_name VARCHAR(150),
	from_station VARCHAR(100) NOT NULL,
	to_station VARCHAR(100) NOT NULL,
	travel_date DATE NOT NULL,
	passenger_name VARCHAR(150) NOT NULL,
	price DECIMAL(12,2) NOT NULL,
	status VARCHAR(50) DEFAULT 'CONFIRMED',
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_train_bookings_pnr (pnr),
	FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
)` + tail,
		`CREATE TABLE IF NOT EXISTS cab_bookings (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	user_id BIGINT NOT NULL,
	cab_type VARCHAR(50) NOT NULL,
	pickup VARCHAR(255) NOT NULL,
	drop_location VARCHAR(255) NOT NULL,
	distance_km DECIMAL(8,2) NOT NULL,
	travel_date DATE NOT NULL,
	fare DECIMAL(12,2) NOT NULL,
	status VARCHAR(50) DEFAULT 'CONFIRMED',
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
)` + tail,
		`CREATE TABLE IF NOT EXISTS payments (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	order_id VARCHAR(64) NOT NULL,
	payment_id VARCHAR(64),
	signature VARCHAR(128),
	user_id BIGINT NULL,
	booking_type VARCHAR(20),
	booking_id BIGINT NULL,
	amount DECIMAL(12,2) NOT NULL,
	currency VARCHAR(10) NOT NULL DEFAULT 'INR',
	method VARCHAR(30),
	receipt VARCHAR(64),
	notes TEXT,
	status VARCHAR(20) NOT NULL DEFAULT 'pending',
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_payments_order (order_id),
	FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE SET NULL
)` + tail,
	}
}

func (Postgres) Schema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS users (
	id BIGSERIAL PRIMARY KEY,
	fullname VARCHAR(150) NOT NULL,
	username VARCHAR(100) NOT NULL UNIQUE,
	email VARCHAR(255) UNIQUE,
	password_hash VARCHAR(255) NOT NULL,
	created_at TIMESTAMPTZ DEFAULT NOW()
)`,
		`CREATE TABLE IF NOT EXISTS hotels (
	id BIGSERIAL PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	city VARCHAR(100) NOT NULL,
	address VARCHAR(255),
	price_per_night NUMERIC(10,2) NOT NULL DEFAULT 0,
	rating NUMERIC(2,1),
	image_url VARCHAR(500),
	amenities TEXT,
	description TEXT
)`,
		`CREATE TABLE IF NOT EXISTS buses (
	id BIGSERIAL PRIMARY KEY,
	name VARCHAR(100) NOT NULL,
	from_city VARCHAR(100) NOT NULL,
	to_city VARCHAR(100) NOT NULL,
	departure VARCHAR(20) NOT NULL,
	arrival VARCHAR(20) NOT NULL,
	duration VARCHAR(50),
	price NUMERIC(10,2) NOT NULL,
	bus_type VARCHAR(100),
	image_url VARCHAR(500),
	runs_on DATE
)`,
		`CREATE TABLE IF NOT EXISTS bus_stops (
	id BIGSERIAL PRIMARY KEY,
	bus_id BIGINT NOT NULL REFERENCES buses(id) ON DELETE CASCADE,
	stop_name VARCHAR(150) NOT NULL,
	arrival VARCHAR(20),
	departure VARCHAR(20),
	stop_order INT
)`,
		`CREATE TABLE IF NOT EXISTS trains (
	id BIGSERIAL PRIMARY KEY,
	number VARCHAR(20) NOT NULL,
	name VARCHAR(150) NOT NULL,
	from_station VARCHAR(100) NOT NULL,
	to_station VARCHAR(100) NOT NULL,
	departure VARCHAR(20),
	arrival VARCHAR(20),
	duration VARCHAR(50),
	classes VARCHAR(100),
	price NUMERIC(10,2) NOT NULL,
	runs_on DATE
)`,
		`CREATE TABLE IF NOT EXISTS hotel_bookings (
	id BIGSERIAL PRIMARY KEY,
	user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	hotel_id BIGINT NOT NULL REFERENCES hotels(id) ON DELETE CASCADE,
	checkin DATE NOT NULL,
	checkout DATE NOT NULL,
	guests INT NOT NULL,
	total_price NUMERIC(12,2) NOT NULL,
	status VARCHAR(50) DEFAULT 'CONFIRMED',
	created_at TIMESTAMPTZ DEFAULT NOW()
)`,
		`CREATE TABLE IF NOT EXISTS bookings (
	id BIGSERIAL PRIMARY KEY,
	user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	service_type VARCHAR(20) NOT NULL DEFAULT 'bus',
	service_id BIGINT NOT NULL REFERENCES buses(id) ON DELETE CASCADE,
	travel_date DATE NOT NULL,
	boarding_point VARCHAR(150),
	passenger_name VARCHAR(150) NOT NULL,
	amount NUMERIC(12,2) NOT NULL,
	status VARCHAR(50) DEFAULT 'CONFIRMED',
	created_at TIMESTAMPTZ DEFAULT NOW()
)`,
		`CREATE TABLE IF NOT EXISTS train_bookings (
	id BIGSERIAL PRIMARY KEY,
	pnr VARCHAR(10) NOT NULL UNIQUE,
	user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	train_id VARCHAR(64) NOT NULL,
	train_name VARCHAR(150),
	from_station VARCHAR(100) NOT NULL,
	to_station VARCHAR(100) NOT NULL,
	travel_date DATE NOT NULL,
	passenger_name VARCHAR(150) NOT NULL,
	price NUMERIC(12,2) NOT NULL,
	status VARCHAR(50) DEFAULT 'CONFIRMED',
	created_at TIMESTAMPTZ DEFAULT NOW()
)`,
		`CREATE TABLE IF NOT EXISTS cab_bookings (
	id BIGSERIAL PRIMARY KEY,
	user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	cab_type VARCHAR(50) NOT NULL,
	pickup VARCHAR(255) NOT NULL,
	drop_location VARCHAR(255) NOT NULL,
	distance_km NUMERIC(8,2) NOT NULL,
	travel_date DATE NOT NULL,
	fare NUMERIC(12,2) NOT NULL,
	status VARCHAR(50) DEFAULT 'CONFIRMED',
	created_at TIMESTAMPTZ DEFAULT NOW()
)`,
		`CREATE TABLE IF NOT EXISTS payments (
	id BIGSERIAL PRIMARY KEY,
	order_id VARCHAR(64) NOT NULL UNIQUE,
	payment_id VARCHAR(64),
	signature VARCHAR(128),
	user_id BIGINT REFERENCES users(id) ON DELETE SET NULL,
	booking_type VARCHAR(20),
	booking_id BIGINT,
	amount NUMERIC(12,2) NOT NULL,
	currency VARCHAR(10) NOT NULL DEFAULT 'INR',
	method VARCHAR(30),
	receipt VARCHAR(64),
	notes TEXT,
	status VARCHAR(20) NOT NULL DEFAULT 'pending',
	created_at TIMESTAMPTZ DEFAULT NOW(),
	updated_at TIMESTAMPTZ DEFAULT NOW()
)`,
	}
}
