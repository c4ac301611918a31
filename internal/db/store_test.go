package db

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
)

func TestPostgresRebind(t *testing.T) {
	got := Postgres{}.Rebind(`SELECT * FROM t WHERE a = ? AND b = '?' AND c = ?`)
	want := `SELECT * FROM t WHERE a = $1 AND b = '?' AND c = $2`
	if got != want {
		t.Fatalf("Rebind = %q, want %q", got, want)
	}
	if q := (MySQL{}).Rebind("a = ?"); q != "a = ?" {
		t.Fatalf("mysql rebind should be identity, got %q", q)
	}
}

func TestDialectFor(t *testing.T) {
	for _, name := range []string{"", "mysql", "MariaDB"} {
		d, err := DialectFor(name)
		if err != nil || d.Name() != "mysql" {
			t.Fatalf("DialectFor(%q) = %v, %v", name, d, err)
		}
	}
	d, err := DialectFor("postgresql")
	if err != nil || d.Name() != "postgres" {
		t.Fatalf("expected postgres dialect, got %v, %v", d, err)
	}
	if _, err := DialectFor("sqlite"); err == nil {
		t.Fatalf("expected error for unsupported driver")
	}
}

func TestUniqueViolation(t *testing.T) {
	if !(MySQL{}).IsUniqueViolation(&mysql.MySQLError{Number: 1062}) {
		t.Fatalf("mysql 1062 should be a unique violation")
	}
	if (MySQL{}).IsUniqueViolation(&mysql.MySQLError{Number: 1452}) {
		t.Fatalf("mysql 1452 is a foreign key error")
	}
	if !(Postgres{}).IsUniqueViolation(&pq.Error{Code: "23505"}) {
		t.Fatalf("pq 23505 should be a unique violation")
	}
	if (Postgres{}).IsUniqueViolation(errors.New("boom")) {
		t.Fatalf("plain errors are not unique violations")
	}
}

func TestDSN(t *testing.T) {
	cfg := ConnConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss", Name: "travel_app"}
	if got := (Postgres{}).DSN(cfg); got != "postgres://app:p%40ss@db:5432/travel_app?sslmode=disable&connect_timeout=5" {
		t.Fatalf("unexpected postgres dsn %q", got)
	}
	cfg.Port = 3306
	my := (MySQL{}).DSN(cfg)
	if my == "" || my[:13] != "app:p@ss@tcp(" {
		t.Fatalf("unexpected mysql dsn %q", my)
	}
}

func TestInsertIDMySQLUsesLastInsertID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO users").WithArgs("a").WillReturnResult(sqlmock.NewResult(42, 1))

	store := NewStore(db, MySQL{})
	id, err := store.InsertID(context.Background(), db, "INSERT INTO users (username) VALUES (?)", "a")
	if err != nil || id != 42 {
		t.Fatalf("InsertID = %d, %v", id, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestInsertIDPostgresUsesReturning(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO users \(username\) VALUES \(\$1\) RETURNING id`).WithArgs("a").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))

	store := NewStore(db, Postgres{})
	id, err := store.InsertID(context.Background(), db, "INSERT INTO users (username) VALUES (?)", "a")
	if err != nil || id != 9 {
		t.Fatalf("InsertID = %d, %v", id, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestWithTxRollsBackOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE payments").WillReturnError(errors.New("deadlock"))
	mock.ExpectRollback()

	store := NewStore(db, nil)
	err = store.WithTx(context.Background(), func(tx *sql.Tx) error {
		_, err := tx.Exec("UPDATE payments SET status = 'success'")
		return err
	})
	if err == nil {
		t.Fatalf("expected error from WithTx")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestWithTxCommits(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE payments").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	store := NewStore(db, nil)
	if err := store.WithTx(context.Background(), func(tx *sql.Tx) error {
		_, err := tx.Exec("UPDATE payments SET status = 'success'")
		return err
	}); err != nil {
		t.Fatalf("WithTx: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestHasTable(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("information_schema\\.tables").WithArgs("cab_bookings").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}))
	mock.ExpectQuery("information_schema\\.tables").WithArgs("users").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("users"))

	store := NewStore(db, MySQL{})
	if store.HasTable(context.Background(), "cab_bookings") {
		t.Fatalf("missing table reported as present")
	}
	if !store.HasTable(context.Background(), "users") {
		t.Fatalf("existing table reported as missing")
	}
}
