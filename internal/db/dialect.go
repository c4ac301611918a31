package db

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
)

// ConnConfig is the driver-neutral connection description built from env.
type ConnConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
}

// Dialect captures everything that differs between the supported SQL engines.
// Repositories write queries with "?" placeholders and let the dialect rebind them.
type Dialect interface {
	Name() string
	DriverName() string
	DSN(cfg ConnConfig) string
	Rebind(query string) string
	// UsesReturning reports whether generated ids come back through "RETURNING id"
	// instead of sql.Result.LastInsertId.
	UsesReturning() bool
	IsUniqueViolation(err error) bool
	CurrentSchema() string
	Schema() []string
}

// DialectFor picks the dialect by DB_DRIVER value.
func DialectFor(driver string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", "mysql", "mariadb":
		return MySQL{}, nil
	case "postgres", "postgresql", "pg":
		return Postgres{}, nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
}

type MySQL struct{}

func (MySQL) Name() string       { return "mysql" }
func (MySQL) DriverName() string { return "mysql" }

func (MySQL) DSN(c ConnConfig) string {
	cfg := mysql.NewConfig()
	cfg.User = c.User
	cfg.Passwd = c.Password
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
	cfg.DBName = c.Name
	cfg.ParseTime = true
	cfg.Loc = time.Local
	cfg.Timeout = 5 * time.Second
	cfg.ReadTimeout = 30 * time.Second
	cfg.WriteTimeout = 30 * time.Second
	cfg.Params = map[string]string{"charset": "utf8mb4"}
	return cfg.FormatDSN()
}

func (MySQL) Rebind(query string) string { return query }
func (MySQL) UsesReturning() bool        { return false }
func (MySQL) CurrentSchema() string      { return "DATABASE()" }

func (MySQL) IsUniqueViolation(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}

type Postgres struct{}

func (Postgres) Name() string       { return "postgres" }
func (Postgres) DriverName() string { return "postgres" }

func (Postgres) DSN(c ConnConfig) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:     "/" + c.Name,
		RawQuery: "sslmode=disable&connect_timeout=5",
	}
	return u.String()
}

// Rebind turns "?" into "$1", "$2", ... outside of quoted literals.
func (Postgres) Rebind(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	inQuote := false
	for i := 0; i < len(query); i++ {
		ch := query[i]
		switch {
		case ch == '\'':
			inQuote = !inQuote
			b.WriteByte(ch)
		case ch == '?' && !inQuote:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(ch)
		}
	}
	return b.String()
}

func (Postgres) UsesReturning() bool   { return true }
func (Postgres) CurrentSchema() string { return "current_schema()" }

func (Postgres) IsUniqueViolation(err error) bool {
	var pe *pq.Error
	return errors.As(err, &pe) && pe.Code == "23505"
}
