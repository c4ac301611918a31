package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	intdb "travelapp/internal/db"
	"travelapp/internal/domain"
	"travelapp/internal/domain/models"
)

type UserRepository struct {
	base
}

func NewUserRepository(store *intdb.Store) UserRepository {
	return UserRepository{base{Store: store}}
}

// CountByHandle counts users whose username or email equals either handle, so a
// username can never shadow someone else's email at signin.
func (r UserRepository) CountByHandle(ctx context.Context, username, email string) (int, error) {
	handles := []string{username}
	if email != "" {
		handles = append(handles, email)
	}
	marks := strings.TrimSuffix(strings.Repeat("?, ", len(handles)), ", ")
	args := make([]any, 0, 2*len(handles))
	for _, h := range handles {
		args = append(args, h)
	}
	for _, h := range handles {
		args = append(args, strings.ToLower(h))
	}
	var n int
	err := r.q().QueryRowContext(ctx, r.rebind(
		`SELECT COUNT(*) FROM users WHERE username IN (`+marks+`) OR email IN (`+marks+`)`), args...).Scan(&n)
	if err != nil {
		return 0, err
	}
	return n, nil
}

// Create inserts the user and fills in its id. Duplicate keys surface as ConflictError.
func (r UserRepository) Create(ctx context.Context, u *models.User) error {
	id, err := r.Store.InsertID(ctx, r.q(),
		`INSERT INTO users (fullname, username, email, password_hash) VALUES (?, ?, ?, ?)`,
		u.Fullname, u.Username, intdb.NullIfEmpty(u.Email), u.PasswordHash,
	)
	if err != nil {
		if r.Store.IsUniqueViolation(err) {
			return domain.ConflictError{Resource: "user", Msg: "username or email already registered", Err: err}
		}
		return err
	}
	u.ID = id
	return nil
}

// FindByHandle matches the handle against username first, then email. Emails are
// stored lowercased.
func (r UserRepository) FindByHandle(ctx context.Context, handle string) (models.User, error) {
	handle = strings.TrimSpace(handle)
	row := r.q().QueryRowContext(ctx, r.rebind(`
		SELECT id, fullname, username, COALESCE(email, ''), password_hash, created_at
		FROM users
		WHERE username = ? OR email = ?
		ORDER BY CASE WHEN username = ? THEN 0 ELSE 1 END
		LIMIT 1`), handle, strings.ToLower(handle), handle)
	return scanUser(row)
}

func (r UserRepository) GetByID(ctx context.Context, id int64) (models.User, error) {
	row := r.q().QueryRowContext(ctx, r.rebind(`
		SELECT id, fullname, username, COALESCE(email, ''), password_hash, created_at
		FROM users WHERE id = ? LIMIT 1`), id)
	return scanUser(row)
}

func scanUser(row *sql.Row) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Fullname, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, domain.NotFoundError{Resource: "user", Err: err}
	}
	return u, err
}
