package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrValidation marks missing or malformed input. Wrapped errors carry the detail.
	ErrValidation = errors.New("validation failed")
	// ErrListingNotFound indicates the referenced listing does not exist.
	ErrListingNotFound = errors.New("listing not found")
	// ErrFavoriteExists signals the session already favorited the listing.
	ErrFavoriteExists = errors.New("favorite already exists")
	// ErrFavoriteNotFound signals there is no favorite to remove.
	ErrFavoriteNotFound = errors.New("favorite not found")
	// ErrAccountExists signals the email is already registered.
	ErrAccountExists = errors.New("account already exists")
	// ErrInvalidCredentials indicates a login failure.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Store provides persistence backed by Postgres.
type Store struct {
	db *sql.DB
}

// New sets up a Store using the provided database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
