package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Role names accepted for accounts.
const (
	RoleAdmin  = "ADMIN"
	RoleDealer = "DEALER"
)

var dummyPasswordHash = []byte("$2a$10$CwTycUXWue0Thq9StjUM0uJ8n4VWeNseyX2fA9DE.D7su7J6iYGTC")

// Account is a dealer or admin login.
type Account struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateAccount registers a dealer or admin account.
func (s *Store) CreateAccount(ctx context.Context, email, password, role string) (Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return Account{}, validationError("email and password are required")
	}
	if role != RoleAdmin && role != RoleDealer {
		return Account{}, validationError("role must be %s or %s", RoleAdmin, RoleDealer)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Account{}, fmt.Errorf("hash password: %w", err)
	}

	account := Account{Email: email, Role: role}
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO accounts (email, password_hash, role)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, email, hash, role).Scan(&account.ID, &account.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return Account{}, ErrAccountExists
		}
		return Account{}, fmt.Errorf("insert account: %w", err)
	}

	return account, nil
}

// Authenticate validates credentials and returns the matching account.
func (s *Store) Authenticate(ctx context.Context, email, password string) (Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var (
		account Account
		hash    []byte
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, role, created_at, password_hash
		FROM accounts
		WHERE email = $1
	`, email).Scan(&account.ID, &account.Email, &account.Role, &account.CreatedAt, &hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			_ = bcrypt.CompareHashAndPassword(dummyPasswordHash, []byte(password))
			return Account{}, ErrInvalidCredentials
		}
		return Account{}, fmt.Errorf("lookup account: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return Account{}, ErrInvalidCredentials
	}

	return account, nil
}
