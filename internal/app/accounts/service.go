package accounts

import (
	"context"
	"fmt"

	"carlot/internal/store"
	"carlot/internal/validation"
)

// Store defines persistence hooks for dealer and admin accounts.
type Store interface {
	CreateAccount(ctx context.Context, email, password, role string) (store.Account, error)
	Authenticate(ctx context.Context, email, password string) (store.Account, error)
}

// TokenIssuer mints access tokens for authenticated accounts.
type TokenIssuer interface {
	Issue(accountID int64, role string) (string, error)
}

// Registration describes a new account.
type Registration struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role" validate:"required,oneof=ADMIN DEALER"`
}

// Service exposes account workflows.
type Service interface {
	Register(ctx context.Context, reg Registration) (store.Account, error)
	Login(ctx context.Context, email, password string) (string, error)
}

type service struct {
	store  Store
	tokens TokenIssuer
}

// New constructs an accounts Service.
func New(store Store, tokens TokenIssuer) Service {
	return &service{store: store, tokens: tokens}
}

func (s *service) Register(ctx context.Context, reg Registration) (store.Account, error) {
	if err := ctx.Err(); err != nil {
		return store.Account{}, err
	}
	if err := validation.Struct(reg); err != nil {
		return store.Account{}, err
	}
	return s.store.CreateAccount(ctx, reg.Email, reg.Password, reg.Role)
}

func (s *service) Login(ctx context.Context, email, password string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	account, err := s.store.Authenticate(ctx, email, password)
	if err != nil {
		return "", err
	}

	token, err := s.tokens.Issue(account.ID, account.Role)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}
