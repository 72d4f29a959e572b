package accounts

import (
	"context"
	"errors"
	"testing"
	"time"

	"carlot/internal/auth"
	"carlot/internal/store"
)

type stubStore struct {
	account     store.Account
	authErr     error
	createCalls int
}

func (s *stubStore) CreateAccount(_ context.Context, email, _ string, role string) (store.Account, error) {
	s.createCalls++
	return store.Account{ID: 1, Email: email, Role: role}, nil
}

func (s *stubStore) Authenticate(context.Context, string, string) (store.Account, error) {
	return s.account, s.authErr
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	issuer := auth.NewIssuer("0123456789abcdef0123", time.Hour)
	svc := New(&stubStore{account: store.Account{ID: 42, Role: store.RoleAdmin}}, issuer)

	token, err := svc.Login(context.Background(), "admin@example.com", "hunter22")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	claims, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if id, _ := claims.AccountID(); id != 42 || claims.Role != store.RoleAdmin {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc := New(&stubStore{authErr: store.ErrInvalidCredentials}, auth.NewIssuer("0123456789abcdef0123", time.Hour))

	if _, err := svc.Login(context.Background(), "x@example.com", "wrong"); !errors.Is(err, store.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestRegisterValidates(t *testing.T) {
	st := &stubStore{}
	svc := New(st, auth.NewIssuer("0123456789abcdef0123", time.Hour))

	_, err := svc.Register(context.Background(), Registration{Email: "dealer@example.com", Password: "short", Role: "OWNER"})
	if !errors.Is(err, store.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if st.createCalls != 0 {
		t.Fatalf("invalid registration reached the store")
	}

	acct, err := svc.Register(context.Background(), Registration{Email: "dealer@example.com", Password: "longenough", Role: store.RoleDealer})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if acct.Role != store.RoleDealer {
		t.Fatalf("unexpected account: %+v", acct)
	}
}
