package store

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestCreateContactMessage(t *testing.T) {
	s, mock := newMockStore(t)
	createdAt := time.Date(2026, time.May, 5, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO contact_messages (name, email, subject, message)`)).
		WithArgs("Ada", "ada@example.com", "Financing", "Do you offer loans?").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(12), createdAt))

	msg, err := s.CreateContactMessage(context.Background(), ContactMessage{
		Name:    "Ada",
		Email:   "ada@example.com",
		Subject: "Financing",
		Message: "Do you offer loans?",
	})
	if err != nil {
		t.Fatalf("CreateContactMessage: %v", err)
	}
	if msg.ID != 12 || !msg.CreatedAt.Equal(createdAt) {
		t.Fatalf("unexpected message: %#v", msg)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListContactMessages(t *testing.T) {
	s, mock := newMockStore(t)
	createdAt := time.Date(2026, time.May, 5, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM contact_messages`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM contact_messages`)).
		WithArgs(DefaultPageLimit, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "subject", "message", "created_at"}).
			AddRow(int64(1), "Ada", "ada@example.com", "Hi", "Hello", createdAt))

	messages, total, err := s.ListContactMessages(context.Background(), Page{Page: 1, Limit: DefaultPageLimit})
	if err != nil {
		t.Fatalf("ListContactMessages: %v", err)
	}
	if total != 1 || len(messages) != 1 || messages[0].Email != "ada@example.com" {
		t.Fatalf("unexpected result: total=%d messages=%#v", total, messages)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
