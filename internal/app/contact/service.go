package contact

import (
	"context"
	"strings"

	"carlot/internal/store"
	"carlot/internal/validation"
)

// Store defines persistence for contact messages.
type Store interface {
	CreateContactMessage(ctx context.Context, msg store.ContactMessage) (store.ContactMessage, error)
	ListContactMessages(ctx context.Context, page store.Page) ([]store.ContactMessage, int, error)
}

// Form is a submission from the public contact form. Every field is required.
type Form struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"required,email,max=320"`
	Subject string `json:"subject" validate:"required,max=200"`
	Message string `json:"message" validate:"required,max=5000"`
}

// Page is one page of the admin inbox.
type Page struct {
	Messages   []store.ContactMessage `json:"messages"`
	Total      int                    `json:"total"`
	Page       int                    `json:"page"`
	Limit      int                    `json:"limit"`
	TotalPages int                    `json:"totalPages"`
}

// Service accepts contact submissions and lists them for admins.
type Service interface {
	Submit(ctx context.Context, form Form) (store.ContactMessage, error)
	List(ctx context.Context, page store.Page) (Page, error)
}

type service struct {
	store Store
}

// New constructs a contact Service backed by the given Store.
func New(store Store) Service {
	return &service{store: store}
}

// Submit validates the form and stores it. Invalid forms never reach the store.
func (s *service) Submit(ctx context.Context, form Form) (store.ContactMessage, error) {
	if err := ctx.Err(); err != nil {
		return store.ContactMessage{}, err
	}

	form.Name = strings.TrimSpace(form.Name)
	form.Email = strings.TrimSpace(form.Email)
	form.Subject = strings.TrimSpace(form.Subject)
	form.Message = strings.TrimSpace(form.Message)
	if err := validation.Struct(form); err != nil {
		return store.ContactMessage{}, err
	}

	return s.store.CreateContactMessage(ctx, store.ContactMessage{
		Name:    form.Name,
		Email:   form.Email,
		Subject: form.Subject,
		Message: form.Message,
	})
}

func (s *service) List(ctx context.Context, page store.Page) (Page, error) {
	if err := ctx.Err(); err != nil {
		return Page{}, err
	}

	page = page.Normalize()
	messages, total, err := s.store.ListContactMessages(ctx, page)
	if err != nil {
		return Page{}, err
	}

	return Page{
		Messages:   messages,
		Total:      total,
		Page:       page.Page,
		Limit:      page.Limit,
		TotalPages: page.TotalPages(total),
	}, nil
}
