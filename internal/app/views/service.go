package views

import (
	"context"

	"github.com/google/uuid"

	"carlot/internal/store"
)

// Store defines the persistence hooks for view analytics.
type Store interface {
	RecordView(ctx context.Context, listingID uuid.UUID, sessionID string) (store.View, error)
	ListViews(ctx context.Context, page store.Page) ([]store.ViewWithListing, int, error)
}

// Page is one page of recorded views.
type Page struct {
	Views      []store.ViewWithListing `json:"views"`
	Total      int                     `json:"total"`
	Page       int                     `json:"page"`
	Limit      int                     `json:"limit"`
	TotalPages int                     `json:"totalPages"`
}

// Service records listing views and pages through them.
type Service interface {
	Record(ctx context.Context, listingID uuid.UUID, sessionID string) (store.View, error)
	List(ctx context.Context, page store.Page) (Page, error)
}

type service struct {
	store Store
}

// New constructs a views Service backed by the given Store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) Record(ctx context.Context, listingID uuid.UUID, sessionID string) (store.View, error) {
	if err := ctx.Err(); err != nil {
		return store.View{}, err
	}
	return s.store.RecordView(ctx, listingID, sessionID)
}

func (s *service) List(ctx context.Context, page store.Page) (Page, error) {
	if err := ctx.Err(); err != nil {
		return Page{}, err
	}

	page = page.Normalize()
	views, total, err := s.store.ListViews(ctx, page)
	if err != nil {
		return Page{}, err
	}

	return Page{
		Views:      views,
		Total:      total,
		Page:       page.Page,
		Limit:      page.Limit,
		TotalPages: page.TotalPages(total),
	}, nil
}
