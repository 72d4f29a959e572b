package listings

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"carlot/internal/store"
	"carlot/internal/validation"
)

// ErrForbidden is returned when a dealer touches another dealer's listing.
var ErrForbidden = errors.New("listing belongs to another dealer")

// Store defines persistence operations for listings.
type Store interface {
	CreateListing(ctx context.Context, dealerID int64, listing store.Listing) (store.Listing, error)
	ListingByID(ctx context.Context, id uuid.UUID) (store.Listing, error)
	ListListings(ctx context.Context, filter store.ListingFilter) ([]store.Listing, int, error)
	DeleteListing(ctx context.Context, id uuid.UUID) error
}

// Input is the dealer-supplied part of a listing.
type Input struct {
	Make        string   `json:"make" validate:"required,max=64"`
	Model       string   `json:"model" validate:"required,max=64"`
	Year        int      `json:"year" validate:"gte=1886,lte=2100"`
	PriceCents  int64    `json:"priceCents" validate:"gte=0"`
	Mileage     int      `json:"mileage" validate:"gte=0"`
	Description string   `json:"description" validate:"max=4000"`
	Photos      []string `json:"photos" validate:"max=20,dive,url"`
}

// Actor is the authenticated account performing a change.
type Actor struct {
	AccountID int64
	Role      string
}

// Page is one page of listings.
type Page struct {
	Listings   []store.Listing `json:"listings"`
	Total      int             `json:"total"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"totalPages"`
}

// Service coordinates listing workflows.
type Service interface {
	Create(ctx context.Context, actor Actor, in Input) (store.Listing, error)
	Get(ctx context.Context, id uuid.UUID) (store.Listing, error)
	List(ctx context.Context, filter store.ListingFilter) (Page, error)
	Delete(ctx context.Context, actor Actor, id uuid.UUID) error
}

type service struct {
	store Store
}

// New constructs a listings Service backed by the given Store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) Create(ctx context.Context, actor Actor, in Input) (store.Listing, error) {
	if err := ctx.Err(); err != nil {
		return store.Listing{}, err
	}

	in.Make = strings.TrimSpace(in.Make)
	in.Model = strings.TrimSpace(in.Model)
	in.Description = strings.TrimSpace(in.Description)
	if err := validation.Struct(in); err != nil {
		return store.Listing{}, err
	}

	return s.store.CreateListing(ctx, actor.AccountID, store.Listing{
		Make:        in.Make,
		Model:       in.Model,
		Year:        in.Year,
		PriceCents:  in.PriceCents,
		Mileage:     in.Mileage,
		Description: in.Description,
		Photos:      in.Photos,
	})
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (store.Listing, error) {
	if err := ctx.Err(); err != nil {
		return store.Listing{}, err
	}
	return s.store.ListingByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter store.ListingFilter) (Page, error) {
	if err := ctx.Err(); err != nil {
		return Page{}, err
	}

	filter.Page = filter.Page.Normalize()
	listings, total, err := s.store.ListListings(ctx, filter)
	if err != nil {
		return Page{}, err
	}

	return Page{
		Listings:   listings,
		Total:      total,
		Page:       filter.Page.Page,
		Limit:      filter.Page.Limit,
		TotalPages: filter.Page.TotalPages(total),
	}, nil
}

// Delete removes a listing. Dealers may only delete their own; admins may delete any.
func (s *service) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if actor.Role != store.RoleAdmin {
		listing, err := s.store.ListingByID(ctx, id)
		if err != nil {
			return err
		}
		if listing.DealerID != actor.AccountID {
			return ErrForbidden
		}
	}

	return s.store.DeleteListing(ctx, id)
}
