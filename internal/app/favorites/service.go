package favorites

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"carlot/internal/store"
)

// Store defines persistence operations required for favorites workflows.
type Store interface {
	AddFavorite(ctx context.Context, sessionID string, listingID uuid.UUID) (int, error)
	RemoveFavorite(ctx context.Context, sessionID string, listingID uuid.UUID) error
	IsFavorite(ctx context.Context, sessionID string, listingID uuid.UUID) (bool, error)
	FavoritesBySession(ctx context.Context, sessionID string) ([]store.Listing, error)
	ReconcileLikeCounts(ctx context.Context) (int64, error)
}

// AddResult reports the outcome of favoriting a listing.
type AddResult struct {
	Created   bool
	LikeCount int
}

// Service describes high level favorites operations used by HTTP handlers.
type Service interface {
	Add(ctx context.Context, sessionID string, listingID uuid.UUID) (AddResult, error)
	Remove(ctx context.Context, sessionID string, listingID uuid.UUID) error
	Check(ctx context.Context, sessionID string, listingID uuid.UUID) (bool, error)
	List(ctx context.Context, sessionID string) ([]store.Listing, error)
	Reconcile(ctx context.Context) (int64, error)
}

type service struct {
	store Store
}

// New constructs a favorites Service backed by the given store.
func New(st Store) Service {
	return &service{store: st}
}

// Add favorites the listing. A repeat for the same session is a no-op reported
// with Created false.
func (s *service) Add(ctx context.Context, sessionID string, listingID uuid.UUID) (AddResult, error) {
	if err := ctx.Err(); err != nil {
		return AddResult{}, err
	}

	count, err := s.store.AddFavorite(ctx, sessionID, listingID)
	if err != nil {
		if errors.Is(err, store.ErrFavoriteExists) {
			return AddResult{Created: false}, nil
		}
		return AddResult{}, err
	}
	return AddResult{Created: true, LikeCount: count}, nil
}

// Remove is idempotent: removing a favorite that does not exist succeeds.
func (s *service) Remove(ctx context.Context, sessionID string, listingID uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := s.store.RemoveFavorite(ctx, sessionID, listingID)
	if errors.Is(err, store.ErrFavoriteNotFound) {
		return nil
	}
	return err
}

func (s *service) Check(ctx context.Context, sessionID string, listingID uuid.UUID) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return s.store.IsFavorite(ctx, sessionID, listingID)
}

func (s *service) List(ctx context.Context, sessionID string) ([]store.Listing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.FavoritesBySession(ctx, sessionID)
}

func (s *service) Reconcile(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return s.store.ReconcileLikeCounts(ctx)
}
