package inquiries

import (
	"context"

	"github.com/google/uuid"

	"carlot/internal/logging"
)

// Store defines the persistence hook for the inquiry counter.
type Store interface {
	RecordInquiry(ctx context.Context, listingID uuid.UUID) (int, error)
}

// Service counts contact attempts against listings.
type Service interface {
	Record(ctx context.Context, listingID uuid.UUID, sessionID string) (int, error)
}

type service struct {
	store Store
}

// New constructs an inquiries Service backed by the given Store.
func New(store Store) Service {
	return &service{store: store}
}

// Record counts every call. The session id is only logged; it does not
// deduplicate repeat inquiries.
func (s *service) Record(ctx context.Context, listingID uuid.UUID, sessionID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	count, err := s.store.RecordInquiry(ctx, listingID)
	if err != nil {
		return 0, err
	}

	logging.WithContext(ctx).Debug().
		Str("listing_id", listingID.String()).
		Str("inquiry_session", sessionID).
		Int("inquiry_count", count).
		Msg("inquiry recorded")
	return count, nil
}
