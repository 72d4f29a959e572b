package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// AddFavorite records that sessionID favorited listingID and bumps the listing's
// like_count in the same transaction. It returns the new like_count.
func (s *Store) AddFavorite(ctx context.Context, sessionID string, listingID uuid.UUID) (int, error) {
	if err := validateFavoriteKey(sessionID, listingID); err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO favorites (session_id, listing_id)
		VALUES ($1, $2)
		ON CONFLICT (session_id, listing_id) DO NOTHING
	`, sessionID, listingID)
	if err != nil {
		return 0, fmt.Errorf("insert favorite: %w", err)
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	if inserted == 0 {
		return 0, ErrFavoriteExists
	}

	var likeCount int
	err = tx.QueryRowContext(ctx, `
		UPDATE listings
		SET like_count = like_count + 1
		WHERE id = $1
		RETURNING like_count
	`, listingID).Scan(&likeCount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrListingNotFound
		}
		return 0, fmt.Errorf("increment like count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit favorite: %w", err)
	}
	tx = nil

	return likeCount, nil
}

// RemoveFavorite deletes the favorite and decrements like_count in one
// transaction. ErrFavoriteNotFound is returned, and no counter is touched, when
// there was nothing to delete.
func (s *Store) RemoveFavorite(ctx context.Context, sessionID string, listingID uuid.UUID) error {
	if err := validateFavoriteKey(sessionID, listingID); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx, `
		DELETE FROM favorites
		WHERE session_id = $1 AND listing_id = $2
	`, sessionID, listingID)
	if err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if deleted == 0 {
		return ErrFavoriteNotFound
	}

	// The listing may already be gone; orphaned favorites still delete cleanly.
	if _, err := tx.ExecContext(ctx, `
		UPDATE listings
		SET like_count = GREATEST(like_count - 1, 0)
		WHERE id = $1
	`, listingID); err != nil {
		return fmt.Errorf("decrement like count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit favorite removal: %w", err)
	}
	tx = nil

	return nil
}

// IsFavorite reports whether sessionID has favorited listingID.
func (s *Store) IsFavorite(ctx context.Context, sessionID string, listingID uuid.UUID) (bool, error) {
	if err := validateFavoriteKey(sessionID, listingID); err != nil {
		return false, err
	}

	var exists bool
	if err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM favorites WHERE session_id = $1 AND listing_id = $2)
	`, sessionID, listingID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check favorite: %w", err)
	}
	return exists, nil
}

// FavoritesBySession lists the listings a session has favorited, most recent first.
// Favorites pointing at deleted listings are skipped.
func (s *Store) FavoritesBySession(ctx context.Context, sessionID string) ([]Listing, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, validationError("sessionId is required")
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT l.id, l.dealer_id, l.make, l.model, l.year, l.price_cents, l.mileage, l.description, l.photos, l.like_count, l.inquiry_count, l.created_at
		FROM favorites f
		JOIN listings l ON l.id = f.listing_id
		WHERE f.session_id = $1
		ORDER BY f.created_at DESC
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer rows.Close()

	listings := []Listing{}
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("scan favorite listing: %w", err)
		}
		listings = append(listings, listing)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate favorites: %w", err)
	}
	return listings, nil
}

// ReconcileLikeCounts recomputes like_count from the favorites ledger and
// returns how many listings had drifted.
func (s *Store) ReconcileLikeCounts(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE listings l
		SET like_count = c.total
		FROM (
			SELECT l2.id, COUNT(f.listing_id) AS total
			FROM listings l2
			LEFT JOIN favorites f ON f.listing_id = l2.id
			GROUP BY l2.id
		) c
		WHERE l.id = c.id AND l.like_count <> c.total
	`)
	if err != nil {
		return 0, fmt.Errorf("reconcile like counts: %w", err)
	}

	fixed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return fixed, nil
}

func validateFavoriteKey(sessionID string, listingID uuid.UUID) error {
	if strings.TrimSpace(sessionID) == "" {
		return validationError("sessionId is required")
	}
	if listingID == uuid.Nil {
		return validationError("listingId is required")
	}
	return nil
}
