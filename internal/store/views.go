package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// View is a single listing page impression.
type View struct {
	ID        int64     `json:"id"`
	ListingID uuid.UUID `json:"listingId"`
	SessionID string    `json:"sessionId"`
	ViewedAt  time.Time `json:"viewedAt"`
}

// ListingSummary is the slice of a listing shown next to a view.
type ListingSummary struct {
	Make  string `json:"make"`
	Model string `json:"model"`
	Year  int    `json:"year"`
}

// ViewWithListing joins a view with its listing. Listing is nil once the listing is deleted.
type ViewWithListing struct {
	View
	Listing *ListingSummary `json:"listing"`
}

// RecordView appends a view row. Repeat views from one session are kept.
func (s *Store) RecordView(ctx context.Context, listingID uuid.UUID, sessionID string) (View, error) {
	if listingID == uuid.Nil {
		return View{}, validationError("listingId is required")
	}
	if strings.TrimSpace(sessionID) == "" {
		return View{}, validationError("sessionId is required")
	}

	view := View{ListingID: listingID, SessionID: sessionID}
	if err := s.db.QueryRowContext(ctx, `
		INSERT INTO listing_views (listing_id, session_id)
		VALUES ($1, $2)
		RETURNING id, viewed_at
	`, listingID, sessionID).Scan(&view.ID, &view.ViewedAt); err != nil {
		return View{}, fmt.Errorf("insert view: %w", err)
	}
	return view, nil
}

// ListViews returns one page of views, newest first, and the total number of views.
func (s *Store) ListViews(ctx context.Context, page Page) ([]ViewWithListing, int, error) {
	page = page.Normalize()

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM listing_views`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count views: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT v.id, v.listing_id, v.session_id, v.viewed_at, l.make, l.model, l.year
		FROM listing_views v
		LEFT JOIN listings l ON l.id = v.listing_id
		ORDER BY v.viewed_at DESC, v.id DESC
		LIMIT $1 OFFSET $2
	`, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("select views: %w", err)
	}
	defer rows.Close()

	views := []ViewWithListing{}
	for rows.Next() {
		var (
			v       ViewWithListing
			carMake sql.NullString
			model   sql.NullString
			year    sql.NullInt64
		)
		if err := rows.Scan(&v.ID, &v.ListingID, &v.SessionID, &v.ViewedAt, &carMake, &model, &year); err != nil {
			return nil, 0, fmt.Errorf("scan view: %w", err)
		}
		if carMake.Valid {
			v.Listing = &ListingSummary{Make: carMake.String, Model: model.String, Year: int(year.Int64)}
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate views: %w", err)
	}

	return views, total, nil
}
