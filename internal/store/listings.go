package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Listing is a car offered by a dealer.
type Listing struct {
	ID           uuid.UUID `json:"id"`
	DealerID     int64     `json:"dealerId"`
	Make         string    `json:"make"`
	Model        string    `json:"model"`
	Year         int       `json:"year"`
	PriceCents   int64     `json:"priceCents"`
	Mileage      int       `json:"mileage"`
	Description  string    `json:"description"`
	Photos       []string  `json:"photos"`
	LikeCount    int       `json:"likeCount"`
	InquiryCount int       `json:"inquiryCount"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ListingFilter narrows ListListings results.
type ListingFilter struct {
	Make  string
	Model string
	Page  Page
}

// likeEscaper neutralises LIKE wildcards. Backslash is Postgres's default escape character.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

const listingColumns = `id, dealer_id, make, model, year, price_cents, mileage, description, photos, like_count, inquiry_count, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanListing(row rowScanner) (Listing, error) {
	var l Listing
	err := row.Scan(
		&l.ID,
		&l.DealerID,
		&l.Make,
		&l.Model,
		&l.Year,
		&l.PriceCents,
		&l.Mileage,
		&l.Description,
		pq.Array(&l.Photos),
		&l.LikeCount,
		&l.InquiryCount,
		&l.CreatedAt,
	)
	if l.Photos == nil {
		l.Photos = []string{}
	}
	return l, err
}

// CreateListing stores a new listing owned by dealerID. Counters start at zero.
func (s *Store) CreateListing(ctx context.Context, dealerID int64, listing Listing) (Listing, error) {
	listing.Make = strings.TrimSpace(listing.Make)
	listing.Model = strings.TrimSpace(listing.Model)
	if listing.Make == "" || listing.Model == "" {
		return Listing{}, validationError("make and model are required")
	}
	if listing.Photos == nil {
		listing.Photos = []string{}
	}

	id := uuid.New()
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO listings (id, dealer_id, make, model, year, price_cents, mileage, description, photos)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+listingColumns,
		id, dealerID, listing.Make, listing.Model, listing.Year, listing.PriceCents, listing.Mileage, listing.Description, pq.Array(listing.Photos))

	created, err := scanListing(row)
	if err != nil {
		return Listing{}, fmt.Errorf("insert listing: %w", err)
	}
	return created, nil
}

// ListingByID fetches a single listing.
func (s *Store) ListingByID(ctx context.Context, id uuid.UUID) (Listing, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+listingColumns+`
		FROM listings
		WHERE id = $1
	`, id)

	listing, err := scanListing(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Listing{}, ErrListingNotFound
		}
		return Listing{}, fmt.Errorf("select listing: %w", err)
	}
	return listing, nil
}

// ListListings returns one page of listings, newest first, plus the total match count.
func (s *Store) ListListings(ctx context.Context, filter ListingFilter) ([]Listing, int, error) {
	page := filter.Page.Normalize()

	var (
		conditions []string
		args       []any
	)
	if carMake := strings.TrimSpace(filter.Make); carMake != "" {
		args = append(args, carMake)
		conditions = append(conditions, fmt.Sprintf("lower(make) = lower($%d)", len(args)))
	}
	if model := strings.TrimSpace(filter.Model); model != "" {
		args = append(args, "%"+likeEscaper.Replace(model)+"%")
		conditions = append(conditions, fmt.Sprintf("model ILIKE $%d", len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM listings`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count listings: %w", err)
	}

	args = append(args, page.Limit, page.Offset())
	query := fmt.Sprintf(`SELECT %s FROM listings%s ORDER BY created_at DESC, id ASC LIMIT $%d OFFSET $%d`,
		listingColumns, where, len(args)-1, len(args))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("select listings: %w", err)
	}
	defer rows.Close()

	listings := []Listing{}
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan listing: %w", err)
		}
		listings = append(listings, listing)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate listings: %w", err)
	}

	return listings, total, nil
}

// DeleteListing removes a listing. Favorites and views referencing it are left in place.
func (s *Store) DeleteListing(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM listings
		WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("delete listing: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrListingNotFound
	}
	return nil
}

// RecordInquiry bumps the inquiry counter by one and returns the new value.
func (s *Store) RecordInquiry(ctx context.Context, id uuid.UUID) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		UPDATE listings
		SET inquiry_count = inquiry_count + 1
		WHERE id = $1
		RETURNING inquiry_count
	`, id).Scan(&count)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrListingNotFound
		}
		return 0, fmt.Errorf("increment inquiry count: %w", err)
	}
	return count, nil
}
