package listings

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"carlot/internal/store"
)

type stubStore struct {
	created     store.Listing
	createCalls int

	byID    store.Listing
	byIDErr error

	lastFilter store.ListingFilter
	list       []store.Listing
	total      int

	deleted []uuid.UUID
}

func (s *stubStore) CreateListing(_ context.Context, dealerID int64, listing store.Listing) (store.Listing, error) {
	s.createCalls++
	listing.ID = uuid.New()
	listing.DealerID = dealerID
	s.created = listing
	return listing, nil
}

func (s *stubStore) ListingByID(context.Context, uuid.UUID) (store.Listing, error) {
	return s.byID, s.byIDErr
}

func (s *stubStore) ListListings(_ context.Context, filter store.ListingFilter) ([]store.Listing, int, error) {
	s.lastFilter = filter
	return s.list, s.total, nil
}

func (s *stubStore) DeleteListing(_ context.Context, id uuid.UUID) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func TestCreateValidatesInput(t *testing.T) {
	st := &stubStore{}
	svc := New(st)

	tests := []struct {
		name string
		in   Input
	}{
		{name: "missing make", in: Input{Model: "240", Year: 1990}},
		{name: "blank model", in: Input{Make: "Volvo", Model: "   ", Year: 1990}},
		{name: "year too old", in: Input{Make: "Volvo", Model: "240", Year: 1700}},
		{name: "negative price", in: Input{Make: "Volvo", Model: "240", Year: 1990, PriceCents: -1}},
		{name: "bad photo url", in: Input{Make: "Volvo", Model: "240", Year: 1990, Photos: []string{"not a url"}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), Actor{AccountID: 1, Role: store.RoleDealer}, tc.in)
			if !errors.Is(err, store.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}

	if st.createCalls != 0 {
		t.Fatalf("invalid input reached the store %d times", st.createCalls)
	}
}

func TestCreateAssignsDealer(t *testing.T) {
	st := &stubStore{}
	svc := New(st)

	got, err := svc.Create(context.Background(), Actor{AccountID: 9, Role: store.RoleDealer}, Input{
		Make:   " Saab ",
		Model:  "900",
		Year:   1987,
		Photos: []string{"https://img.example/saab.jpg"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got.DealerID != 9 || got.Make != "Saab" {
		t.Fatalf("unexpected listing: %+v", got)
	}
}

func TestListClampsAndComputesPages(t *testing.T) {
	st := &stubStore{total: 101}
	svc := New(st)

	got, err := svc.List(context.Background(), store.ListingFilter{Make: "Volvo", Page: store.Page{Page: -3, Limit: 25}})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if got.Page != 1 || got.TotalPages != 5 {
		t.Fatalf("unexpected page: %+v", got)
	}
	if st.lastFilter.Make != "Volvo" || st.lastFilter.Page.Page != 1 {
		t.Fatalf("unexpected filter passed to store: %+v", st.lastFilter)
	}
}

func TestDeleteOwnership(t *testing.T) {
	id := uuid.New()

	t.Run("other dealer", func(t *testing.T) {
		st := &stubStore{byID: store.Listing{ID: id, DealerID: 1}}
		err := New(st).Delete(context.Background(), Actor{AccountID: 2, Role: store.RoleDealer}, id)
		if !errors.Is(err, ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
		if len(st.deleted) != 0 {
			t.Fatalf("listing should not be deleted")
		}
	})

	t.Run("owner", func(t *testing.T) {
		st := &stubStore{byID: store.Listing{ID: id, DealerID: 2}}
		if err := New(st).Delete(context.Background(), Actor{AccountID: 2, Role: store.RoleDealer}, id); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if len(st.deleted) != 1 {
			t.Fatalf("expected one delete, got %d", len(st.deleted))
		}
	})

	t.Run("admin skips ownership", func(t *testing.T) {
		st := &stubStore{byIDErr: errors.New("should not be called")}
		if err := New(st).Delete(context.Background(), Actor{AccountID: 7, Role: store.RoleAdmin}, id); err != nil {
			t.Fatalf("Delete: %v", err)
		}
	})

	t.Run("missing listing", func(t *testing.T) {
		st := &stubStore{byIDErr: store.ErrListingNotFound}
		err := New(st).Delete(context.Background(), Actor{AccountID: 2, Role: store.RoleDealer}, id)
		if !errors.Is(err, store.ErrListingNotFound) {
			t.Fatalf("expected ErrListingNotFound, got %v", err)
		}
	})
}
