package httpapi

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"carlot/internal/app/contact"
	"carlot/internal/app/favorites"
	"carlot/internal/app/listings"
	"carlot/internal/app/views"
	"carlot/internal/http/middleware"
	"carlot/internal/session"
	"carlot/internal/store"
	"carlot/internal/upload"
)

// ListingService exposes listing workflows.
type ListingService interface {
	Create(ctx context.Context, actor listings.Actor, in listings.Input) (store.Listing, error)
	Get(ctx context.Context, id uuid.UUID) (store.Listing, error)
	List(ctx context.Context, filter store.ListingFilter) (listings.Page, error)
	Delete(ctx context.Context, actor listings.Actor, id uuid.UUID) error
}

// FavoritesService coordinates the favorite ledger.
type FavoritesService interface {
	Add(ctx context.Context, sessionID string, listingID uuid.UUID) (favorites.AddResult, error)
	Remove(ctx context.Context, sessionID string, listingID uuid.UUID) error
	Check(ctx context.Context, sessionID string, listingID uuid.UUID) (bool, error)
	List(ctx context.Context, sessionID string) ([]store.Listing, error)
	Reconcile(ctx context.Context) (int64, error)
}

// ViewService records and pages through listing views.
type ViewService interface {
	Record(ctx context.Context, listingID uuid.UUID, sessionID string) (store.View, error)
	List(ctx context.Context, page store.Page) (views.Page, error)
}

// InquiryService counts contact attempts on listings.
type InquiryService interface {
	Record(ctx context.Context, listingID uuid.UUID, sessionID string) (int, error)
}

// ContactService handles the public contact form.
type ContactService interface {
	Submit(ctx context.Context, form contact.Form) (store.ContactMessage, error)
	List(ctx context.Context, page store.Page) (contact.Page, error)
}

// AccountService authenticates dealers and admins. Accounts are created from the CLI.
type AccountService interface {
	Login(ctx context.Context, email, password string) (string, error)
}

// Uploader stores listing photos.
type Uploader interface {
	Upload(ctx context.Context, file upload.File) (upload.Result, error)
}

// Services bundles the dependencies of a Server. Uploader may be nil.
type Services struct {
	Listings  ListingService
	Favorites FavoritesService
	Views     ViewService
	Inquiries InquiryService
	Contact   ContactService
	Accounts  AccountService
	Uploader  Uploader
	Tokens    middleware.TokenVerifier
	Sessions  *session.Provider
	Cookies   session.CookieOptions
}

// Server wires HTTP handlers to the underlying services.
type Server struct {
	listings  ListingService
	favorites FavoritesService
	views     ViewService
	inquiries InquiryService
	contact   ContactService
	accounts  AccountService
	uploader  Uploader
	tokens    middleware.TokenVerifier
	sessions  *session.Provider
	cookies   session.CookieOptions
}

// New configures a Server.
func New(svc Services) *Server {
	sessions := svc.Sessions
	if sessions == nil {
		sessions = session.NewProvider()
	}
	return &Server{
		listings:  svc.Listings,
		favorites: svc.Favorites,
		views:     svc.Views,
		inquiries: svc.Inquiries,
		contact:   svc.Contact,
		accounts:  svc.Accounts,
		uploader:  svc.Uploader,
		tokens:    svc.Tokens,
		sessions:  sessions,
		cookies:   svc.Cookies,
	}
}

// Routes exposes the HTTP handlers.
func (s *Server) Routes() http.Handler {
	router := mux.NewRouter()
	router.Use(middleware.Session(s.sessions, s.cookies))

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}).Methods(http.MethodGet)

	staff := middleware.RequireRole(s.tokens, store.RoleDealer, store.RoleAdmin)

	// Session and auth
	router.HandleFunc("/session", s.handleSession).Methods(http.MethodGet)
	router.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)

	// Listings
	router.HandleFunc("/listings", s.handleListListings).Methods(http.MethodGet)
	router.Handle("/listings", staff(http.HandlerFunc(s.handleCreateListing))).Methods(http.MethodPost)
	router.HandleFunc("/listings/{id}", s.handleGetListing).Methods(http.MethodGet)
	router.Handle("/listings/{id}", staff(http.HandlerFunc(s.handleDeleteListing))).Methods(http.MethodDelete)
	router.HandleFunc("/listings/{id}/inquiry", s.handleRecordInquiry).Methods(http.MethodPost)
	router.HandleFunc("/listings/{id}/views", s.handleRecordView).Methods(http.MethodPost)

	// Favorites
	router.HandleFunc("/favorites", s.handleListFavorites).Methods(http.MethodGet)
	router.HandleFunc("/favorites", s.handleAddFavorite).Methods(http.MethodPost)
	router.HandleFunc("/favorites/check", s.handleCheckFavorite).Methods(http.MethodGet)
	router.HandleFunc("/favorites/{listingId}", s.handleRemoveFavorite).Methods(http.MethodDelete)

	router.HandleFunc("/contact", s.handleContact).Methods(http.MethodPost)
	router.Handle("/uploads", staff(http.HandlerFunc(s.handleUpload))).Methods(http.MethodPost)

	// Admin
	admin := router.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireRole(s.tokens, store.RoleAdmin))
	admin.HandleFunc("/views", s.handleAdminViews).Methods(http.MethodGet)
	admin.HandleFunc("/contact", s.handleAdminContact).Methods(http.MethodGet)
	admin.HandleFunc("/reconcile", s.handleReconcile).Methods(http.MethodPost)

	return router
}
