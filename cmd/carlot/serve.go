package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"carlot/internal/app/accounts"
	"carlot/internal/app/contact"
	"carlot/internal/app/favorites"
	"carlot/internal/app/inquiries"
	"carlot/internal/app/listings"
	"carlot/internal/app/views"
	"carlot/internal/auth"
	"carlot/internal/config"
	"carlot/internal/database/migrations"
	"carlot/internal/http/middleware"
	"carlot/internal/httpapi"
	"carlot/internal/obfuscate"
	"carlot/internal/session"
	"carlot/internal/store"
	"carlot/internal/upload"
)

var serveMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		cfg, db, err := setup(ctx)
		if err != nil {
			return err
		}
		defer db.Close()

		if serveMigrate {
			if err := migrations.Up(db); err != nil {
				return err
			}
			log.Info().Msg("migrations applied")
		}

		handler, err := newHTTPHandler(ctx, cfg, store.New(db))
		if err != nil {
			return err
		}

		server := &http.Server{
			Addr:              cfg.Server.Addr(),
			Handler:           handler,
			ReadTimeout:       15 * time.Second,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			log.Info().Str("addr", server.Addr).Msg("API listening")
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			if err != nil {
				return fmt.Errorf("server failed: %w", err)
			}
			return nil
		case <-ctx.Done():
		}

		log.Info().Msg("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		log.Info().Msg("server exited")
		return nil
	},
}

func init() {
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", false, "apply pending migrations before serving")
}

func newHTTPHandler(ctx context.Context, cfg *config.Config, dataStore *store.Store) (http.Handler, error) {
	issuer := auth.NewIssuer(cfg.Security.JWTSecret, cfg.Security.TokenTTL)

	uploader, err := upload.New(ctx, cfg.Upload)
	if err != nil {
		return nil, fmt.Errorf("init uploads: %w", err)
	}
	if uploader == nil {
		log.Info().Msg("upload provider not configured, uploads disabled")
	}

	sessions := session.NewProvider(session.WithSigner(session.NewSigner(cfg.Security.SessionSigningKey)))

	srv := httpapi.New(httpapi.Services{
		Listings:  listings.New(dataStore),
		Favorites: favorites.New(dataStore),
		Views:     views.New(dataStore),
		Inquiries: inquiries.New(dataStore),
		Contact:   contact.New(dataStore),
		Accounts:  accounts.New(dataStore, issuer),
		Uploader:  uploader,
		Tokens:    issuer,
		Sessions:  sessions,
		Cookies:   session.CookieOptions{Secure: cfg.Security.SecureCookies},
	})

	handler := srv.Routes()
	if cfg.Obfuscation.Enabled {
		routes, err := obfuscate.ReadFromFile(cfg.Obfuscation.MapPath)
		if err != nil {
			return nil, err
		}
		handler = routes.Middleware()(handler)
		log.Info().Int("routes", len(routes.Routes)).Msg("route obfuscation enabled")
	}

	handler = middleware.CORS(cfg.CORS.AllowedOrigins)(handler)
	handler = middleware.RequestLogging()(handler)
	handler = middleware.Recovery()(handler)
	return handler, nil
}
