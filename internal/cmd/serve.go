package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/guy32807/travel-recommentation/internal/amadeus"
	"github.com/guy32807/travel-recommentation/internal/billing"
	"github.com/guy32807/travel-recommentation/internal/booking"
	"github.com/guy32807/travel-recommentation/internal/config"
	"github.com/guy32807/travel-recommentation/internal/handler"
	"github.com/guy32807/travel-recommentation/internal/middleware"
	"github.com/guy32807/travel-recommentation/internal/places"
	"github.com/guy32807/travel-recommentation/internal/repo"
	"github.com/guy32807/travel-recommentation/internal/service"
)

const (
	serveCmdUsage = "serve"
	serveCmdShort = "start the HTTP API server"
	serveCmdLong  = `Start the HTTP API server.

	The destination store is MongoDB when MONGODB_URI is set and Postgres
	otherwise. Amadeus, Google Places and Stripe routes answer 503 until their
	credentials are configured. SIGINT or SIGTERM drains in-flight requests
	for up to 15 seconds before exiting.`

	serveCmdExample = `# Apply pending migrations, then serve
	travelapi serve --migrate`

	migrateFlagName = "migrate"

	shutdownTimeout = 15 * time.Second
)

type serveFlags struct {
	migrate bool
}

func (f *serveFlags) addFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.migrate, migrateFlagName, false, "apply pending migrations before serving")
}

func serveCmd(root *rootFlags) *cobra.Command {
	flags := &serveFlags{}
	cmd := &cobra.Command{
		Use:     serveCmdUsage,
		Short:   heredoc.Doc(serveCmdShort),
		Long:    heredoc.Doc(serveCmdLong),
		Example: heredoc.Doc(serveCmdExample),

		SilenceErrors: true,
		SilenceUsage:  true,

		Args:              cobra.NoArgs,
		ValidArgsFunction: cobra.NoFileCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(root.envFiles)
			if err != nil {
				return handleError(cmd, err)
			}
			log := newLogger(cmd.OutOrStdout(), cfg.LogLevel)
			slog.SetDefault(log)

			if err := serve(cmd.Context(), cfg, log, flags.migrate); err != nil {
				return handleError(cmd, err)
			}
			return nil
		},
	}

	flags.addFlags(cmd)
	return cmd
}

// serve runs the API until ctx ends or a termination signal arrives.
func serve(ctx context.Context, cfg config.Config, log *slog.Logger, migrate bool) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer st.close()

	if migrate {
		if err := runMigrations(ctx, st, "up", nil, log); err != nil {
			return err
		}
	}

	// Explicit timeouts prevent slowloris and resource exhaustion. The write
	// timeout leaves room for a full upstream round trip.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      newRouter(cfg, log, st.destinations),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.UpstreamTimeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("server starting", "addr", srv.Addr, "environment", cfg.Environment, "store", st.kind)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("cmd.serve: %w", err)
	case <-ctx.Done():
	}
	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("cmd.serve: shutdown: %w", err)
	}
	log.Info("server stopped")
	return nil
}

// newRouter wires every collaborator and the middleware chain. Optional
// providers stay nil interfaces when their credentials are missing.
func newRouter(cfg config.Config, log *slog.Logger, destinations repo.DestinationRepo) http.Handler {
	upstream := &http.Client{Timeout: cfg.UpstreamTimeout}

	deps := handler.Deps{
		Destinations: service.NewDestinationService(destinations),
		Export:       service.NewExportService(destinations),
		Booking: booking.NewCatalog(booking.Options{
			BookingAffiliateID: cfg.BookingAffiliateID,
			ExpediaAffiliateID: cfg.ExpediaAffiliateID,
		}),
		ExternalMiddleware: middleware.NewRateLimiter(cfg.ExternalRateLimit, cfg.ExternalRateBurst).Handler,
		Logger:             log,
		Environment:        cfg.Environment,
		Port:               cfg.Port,
		Configured: map[string]bool{
			"amadeus":          cfg.Amadeus.Enabled(),
			"googlePlaces":     cfg.Places.APIKey != "",
			"stripe":           cfg.StripeSecretKey != "",
			"bookingAffiliate": cfg.BookingAffiliateID != "",
			"expediaAffiliate": cfg.ExpediaAffiliateID != "",
		},
	}

	if cfg.Amadeus.Enabled() {
		tokens := amadeus.NewTokenCache(amadeus.NewOAuthFetcher(cfg.Amadeus.BaseURL, cfg.Amadeus.APIKey, cfg.Amadeus.APISecret, upstream))
		deps.Amadeus = amadeus.NewClient(cfg.Amadeus.BaseURL, tokens, upstream)
	} else {
		log.Warn("Amadeus credentials not set; /api/external/amadeus routes will answer 503")
	}
	if cfg.Places.APIKey != "" {
		deps.Places = places.NewClient(cfg.Places.BaseURL, cfg.Places.APIKey, upstream)
	}

	var subscriber service.Subscriber
	if cfg.StripeSecretKey != "" {
		subscriber = billing.NewClient(cfg.StripeSecretKey, nil)
	}
	deps.Subscriptions = service.NewSubscriptionService(subscriber)

	// RequestID → RealIP → Logger → Recoverer, then CORS and the body cap.
	// RealIP rewrites RemoteAddr, which keys the rate limiter, so it is only
	// installed when a trusted proxy sets the forwarding headers.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	if cfg.TrustProxyHeaders {
		r.Use(chimiddleware.RealIP)
	}
	r.Use(middleware.NewSlogLogger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))
	r.Mount("/", handler.NewServer(deps).Routes())
	return r
}
