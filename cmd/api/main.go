package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"github.com/tayotravel/tourbook/internal/api"
	"github.com/tayotravel/tourbook/internal/codes"
	"github.com/tayotravel/tourbook/internal/ports"
	"github.com/tayotravel/tourbook/internal/repository"
	"github.com/tayotravel/tourbook/internal/service"
	"github.com/tayotravel/tourbook/internal/voucher"
	"github.com/tayotravel/tourbook/pkg/config"
	"github.com/tayotravel/tourbook/pkg/health"
)

type App struct {
	config *config.Config
	log    *logrus.Logger
	server *http.Server
	db     *pgxpool.Pool
	redis  *redis.Client
}

func NewApp(cfg *config.Config, log *logrus.Logger) *App {
	return &App{
		config: cfg,
		log:    log,
	}
}

func (a *App) Initialize(ctx context.Context) error {
	if err := a.setupDatabase(ctx); err != nil {
		return fmt.Errorf("database setup failed: %w", err)
	}

	if err := a.setupServer(ctx); err != nil {
		return fmt.Errorf("server setup failed: %w", err)
	}

	return nil
}

func (a *App) setupDatabase(ctx context.Context) error {
	poolCfg, err := pgxpool.ParseConfig(a.config.Database.DSN())
	if err != nil {
		return fmt.Errorf("failed to parse database config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	a.db = pool
	return nil
}

// setupCodeStore picks Redis when configured and falls back to the
// in-memory store otherwise. Single-instance deployments do not need
// Redis for verification codes.
func (a *App) setupCodeStore(ctx context.Context) (ports.CodeStore, error) {
	if a.config.Redis.Addr == "" {
		a.log.Info("REDIS_ADDR not set, using in-memory verification-code store")
		return codes.NewMemoryStore(), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     a.config.Redis.Addr,
		Password: a.config.Redis.Password,
		DB:       a.config.Redis.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	a.redis = client
	return codes.NewRedisStore(client), nil
}

type Services struct {
	Bookings ports.BookingService
	Reviews  ports.ReviewService
	Auth     ports.AuthService
	Vouchers ports.VoucherService
}

func (a *App) setupServices(ctx context.Context) (Services, error) {
	bookingRepo := repository.NewBookingRepository(a.db)
	reviewRepo := repository.NewReviewRepository(a.db)
	userRepo := repository.NewUserRepository(a.db)

	codeStore, err := a.setupCodeStore(ctx)
	if err != nil {
		return Services{}, err
	}

	return Services{
		Bookings: service.NewBookingService(bookingRepo, a.log),
		Reviews:  service.NewReviewService(reviewRepo, a.log),
		Auth:     service.NewAuthService(userRepo, codeStore, a.config.Auth, a.log),
		Vouchers: voucher.NewProducer(bookingRepo, voucher.NewQREncoder(), a.config.Voucher, a.log),
	}, nil
}

func (a *App) setupServer(ctx context.Context) error {
	services, err := a.setupServices(ctx)
	if err != nil {
		return err
	}

	router := a.setupRouter(services)

	a.server = &http.Server{
		Addr:         a.config.Server.Address,
		Handler:      cors.AllowAll().Handler(router),
		WriteTimeout: a.config.Server.WriteTimeout,
		ReadTimeout:  a.config.Server.ReadTimeout,
		IdleTimeout:  a.config.Server.IdleTimeout,
	}

	return nil
}

func (a *App) setupRouter(services Services) http.Handler {
	router := http.NewServeMux()
	const versionPrefix = "/v1"

	bookings := api.NewBookingHandler(services.Bookings, services.Vouchers, a.log)
	reviews := api.NewReviewHandler(services.Reviews, a.log)
	auth := api.NewAuthHandler(services.Auth, a.log)

	router.HandleFunc("GET "+versionPrefix+"/health", health.Get())

	router.HandleFunc("POST "+versionPrefix+"/auth/login", auth.Login)
	router.HandleFunc("POST "+versionPrefix+"/auth/password-code", auth.RequestPasswordCode)
	router.HandleFunc("POST "+versionPrefix+"/auth/password", auth.ChangePassword)

	router.HandleFunc("POST "+versionPrefix+"/bookings", api.Authenticated(bookings.Create, services.Auth))
	router.HandleFunc("GET "+versionPrefix+"/bookings/my", api.Authenticated(bookings.ListMine, services.Auth))
	router.HandleFunc("GET "+versionPrefix+"/bookings/{id}", api.Authenticated(bookings.Get, services.Auth))
	router.HandleFunc("GET "+versionPrefix+"/bookings/{id}/voucher", api.Authenticated(bookings.DownloadVoucher, services.Auth))
	router.HandleFunc("GET "+versionPrefix+"/bookings", api.AdminOnly(bookings.List, services.Auth))
	router.HandleFunc("GET "+versionPrefix+"/bookings/stats", api.AdminOnly(bookings.Stats, services.Auth))
	router.HandleFunc("PATCH "+versionPrefix+"/bookings/{id}/status", api.AdminOnly(bookings.UpdateStatus, services.Auth))
	router.HandleFunc("PATCH "+versionPrefix+"/bookings/{id}", api.AdminOnly(bookings.Update, services.Auth))
	router.HandleFunc("DELETE "+versionPrefix+"/bookings/{id}", api.AdminOnly(bookings.Delete, services.Auth))

	router.HandleFunc("POST "+versionPrefix+"/tours/{tourID}/reviews", api.Authenticated(reviews.Create, services.Auth))
	router.HandleFunc("GET "+versionPrefix+"/tours/{tourID}/reviews", reviews.ListByTour)
	router.HandleFunc("GET "+versionPrefix+"/tours/{tourID}/reviews/stats", reviews.Stats)
	router.HandleFunc("PATCH "+versionPrefix+"/reviews/{id}", api.Authenticated(reviews.Update, services.Auth))
	router.HandleFunc("DELETE "+versionPrefix+"/reviews/{id}", api.Authenticated(reviews.Delete, services.Auth))
	router.HandleFunc("POST "+versionPrefix+"/reviews/{id}/approve", api.AdminOnly(reviews.Approve, services.Auth))
	router.HandleFunc("POST "+versionPrefix+"/reviews/{id}/reject", api.AdminOnly(reviews.Reject, services.Auth))

	// Generated vouchers are also served as static files under their
	// public prefix, mirroring what gets recorded on the booking row.
	prefix := a.config.Voucher.PublicPrefix + "/"
	router.Handle("GET "+prefix, http.StripPrefix(prefix, http.FileServer(http.Dir(a.config.Voucher.OutputDir))))

	return router
}

func (a *App) Run(ctx context.Context) error {
	serverErrors := make(chan error, 1)

	go func() {
		a.log.WithField("address", a.server.Addr).Info("starting server")
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-shutdown:
		a.log.Info("starting graceful shutdown")
		return a.Shutdown(ctx)
	case <-ctx.Done():
		return a.Shutdown(ctx)
	}
}

func (a *App) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.log.WithError(err).Warn("redis close failed")
		}
	}

	if a.db != nil {
		a.db.Close()
	}

	return nil
}

func main() {
	ctx := context.Background()

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	app := NewApp(cfg, log)
	if err := app.Initialize(ctx); err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}
