package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"smartparking/internal/api"
	"smartparking/internal/backend"
	"smartparking/internal/config"
	"smartparking/internal/logger"
	"smartparking/internal/repository"
	"smartparking/internal/service"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logg, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logg.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sessions, closeStore, err := openSessionStore(ctx, cfg)
	if err != nil {
		logg.Fatal("Failed to open session store", zap.String("store", cfg.SessionStore), zap.Error(err))
	}
	defer closeStore.Close()

	client := backend.NewClient(cfg.APIURL, cfg.APITimeout)
	authRepo := repository.NewAuthRepository(client)
	lotRepo := repository.NewParkingLotRepository(client)
	slotRepo := repository.NewParkingSlotRepository(client)
	bookingRepo := repository.NewBookingRepository(client)
	aiRepo := repository.NewAIRepository(client)

	var (
		emailSender service.EmailSender
		smsSender   service.SMSSender
	)
	if cfg.SendGrid.Enabled() {
		emailSender = service.NewSendGridSender(cfg.SendGrid)
	}
	if cfg.Twilio.Enabled() {
		smsSender = service.NewTwilioSender(cfg.Twilio)
	}
	notifier, err := service.NewNotifyService(authRepo, emailSender, smsSender, cfg.Location, logg)
	if err != nil {
		logg.Fatal("Failed to build notifier", zap.Error(err))
	}

	parkingSvc := service.NewParkingService(lotRepo, slotRepo, logg)
	bookingSvc := service.NewBookingService(bookingRepo, notifier, cfg.Location, logg)
	authSvc := service.NewAuthService(authRepo, sessions, cfg.SessionTTL, logg)
	liveSvc := service.NewLiveService(aiRepo, cfg.LivePollInterval, logg)

	scheduler, err := service.NewJobService(sessions, logg).Start(cfg.SessionSweepSchedule)
	if err != nil {
		logg.Fatal("Failed to start jobs", zap.Error(err))
	}

	render, err := api.NewRenderer(cfg.Location, logg)
	if err != nil {
		logg.Fatal("Failed to load templates", zap.Error(err))
	}

	router := api.NewRouter(api.Services{
		Parking:  parkingSvc,
		Bookings: bookingSvc,
		Auth:     authSvc,
		Live:     liveSvc,
	}, render, cfg.IsProduction(), logg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logg.Info("Server running",
			zap.String("port", cfg.Port),
			zap.String("api_url", cfg.APIURL),
			zap.String("session_store", cfg.SessionStore))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Fatal("Server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logg.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	<-scheduler.Stop().Done()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logg.Error("Graceful shutdown failed", zap.Error(err))
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func openSessionStore(ctx context.Context, cfg *config.Config) (repository.SessionRepository, io.Closer, error) {
	switch cfg.SessionStore {
	case config.SessionStorePostgres:
		db, err := repository.OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		repo, err := repository.NewPostgresSessionRepository(ctx, db)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		return repo, db, nil
	case config.SessionStoreRedis:
		rdb, err := repository.OpenRedis(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewRedisSessionRepository(rdb), rdb, nil
	default:
		return repository.NewMemorySessionRepository(), nopCloser{}, nil
	}
}
