package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	alertapp "github.com/go-crm-api/internal/application/alert"
	contactapp "github.com/go-crm-api/internal/application/contact"
	diaryapp "github.com/go-crm-api/internal/application/diary"
	medicineapp "github.com/go-crm-api/internal/application/medicine"
	noteapp "github.com/go-crm-api/internal/application/note"
	quoteapp "github.com/go-crm-api/internal/application/quote"
	sessionapp "github.com/go-crm-api/internal/application/session"
	userapp "github.com/go-crm-api/internal/application/user"
	"github.com/go-crm-api/internal/config"
	"github.com/go-crm-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/go-crm-api/internal/infrastructure/jwt"
	s3infra "github.com/go-crm-api/internal/infrastructure/s3"
	snsinfra "github.com/go-crm-api/internal/infrastructure/sns"
	"github.com/go-crm-api/internal/pkg/clock"
	"github.com/go-crm-api/internal/scheduler"
	transport "github.com/go-crm-api/internal/transport/http"
	"github.com/go-crm-api/internal/transport/http/handler"
	"github.com/go-crm-api/internal/transport/http/middleware"
)

// verifierAdapter bridges the JWT provider to the transport's claims type.
type verifierAdapter struct {
	provider *jwtinfra.Provider
}

func (a verifierAdapter) Verify(token string) (*middleware.Claims, error) {
	claims, err := a.provider.Verify(token)
	if err != nil {
		return nil, err
	}
	return &middleware.Claims{
		UserID:    claims.UserID,
		Username:  claims.Username,
		Role:      claims.Role,
		SessionID: claims.SessionID,
	}, nil
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}
	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	ctx := context.Background()
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(ctx, dynamoClient, cfg.DynamoTables)

	jwtProvider, err := jwtinfra.NewProvider(cfg)
	if err != nil {
		log.Fatalf("jwt provider: %v", err)
	}

	var smsSender snsinfra.SMSSender
	if cfg.AppEnv == "production" {
		smsSender, err = snsinfra.NewSender(cfg)
		if err != nil {
			logger.Warn("sns sender unavailable, sweep notifications disabled", "err", err)
		}
	}

	s3Client := s3infra.NewClient(cfg)
	audioStore := s3infra.NewStore(s3Client, cfg.S3BucketName)

	userRepo := dynamo.NewUserRepo(dynamoClient, cfg.DynamoTables.Users)
	sessionRepo := dynamo.NewSessionRepo(dynamoClient, cfg.DynamoTables.Sessions)
	contactRepo := dynamo.NewContactRepo(dynamoClient, cfg.DynamoTables.Contacts)
	alertRepo := dynamo.NewAlertRepo(dynamoClient, cfg.DynamoTables.Alerts)
	noteRepo := dynamo.NewNoteRepo(dynamoClient, cfg.DynamoTables.Notes)
	quoteRepo := dynamo.NewQuoteRepo(dynamoClient, cfg.DynamoTables.Quotes)
	diaryRepo := dynamo.NewDiaryRepo(dynamoClient, cfg.DynamoTables.Diaries)
	medicineRepo := dynamo.NewMedicineRepo(dynamoClient, cfg.DynamoTables.Medicines)

	clk := clock.System{}

	alertSvc := alertapp.NewService(alertapp.ServiceDeps{
		AlertRepo:   alertRepo,
		ContactRepo: contactRepo,
		UserRepo:    userRepo,
		SMSSender:   smsSender,
		Clock:       clk,
		Offset:      cfg.AlertOffset(),
		Logger:      logger,
	})
	contactSvc := contactapp.NewService(contactapp.ServiceDeps{
		ContactRepo: contactRepo,
		AlertSync:   alertSvc,
		AudioStore:  audioStore,
		Clock:       clk,
		Logger:      logger,
	})
	userSvc := userapp.NewService(userRepo, sessionRepo, clk, logger)
	sessionSvc := sessionapp.NewService(sessionapp.ServiceDeps{
		SessionRepo:      sessionRepo,
		UserRepo:         userRepo,
		Signer:           jwtProvider,
		Clock:            clk,
		RefreshExpirySec: int64(cfg.RefreshTokenExpiry().Seconds()),
		Logger:           logger,
	})
	noteSvc := noteapp.NewService(noteRepo, clk)
	quoteSvc := quoteapp.NewService(quoteRepo, clk)
	diarySvc := diaryapp.NewService(diaryRepo, clk)
	medicineSvc := medicineapp.NewService(medicineRepo, clk)

	router := transport.NewRouter(transport.RouterDeps{
		Sessions:       handler.NewSessionHandler(sessionSvc),
		Users:          handler.NewUserHandler(userSvc),
		Contacts:       handler.NewContactHandler(contactSvc),
		Alerts:         handler.NewAlertHandler(alertSvc, clk),
		Notes:          handler.NewNoteHandler(noteSvc),
		Quotes:         handler.NewQuoteHandler(quoteSvc),
		Diaries:        handler.NewDiaryHandler(diarySvc),
		Medicines:      handler.NewMedicineHandler(medicineSvc),
		Verifier:       verifierAdapter{provider: jwtProvider},
		Logger:         logger,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	sweep, err := scheduler.New(cfg.SweepSpec, cfg.AlertLocation(), func(ctx context.Context, now time.Time) {
		alertSvc.SweepOnce(ctx, now)
	}, logger)
	if err != nil {
		log.Fatalf("scheduler: %v", err)
	}
	sweep.Start()

	server := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("listening", "port", cfg.AppPort, "env", cfg.AppEnv)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	sweep.Stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "err", err)
	}
	logger.Info("bye")
}
