package api

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
	"gorm.io/gorm"

	"github.com/mozteach/teach-api/internal/adapters/config"
	"github.com/mozteach/teach-api/internal/adapters/controller/http/handlers"
	"github.com/mozteach/teach-api/internal/adapters/controller/http/middlewares"
	"github.com/mozteach/teach-api/internal/adapters/database/postgres"
	"github.com/mozteach/teach-api/internal/domain/service"
	"github.com/mozteach/teach-api/pkg/logger"
	"github.com/mozteach/teach-api/pkg/logger/types"
	"github.com/mozteach/teach-api/pkg/smtp"
)

type API struct {
	Server *http.Server
	DB     *gorm.DB
	Logger *types.Logger
}

func New(cfg *config.Config) (*API, error) {
	apiLogger, err := logger.Named("api")
	if err != nil {
		return nil, err
	}
	smtpLogger, err := logger.Named("smtp")
	if err != nil {
		return nil, err
	}

	userStorage := postgres.NewUserStorage(cfg.Database)
	clubStorage := postgres.NewClubStorage(cfg.Database)
	tokenStorage := postgres.NewTokenStorage(cfg.Database)

	mailClient := smtp.NewClient(cfg.SMTPDialer, cfg.App.MailFrom)
	notifyService := service.NewNotifyService(mailClient, cfg.App.StaffEmails, smtpLogger)
	clubService := service.NewClubService(clubStorage, notifyService)

	verifier := service.NewPersonaVerifier(cfg.App.PersonaVerifierURL)
	authService := service.NewAuthService(verifier, userStorage, tokenStorage, cfg.App.Audience)

	if cfg.App.BootstrapUsername != "" {
		userService := service.NewUserService(userStorage)
		user, errEnsure := userService.EnsureUser(context.Background(), cfg.App.BootstrapUsername, cfg.App.BootstrapEmail)
		if errEnsure != nil {
			return nil, errEnsure
		}
		apiLogger.Infof("bootstrap account %q ready", user.Username)
	}

	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.StripSlashes)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	h := handlers.New(clubService, authService, cfg.App, apiLogger)
	auth := middlewares.New(authService, apiLogger)
	h.SetRoutes(r, auth)

	server := &http.Server{
		Addr:         cfg.App.ListenAddr,
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &API{
		Server: server,
		DB:     cfg.Database,
		Logger: apiLogger,
	}, nil
}

// Start runs the server and blocks until SIGINT/SIGTERM, then shuts
// down gracefully.
func (a *API) Start() {
	go func() {
		logger.Log.Infof("API listening on %s", a.Server.Addr)
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Panicf("ListenAndServe: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.Server.Shutdown(ctx); err != nil {
		a.Logger.Errorf("graceful shutdown failed: %v", err)
	}
	logger.Log.Info("API stopped")
}
