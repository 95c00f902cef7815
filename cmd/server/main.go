package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lucasmv/flashdeck/internal/access"
	"github.com/lucasmv/flashdeck/internal/api"
	"github.com/lucasmv/flashdeck/internal/config"
	"github.com/lucasmv/flashdeck/internal/db"
	"github.com/lucasmv/flashdeck/internal/logger"
	"github.com/lucasmv/flashdeck/internal/repository/sqlite"
	"github.com/lucasmv/flashdeck/internal/services"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("FlashDeck Server Starting")
	log.Info("===========================================")
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("study_limit=%d", cfg.StudyLimit)
	log.Debug("cookie_max_age_days=%d", cfg.CookieMaxAgeDays)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	userRepo := sqlite.NewUserRepository(database.DB)
	deckRepo := sqlite.NewDeckRepository(database.DB)
	cardRepo := sqlite.NewCardRepository(database.DB)
	sessionRepo := sqlite.NewSessionRepository(database.DB)

	policy := access.New()
	userService := services.NewUserService(userRepo)
	deckService := services.NewDeckService(deckRepo, policy)
	cardService := services.NewCardService(cardRepo, deckRepo, policy, nil)
	sessionService := services.NewSessionService(sessionRepo, cardRepo, deckRepo, policy, nil)

	srv := &api.Server{
		DB:             database.DB,
		UserService:    userService,
		DeckService:    deckService,
		CardService:    cardService,
		SessionService: sessionService,
		CookieMaxAge:   time.Duration(cfg.CookieMaxAgeDays) * 24 * time.Hour,
		StudyLimit:     cfg.StudyLimit,
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Info("===========================================")
	log.Info("FlashDeck Server Stopped")
	log.Info("===========================================")
}
