package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/isdelr/lexilearn-be/internal/api"
	"github.com/isdelr/lexilearn-be/internal/auth"
	"github.com/isdelr/lexilearn-be/internal/config"
	"github.com/isdelr/lexilearn-be/internal/database"
	"github.com/isdelr/lexilearn-be/internal/logger"
	"github.com/isdelr/lexilearn-be/internal/monitoring"
	"github.com/isdelr/lexilearn-be/internal/services"
	"github.com/isdelr/lexilearn-be/internal/speech"
	"github.com/isdelr/lexilearn-be/internal/store"
	"github.com/isdelr/lexilearn-be/internal/websocket"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load configuration
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	logger.Init(cfg.LogLevel)

	// Set up storage
	st, err := openStore(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize store")
	}
	defer st.Close()

	catalog, err := services.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.CatalogPath).Msg("Failed to load content catalog")
	}

	// Set up WebSocket Hub
	hub := websocket.NewHub()
	go hub.Run()

	// Set up services
	codec := auth.NewTokenCodec([]byte(cfg.JWTSecret), cfg.TokenTTL)
	eventService := services.NewEventService(hub)
	userService := services.NewUserService(st)
	contentService := services.NewContentService(catalog, userService)
	performanceService := services.NewPerformanceService(st, eventService, services.PlaceholderSkills{})

	// Set up and run the background stats updater
	statUpdater := monitoring.NewStatUpdater(cfg.StatsInterval)
	go statUpdater.Run()

	// Set up and run the analytics digest
	digest, err := monitoring.NewDigestScheduler(cfg.DigestSchedule, performanceService, eventService)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create digest scheduler")
	}
	digest.Start()

	// Set up router
	router := api.NewRouter(api.Deps{
		Codec:          codec,
		Users:          userService,
		Content:        contentService,
		Performance:    performanceService,
		Speaker:        speech.NewCommandSpeaker(cfg.TTSCommand),
		Transcriber:    speech.NewCommandTranscriber(cfg.STTCommand, cfg.STTListenWindow),
		Stats:          statUpdater,
		Hub:            hub,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("ListenAndServe failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	statUpdater.Stop()
	digest.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	hub.Stop()

	log.Info().Msg("Server exiting")
}

// openStore returns the in-memory store when path is empty and a migrated
// SQLite store otherwise.
func openStore(path string) (store.Store, error) {
	if path == "" {
		log.Info().Msg("Using in-memory store")
		return store.NewMemoryStore(), nil
	}

	db, err := database.New(path)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply database migrations: %w", err)
	}
	log.Info().Str("path", path).Msg("Using SQLite store")
	return store.NewSQLStore(db), nil
}
