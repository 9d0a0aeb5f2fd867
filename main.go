package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/isdelr/mesto-api/internal/api"
	"github.com/isdelr/mesto-api/internal/auth"
	"github.com/isdelr/mesto-api/internal/config"
	"github.com/isdelr/mesto-api/internal/database"
	"github.com/isdelr/mesto-api/internal/logger"
	"github.com/isdelr/mesto-api/internal/services"
	"github.com/isdelr/mesto-api/internal/store"
	"github.com/isdelr/mesto-api/internal/store/mongo"
	"github.com/isdelr/mesto-api/internal/store/sqlite"
)

const sqliteScheme = "sqlite://"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	closeLogs, err := logger.Init(cfg.LogLevel, cfg.LogDir)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize logger")
	}
	defer closeLogs()

	if cfg.DevSecret {
		log.Warn().Msg("JWT_SECRET is not set, signing tokens with the development secret")
	}

	// Set up the store
	st, err := openStore(context.Background(), cfg.StoreURL)
	if err != nil {
		log.Fatal().Err(err).Str("store_url", redact(cfg.StoreURL)).Msg("Failed to open store")
	}

	// Set up services
	tokens := auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL)
	hasher := auth.NewHasher(cfg.BcryptCost)
	userService := services.NewUserService(st, hasher, tokens)
	cardService := services.NewCardService(st, st)

	// Set up router
	router := api.NewRouter(cfg.AllowedOrigins, tokens, userService, cardService)

	// Set up server
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Str("env", cfg.Env).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info().Str("signal", sig.String()).Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	if err := st.Close(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to close store")
	}

	log.Info().Msg("Server exiting")
}

// openStore picks the backend from the url scheme: sqlite://<path> opens an
// embedded database, anything else is treated as a MongoDB uri.
func openStore(ctx context.Context, url string) (store.Store, error) {
	if path, ok := strings.CutPrefix(url, sqliteScheme); ok {
		db, err := database.New(path)
		if err != nil {
			return nil, err
		}
		if err := database.Migrate(db); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply database migrations: %w", err)
		}
		log.Info().Str("path", path).Msg("Using SQLite store")
		return sqlite.New(db), nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	return mongo.Open(connectCtx, url)
}

// redact drops credentials from a store url before it is logged.
func redact(url string) string {
	scheme, rest, ok := strings.Cut(url, "://")
	if !ok {
		return url
	}
	if at := strings.LastIndex(rest, "@"); at >= 0 {
		rest = "***@" + rest[at+1:]
	}
	return scheme + "://" + rest
}
