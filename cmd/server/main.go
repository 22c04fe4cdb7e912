package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	stdhttp "net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/vncsmyrnk/pollview/internal/adapters/handler/http"
	memorykv "github.com/vncsmyrnk/pollview/internal/adapters/persistence/memory"
	rediskv "github.com/vncsmyrnk/pollview/internal/adapters/persistence/redis"
	"github.com/vncsmyrnk/pollview/internal/adapters/repository/memory"
	"github.com/vncsmyrnk/pollview/internal/config"
	"github.com/vncsmyrnk/pollview/internal/core/ports"
	"github.com/vncsmyrnk/pollview/internal/core/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}
	cfg := config.Load()

	repo := memory.New()
	repo.SetLatency(cfg.RepositoryLatency)

	var kv ports.KeyValueStore
	if cfg.RedisURL != "" {
		store, err := rediskv.NewStore(cfg.RedisURL)
		if err != nil {
			log.Fatalf("connecting to redis: %v", err)
		}
		defer store.Close()
		kv = store
	} else {
		log.Println("REDIS_URL not set, persisting session state in memory")
		kv = memorykv.NewStore()
	}

	marker := &services.ContinuityMarker{}
	sessionService := services.NewSessionService(repo, kv, marker, cfg.SessionCheckInterval, nil)
	stateService := services.NewStateService(repo, sessionService)
	preferenceService := services.NewPreferenceService(kv, nil)
	pollService := services.NewPollService(stateService, sessionService, preferenceService, nil)
	stateService.SetInvalidator(pollService)
	sessionService.SetInvalidator(pollService)
	leaderboardService := services.NewLeaderboardService(stateService)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := stateService.Load(ctx); err != nil {
		log.Fatalf("loading entity slices: %v", err)
	}
	if err := sessionService.Restore(ctx); err != nil {
		log.Fatalf("restoring session: %v", err)
	}
	sessionService.Start(ctx)

	authHandler := http.NewAuthHandler(sessionService, cfg.SessionDurationMinutes)
	pollHandler := http.NewPollHandler(pollService, stateService, sessionService, leaderboardService)
	handler := http.NewHandler(authHandler, pollHandler, marker)
	server := &stdhttp.Server{Addr: cfg.Addr, Handler: handler}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	fmt.Println("Gracefully shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal(err)
	}
}
