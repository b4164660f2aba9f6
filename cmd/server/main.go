package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	router "github.com/reks-G/Mrdomsetos/internal/adapters/http"
	"github.com/reks-G/Mrdomsetos/internal/app/orch"
	"github.com/reks-G/Mrdomsetos/internal/auth"
	"github.com/reks-G/Mrdomsetos/internal/config"
	"github.com/reks-G/Mrdomsetos/internal/storage"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initialize zerolog global logger early so config.Load can use it.
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	// Human-friendly output for terminal; in production you may want JSON only.
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.Load()
	if err != nil {
		log.Error().Err(err).Msg("failed to load config")
	}

	store, err := storage.OpenPebble(cfg.DataDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open data store")
	}
	defer store.Close()

	o := orch.New(auth.NewArgon2Hasher(), cfg.RingTimeout)

	snap, err := store.LoadSnapshot()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load snapshot")
	}
	if snap != nil {
		o.Restore(snap)
		log.Info().Msg("state restored from snapshot")
	}

	go snapshotLoop(ctx, cfg.SnapshotInterval, o, store)

	r := router.SetupRouter(ctx, cfg, o)
	addr := fmt.Sprintf(":%d", cfg.Port)

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("hub server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	if err := store.SaveSnapshot(o.Snapshot()); err != nil {
		log.Error().Err(err).Msg("final snapshot failed")
	}
	log.Info().Msg("Server exited gracefully")
}

func snapshotLoop(ctx context.Context, interval time.Duration, o *orch.Orchestrator, store *storage.PebbleStore) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := store.SaveSnapshot(o.Snapshot()); err != nil {
				log.Error().Err(err).Msg("snapshot failed")
			}
		case <-ctx.Done():
			return
		}
	}
}
