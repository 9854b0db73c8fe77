package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cresolva/notify-relay/internal/api"
	"github.com/cresolva/notify-relay/internal/config"
	"github.com/cresolva/notify-relay/internal/logger"
	"github.com/cresolva/notify-relay/internal/provider"
	"github.com/cresolva/notify-relay/internal/relay"
)

func main() {
	// Load configuration once; the relay never re-reads the environment.
	cfg, err := config.Load("config")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewFromOptions(logger.Options{
		Level:     cfg.Logging.Level,
		Output:    cfg.Logging.Output,
		FilePath:  cfg.Logging.FilePath,
		MaxSizeMB: cfg.Logging.MaxSizeMB,
		MaxFiles:  cfg.Logging.MaxFiles,
	})
	log.Info().Str("mode", cfg.Mode).Msg("starting notification relay")

	selector := provider.NewSelector(cfg, nil, log)
	builder := &relay.Builder{
		Operator: cfg.Mail.User,
		Phone:    cfg.SMS.PhoneNumber,
		Gateways: cfg.SMS.Gateways,
	}
	rl := relay.New(selector, builder, log)

	router := api.NewRouter(cfg, rl, log)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("relay server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info().Str("signal", sig.String()).Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}

	log.Info().Msg("server stopped")
}
