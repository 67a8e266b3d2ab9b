// Command bearergate serves a single protected route, GET /, behind the
// bearer gate. It is configured from the environment; see package config.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/bearergate/bearergate"
	"github.com/bearergate/bearergate/config"
	"github.com/bearergate/bearergate/keys"
	"github.com/bearergate/bearergate/validator"
)

const shutdownTimeout = 10 * time.Second

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}
	log.SetLevel(cfg.Level())
	logger := bearergate.NewLogrusLogger(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	material, err := bearergate.LoadKeyMaterial(ctx, cfg, logger)
	if err != nil {
		log.WithError(err).Fatal("could not load key material")
	}

	handler, err := setupHandler(material, cfg, logger)
	if err != nil {
		log.WithError(err).Fatal("could not set up handler")
	}

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("shutdown did not complete")
		}
	}()

	log.WithField("addr", cfg.ListenAddr).Info("listening")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Fatal("server stopped")
	}
}

// setupHandler wires the validator and middleware around the index route.
func setupHandler(material *keys.Material, cfg config.Config, logger bearergate.Logger) (http.Handler, error) {
	v, err := validator.New(
		validator.WithKeyMaterial(material),
		validator.WithAllowedClockSkew(cfg.Leeway),
	)
	if err != nil {
		return nil, err
	}

	middleware, err := bearergate.New(
		bearergate.WithValidator(v),
		bearergate.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("GET /{$}", middleware.CheckJWT(http.HandlerFunc(index)))

	return mux, nil
}

// index answers an authenticated request with an empty body.
func index(http.ResponseWriter, *http.Request) {}
