package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"paczusie/internal/auth"
	"paczusie/internal/db"
	"paczusie/internal/server"
	"paczusie/internal/store"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var serveCommand = &cli.Command{
	Name:   "serve",
	Usage:  "Start the HTTP server",
	Action: serve,
}

func serve(cCtx *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	config, err := loadConfig()
	if err != nil {
		return err
	}

	pool, err := db.Connect(ctx, config)
	if err != nil {
		return err
	}
	defer pool.Close()

	userRepo := store.NewUserRepository(pool)
	businessRepo := store.NewBusinessRepository(pool)
	adRepo := store.NewAdRepository(pool)
	categoryRepo := store.NewCategoryRepository(pool)
	adCategoryRepo := store.NewAdCategoryRepository(pool)
	reviewRepo := store.NewReviewRepository(pool)
	cascade := store.NewCascadeEngine(pool)

	tokens := auth.NewTokens(config.JWTSecret, time.Duration(config.TokenTTLMin)*time.Minute)

	srv, err := server.New(
		config,
		logger,
		userRepo,
		businessRepo,
		adRepo,
		categoryRepo,
		adCategoryRepo,
		reviewRepo,
		cascade,
		tokens,
	)
	if err != nil {
		return err
	}

	go func() {
		logger.WithField("port", config.ServerPort).Infof("server starting http://localhost:%d", config.ServerPort)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Stop(shutdownCtx)
}
