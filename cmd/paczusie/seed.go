package main

import (
	"context"
	"fmt"

	"paczusie/internal/db"
	"paczusie/internal/seed"
	"paczusie/internal/store"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var seedCommand = &cli.Command{
	Name:  "seed",
	Usage: "Seed the database with initial data",
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		ctx := context.Background()

		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()

		logrus.Info("Connected to database")

		categoryRepo := store.NewCategoryRepository(pool)
		userRepo := store.NewUserRepository(pool)

		logrus.Info("Seeding categories...")
		if err := seed.SeedCategories(ctx, categoryRepo); err != nil {
			return fmt.Errorf("failed to seed categories: %w", err)
		}

		logrus.Info("Seeding users...")
		if err := seed.SeedUsers(ctx, userRepo); err != nil {
			return fmt.Errorf("failed to seed users: %w", err)
		}

		logrus.Info("Seed complete")

		return nil
	},
}
