package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/kidstore/config"
	"github.com/shashiranjanraj/kidstore/database/migrations"
	"github.com/shashiranjanraj/kidstore/database/seeders"
	"github.com/shashiranjanraj/kidstore/pkg/database"
)

// withDatabase loads config, connects to MongoDB, runs fn, and disconnects.
func withDatabase(fn func(ctx context.Context, db *mongo.Database) error) error {
	if err := config.Load(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.Connect(ctx)
	if err != nil {
		return err
	}
	defer database.Disconnect(context.Background(), db)

	return fn(ctx, db)
}

// kidstore migrate — create collections and indexes.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the catalog collections and indexes",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("Preparing database …")
		return withDatabase(migrations.RunAll)
	},
}

// kidstore seed — load sample catalog data.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the catalog with sample products",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("Seeding database …")
		return withDatabase(seeders.RunAll)
	},
}
