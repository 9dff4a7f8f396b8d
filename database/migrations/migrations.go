// Package migrations prepares the MongoDB collections: each migration file
// registers itself via init(), and the CLI's migrate command runs them in
// order. With a schemaless store these are index and collection setup steps
// rather than table DDL, but the registry keeps the same shape.
package migrations

import (
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/mongo"
)

// MigrationFunc prepares one aspect of the database (indexes, collections).
type MigrationFunc func(ctx context.Context, db *mongo.Database) error

type entry struct {
	name string
	fn   MigrationFunc
}

var (
	mu      sync.Mutex
	entries []entry
)

// Register adds a migration to the global registry.
// Call this from init() in your migration files.
func Register(name string, fn MigrationFunc) {
	mu.Lock()
	defer mu.Unlock()
	entries = append(entries, entry{name: name, fn: fn})
}

// RunAll executes every registered migration in registration order.
// Migrations must be idempotent; they run on every invocation.
func RunAll(ctx context.Context, db *mongo.Database) error {
	mu.Lock()
	current := make([]entry, len(entries))
	copy(current, entries)
	mu.Unlock()

	for _, e := range current {
		fmt.Printf("  • Running migration: %s … ", e.name)
		if err := e.fn(ctx, db); err != nil {
			fmt.Println("FAILED")
			return fmt.Errorf("migration %q: %w", e.name, err)
		}
		fmt.Println("done")
	}
	return nil
}
