package migrations

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/kidstore/config"
)

func init() {
	Register("20260101000000_product_indexes", productIndexes)
}

// productIndexes creates the lookup indexes the list and search paths rely
// on. CreateMany is idempotent; existing indexes are left untouched.
func productIndexes(ctx context.Context, db *mongo.Database) error {
	col := db.Collection(config.ProductCollection())

	_, err := col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "barcode", Value: 1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "name", Value: 1}}},
	})
	return err
}
