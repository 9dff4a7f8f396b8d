package seeders

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/kidstore/app/models"
	"github.com/shashiranjanraj/kidstore/app/repositories"
	"github.com/shashiranjanraj/kidstore/pkg/barcode"
)

func init() {
	Register("products", SeedProducts)
}

// SeedProducts loads a small sample catalog. Skips seeding when the
// collection already has documents, so repeated runs stay idempotent.
func SeedProducts(ctx context.Context, db *mongo.Database) error {
	repo := repositories.NewProductRepository(db)

	existing, err := repo.GetProducts(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		fmt.Printf("(%d products already present, skipping) ", len(existing))
		return nil
	}

	samples := []models.Product{
		{
			Name: "Giày thể thao bé trai Bitis", Category: "shoes", Brand: "Bitis",
			Unit: "đôi", ImportPrice: 150000, WholesalePrice: 180000, RetailPrice: 210000,
			StockAlert: 5, AllowSelling: true, FastSell: true,
		},
		{
			Name: "Áo thun bé gái cotton", Category: "clothing", Brand: "YODY",
			Unit: "cái", ImportPrice: 60000, WholesalePrice: 72000, RetailPrice: 84000,
			StockAlert: 10, AllowSelling: true, FastSell: true,
		},
		{
			Name: "Bộ xếp hình sáng tạo", Category: "toys", Brand: "LEGO",
			Unit: "bộ", ImportPrice: 450000, WholesalePrice: 540000, RetailPrice: 630000,
			StockAlert: 2, AllowSelling: true, FastSell: false, HasVariants: true,
		},
		{
			Name: "Truyện tranh thiếu nhi", Category: "books", Brand: "Kim Đồng",
			Unit: "cuốn", ImportPrice: 25000, WholesalePrice: 30000, RetailPrice: 35000,
			StockAlert: 20, AllowSelling: true, FastSell: true,
		},
		{
			Name: "Sữa bột công thức hộp 900g", Category: "food", Brand: "Vinamilk",
			Unit: "hộp", ImportPrice: 320000, WholesalePrice: 384000, RetailPrice: 448000,
			StockAlert: 8, AllowSelling: true, FastSell: true,
		},
	}

	for i := range samples {
		if samples[i].Barcode == "" {
			samples[i].Barcode = barcode.Generate()
		}
		if _, err := repo.AddProduct(ctx, samples[i]); err != nil {
			return err
		}
	}
	return nil
}
