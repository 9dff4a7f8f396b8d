package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/kidstore/app/repositories"
)

// exportRow is the flat CSV shape, matching the HTTP export endpoint.
type exportRow struct {
	Name           string  `csv:"name"`
	Category       string  `csv:"category"`
	Brand          string  `csv:"brand"`
	Location       string  `csv:"location"`
	Unit           string  `csv:"unit"`
	Barcode        string  `csv:"barcode"`
	ImportPrice    float64 `csv:"import_price"`
	WholesalePrice float64 `csv:"wholesale_price"`
	RetailPrice    float64 `csv:"retail_price"`
	StockAlert     int     `csv:"stock_alert"`
}

var exportOut string

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "write CSV to a file instead of stdout")
}

// kidstore export — dump the catalog as CSV.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the product catalog as CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDatabase(func(ctx context.Context, db *mongo.Database) error {
			repo := repositories.NewProductRepository(db)
			products, err := repo.GetProducts(ctx)
			if err != nil {
				return err
			}

			rows := make([]exportRow, len(products))
			for i, p := range products {
				rows[i] = exportRow{
					Name:           p.Name,
					Category:       p.Category,
					Brand:          p.Brand,
					Location:       p.Location,
					Unit:           p.Unit,
					Barcode:        p.Barcode,
					ImportPrice:    p.ImportPrice,
					WholesalePrice: p.WholesalePrice,
					RetailPrice:    p.RetailPrice,
					StockAlert:     p.StockAlert,
				}
			}

			out := os.Stdout
			if exportOut != "" {
				f, err := os.Create(exportOut)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}

			if err := gocsv.Marshal(rows, out); err != nil {
				return err
			}
			if exportOut != "" {
				fmt.Printf("Exported %d products to %s\n", len(rows), exportOut)
			}
			return nil
		})
	},
}
