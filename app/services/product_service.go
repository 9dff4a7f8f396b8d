package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/shashiranjanraj/kidstore/app/models"
	"github.com/shashiranjanraj/kidstore/pkg/barcode"
	"github.com/shashiranjanraj/kidstore/pkg/event"
	"github.com/shashiranjanraj/kidstore/pkg/metrics"
	"github.com/shashiranjanraj/kidstore/pkg/numeric"
	"github.com/shashiranjanraj/kidstore/pkg/validate"
)

// Catalog event names fired on successful mutations. Listeners are wired in
// internal/server (cache invalidation, websocket broadcast).
const (
	EventProductCreated = "product.created"
	EventProductUpdated = "product.updated"
	EventProductDeleted = "product.deleted"
)

// CatalogStore is the persistence surface the product service needs. The
// concrete Mongo repository satisfies it; tests inject fakes.
type CatalogStore interface {
	AddProduct(ctx context.Context, p models.Product) (string, error)
	GetProducts(ctx context.Context) ([]models.Product, error)
	GetProductByID(ctx context.Context, id string) (*models.Product, error)
	UpdateProduct(ctx context.Context, id string, fields map[string]any) error
	DeleteProduct(ctx context.Context, id string) error
}

// ValidationError marks an input failure the client can fix. Controllers map
// it to a 422 response; everything else becomes a 500.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func inputErr(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ProductForm is the raw shape submitted by clients. Text fields arrive as
// strings; prices and stock alert may be numbers or formatted strings (both
// handled by pkg/numeric); the three flags use pointers so an absent value is
// distinguishable from an explicit false.
type ProductForm struct {
	Name           string `json:"name"`
	Category       string `json:"category"`
	Brand          string `json:"brand"`
	Location       string `json:"location"`
	Unit           string `json:"unit"`
	Barcode        string `json:"barcode"`
	ImportPrice    any    `json:"importPrice"`
	WholesalePrice any    `json:"wholesalePrice"`
	RetailPrice    any    `json:"retailPrice"`
	StockAlert     any    `json:"stockAlert"`
	HasVariants    *bool  `json:"hasVariants"`
	AllowSelling   *bool  `json:"allowSelling"`
	FastSell       *bool  `json:"fastSell"`
}

// ProductService builds validated product records and orchestrates catalog
// mutations against an injected store.
type ProductService struct {
	store CatalogStore
}

func NewProductService(store CatalogStore) *ProductService {
	return &ProductService{store: store}
}

// ─── Record builder ───────────────────────────────────────────────────────────

// BuildProduct turns a raw form into a fully typed, defaulted product record.
//
// Required fields are checked in declaration order and the first failure
// aborts the build with that single message. Price-relationship rules run
// afterwards and report every violation at once, joined into one message.
// The returned record never carries an ID; the store assigns identity.
func (s *ProductService) BuildProduct(form ProductForm) (models.Product, error) {
	name := strings.TrimSpace(form.Name)
	category := strings.TrimSpace(form.Category)
	unit := strings.TrimSpace(form.Unit)

	switch {
	case name == "":
		return models.Product{}, s.rejected("required_field", inputErr("Product name is required"))
	case len([]rune(name)) < 3:
		return models.Product{}, s.rejected("required_field", inputErr("Product name must be at least 3 characters"))
	case len([]rune(name)) > 100:
		return models.Product{}, s.rejected("required_field", inputErr("Product name must not exceed 100 characters"))
	case category == "":
		return models.Product{}, s.rejected("required_field", inputErr("Category is required"))
	case !models.IsCategory(category):
		return models.Product{}, s.rejected("required_field", inputErr("Unknown category %q", category))
	case unit == "":
		return models.Product{}, s.rejected("required_field", inputErr("Unit is required"))
	}

	p := models.Product{
		Name:           name,
		Category:       category,
		Brand:          strings.TrimSpace(form.Brand),
		Location:       strings.TrimSpace(form.Location),
		Unit:           unit,
		ImportPrice:    numeric.ParsePrice(form.ImportPrice),
		WholesalePrice: numeric.ParsePrice(form.WholesalePrice),
		RetailPrice:    numeric.ParsePrice(form.RetailPrice),
		StockAlert:     numeric.ParseQuantity(form.StockAlert),
		HasVariants:    boolOr(form.HasVariants, false),
		AllowSelling:   boolOr(form.AllowSelling, true),
		FastSell:       boolOr(form.FastSell, true),
	}

	code := strings.TrimSpace(form.Barcode)
	if code == "" {
		code = barcode.Generate()
	} else if !barcode.IsValid(code) {
		return models.Product{}, s.rejected("barcode", inputErr("Barcode must be 8 to 13 digits"))
	}
	p.Barcode = code

	if v := ValidatePriceRelationships(p.ImportPrice, p.WholesalePrice, p.RetailPrice); !v.IsValid {
		return models.Product{}, s.rejected("price_rule", inputErr("%s", strings.Join(v.Errors, "; ")))
	}

	// Final structural check against the model's tag rules. Catches what the
	// form pipeline can let through, e.g. negative numeric inputs.
	if errs := validate.Struct(&p); validate.HasErrors(errs) {
		fields := make([]string, 0, len(errs))
		for f := range errs {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		first := fields[0]
		return models.Product{}, s.rejected("required_field", inputErr("%s: %s", first, errs[first]))
	}

	return p, nil
}

func (s *ProductService) rejected(reason string, err error) error {
	metrics.ValidationRejections.WithLabelValues(reason).Inc()
	return err
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

// ─── Catalog operations ───────────────────────────────────────────────────────

// List returns the full catalog snapshot.
func (s *ProductService) List(ctx context.Context) ([]models.Product, error) {
	return s.store.GetProducts(ctx)
}

// Get returns the product, or nil,nil when the id does not exist.
func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	return s.store.GetProductByID(ctx, id)
}

// Create builds the record and persists it. The store-assigned ID is set on
// the returned product. A failed build never reaches the store.
func (s *ProductService) Create(ctx context.Context, form ProductForm) (models.Product, error) {
	p, err := s.BuildProduct(form)
	if err != nil {
		return models.Product{}, err
	}

	id, err := s.store.AddProduct(ctx, p)
	if err != nil {
		return models.Product{}, fmt.Errorf("product service: create: %w", err)
	}
	p.ID = id

	metrics.CatalogWrites.WithLabelValues("created").Inc()
	event.Fire(EventProductCreated, p)
	return p, nil
}

// Update re-validates the full form and merges the rebuilt fields into the
// existing document. Returns nil,nil when the id does not exist.
func (s *ProductService) Update(ctx context.Context, id string, form ProductForm) (*models.Product, error) {
	existing, err := s.store.GetProductByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("product service: update lookup: %w", err)
	}
	if existing == nil {
		return nil, nil
	}

	p, err := s.BuildProduct(form)
	if err != nil {
		return nil, err
	}
	p.ID = id
	p.Image = existing.Image // image changes only through the upload endpoint

	if err := s.store.UpdateProduct(ctx, id, PatchFields(p)); err != nil {
		return nil, fmt.Errorf("product service: update: %w", err)
	}

	metrics.CatalogWrites.WithLabelValues("updated").Inc()
	event.Fire(EventProductUpdated, p)
	return &p, nil
}

// UpdateFields applies a raw partial update (unit reassignment, image path)
// without running the form pipeline.
func (s *ProductService) UpdateFields(ctx context.Context, id string, fields map[string]any) error {
	if err := s.store.UpdateProduct(ctx, id, fields); err != nil {
		return fmt.Errorf("product service: update fields: %w", err)
	}
	metrics.CatalogWrites.WithLabelValues("updated").Inc()
	event.Fire(EventProductUpdated, map[string]any{"id": id, "fields": fields})
	return nil
}

// Delete removes the product. Deleting a missing id is not an error.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteProduct(ctx, id); err != nil {
		return fmt.Errorf("product service: delete: %w", err)
	}
	metrics.CatalogWrites.WithLabelValues("deleted").Inc()
	event.Fire(EventProductDeleted, id)
	return nil
}

// PatchFields flattens a built product into the field map sent to the store.
// The ID never appears here; identity is immutable after create.
func PatchFields(p models.Product) map[string]any {
	return map[string]any{
		"name":           p.Name,
		"category":       p.Category,
		"brand":          p.Brand,
		"location":       p.Location,
		"unit":           p.Unit,
		"barcode":        p.Barcode,
		"importPrice":    p.ImportPrice,
		"wholesalePrice": p.WholesalePrice,
		"retailPrice":    p.RetailPrice,
		"stockAlert":     p.StockAlert,
		"hasVariants":    p.HasVariants,
		"allowSelling":   p.AllowSelling,
		"fastSell":       p.FastSell,
		"image":          p.Image,
	}
}
