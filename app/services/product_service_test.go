package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/kidstore/app/models"
	"github.com/shashiranjanraj/kidstore/pkg/barcode"
	"github.com/shashiranjanraj/kidstore/pkg/event"
)

// fakeStore records calls so tests can assert what reached persistence.
type fakeStore struct {
	added      []models.Product
	updates    map[string]map[string]any
	deleted    []string
	byID       map[string]models.Product
	nextID     string
	addCalls   int
	findCalls  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		updates: map[string]map[string]any{},
		byID:    map[string]models.Product{},
		nextID:  "65f000000000000000000001",
	}
}

func (f *fakeStore) AddProduct(_ context.Context, p models.Product) (string, error) {
	f.addCalls++
	f.added = append(f.added, p)
	return f.nextID, nil
}

func (f *fakeStore) GetProducts(context.Context) ([]models.Product, error) {
	return f.added, nil
}

func (f *fakeStore) GetProductByID(_ context.Context, id string) (*models.Product, error) {
	f.findCalls++
	p, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (f *fakeStore) UpdateProduct(_ context.Context, id string, fields map[string]any) error {
	f.updates[id] = fields
	return nil
}

func (f *fakeStore) DeleteProduct(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func validForm() ProductForm {
	return ProductForm{
		Name:           "Giày thể thao bé trai",
		Category:       "shoes",
		Unit:           "đôi",
		ImportPrice:    "100000",
		WholesalePrice: "120000",
		RetailPrice:    "150000",
	}
}

func TestBuildProduct_Defaults(t *testing.T) {
	s := NewProductService(newFakeStore())

	p, err := s.BuildProduct(validForm())
	require.NoError(t, err)

	assert.Empty(t, p.ID, "builder must never assign an id")
	assert.Equal(t, 100000.0, p.ImportPrice)
	assert.Equal(t, 120000.0, p.WholesalePrice)
	assert.Equal(t, 150000.0, p.RetailPrice)
	assert.Equal(t, 0, p.StockAlert)
	assert.True(t, p.AllowSelling, "allowSelling defaults to true")
	assert.True(t, p.FastSell, "fastSell defaults to true")
	assert.False(t, p.HasVariants, "hasVariants defaults to false")
	assert.True(t, barcode.IsValid(p.Barcode), "blank barcode is auto-generated")
}

func TestBuildProduct_ExplicitFlags(t *testing.T) {
	s := NewProductService(newFakeStore())
	no := false
	yes := true

	form := validForm()
	form.AllowSelling = &no
	form.FastSell = &no
	form.HasVariants = &yes

	p, err := s.BuildProduct(form)
	require.NoError(t, err)
	assert.False(t, p.AllowSelling)
	assert.False(t, p.FastSell)
	assert.True(t, p.HasVariants)
}

func TestBuildProduct_RequiredFieldOrder(t *testing.T) {
	s := NewProductService(newFakeStore())

	tests := []struct {
		name    string
		mutate  func(*ProductForm)
		wantMsg string
	}{
		{"missing name", func(f *ProductForm) { f.Name = "  " }, "Product name is required"},
		{"short name", func(f *ProductForm) { f.Name = "ab" }, "at least 3 characters"},
		{"missing category", func(f *ProductForm) { f.Category = "" }, "Category is required"},
		{"unknown category", func(f *ProductForm) { f.Category = "furniture" }, "Unknown category"},
		{"missing unit", func(f *ProductForm) { f.Unit = "" }, "Unit is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(&form)

			_, err := s.BuildProduct(form)
			require.Error(t, err)

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Contains(t, ve.Message, tt.wantMsg)
		})
	}

	// A form missing both name and category reports only the first failure.
	form := validForm()
	form.Name = ""
	form.Category = ""
	_, err := s.BuildProduct(form)
	require.Error(t, err)
	assert.Equal(t, "Product name is required", err.Error())
}

func TestBuildProduct_Barcode(t *testing.T) {
	s := NewProductService(newFakeStore())

	form := validForm()
	form.Barcode = "8934567890123"
	p, err := s.BuildProduct(form)
	require.NoError(t, err)
	assert.Equal(t, "8934567890123", p.Barcode)

	form.Barcode = "12345" // too short
	_, err = s.BuildProduct(form)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "8 to 13 digits")
}

func TestBuildProduct_PriceRulesJoined(t *testing.T) {
	s := NewProductService(newFakeStore())

	form := validForm()
	form.ImportPrice = "100"
	form.WholesalePrice = "80"
	form.RetailPrice = "120"

	_, err := s.BuildProduct(form)
	require.Error(t, err)
	assert.Equal(t, "Wholesale price should not be less than import price", err.Error())

	// Several violations arrive joined in one message.
	form.WholesalePrice = "50"
	form.RetailPrice = "20"
	_, err = s.BuildProduct(form)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Wholesale price should not be less than import price; ")
	assert.Contains(t, err.Error(), "Retail price should not be less than import price")
}

func TestBuildProduct_NegativePriceRejected(t *testing.T) {
	s := NewProductService(newFakeStore())

	// A negative number passes the relationship rules (0 >= -100) but must
	// still fail the structural check on the record itself.
	form := validForm()
	form.ImportPrice = float64(-100)
	form.WholesalePrice = float64(0)
	form.RetailPrice = float64(0)

	_, err := s.BuildProduct(form)
	require.Error(t, err)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Message, "importPrice")
}

func TestCreate_InvalidFormNeverReachesStore(t *testing.T) {
	event.Flush()
	t.Cleanup(event.Flush)

	store := newFakeStore()
	s := NewProductService(store)

	form := validForm()
	form.Category = ""

	_, err := s.Create(context.Background(), form)
	require.Error(t, err)
	assert.Zero(t, store.addCalls, "invalid form must not reach the store")
}

func TestCreate_AssignsStoreIDAndFiresEvent(t *testing.T) {
	event.Flush()
	t.Cleanup(event.Flush)

	var fired []models.Product
	event.Listen(EventProductCreated, func(payload interface{}) {
		fired = append(fired, payload.(models.Product))
	})

	store := newFakeStore()
	s := NewProductService(store)

	p, err := s.Create(context.Background(), validForm())
	require.NoError(t, err)
	assert.Equal(t, store.nextID, p.ID)
	require.Len(t, fired, 1)
	assert.Equal(t, p.ID, fired[0].ID)
	require.Len(t, store.added, 1)
	assert.Empty(t, store.added[0].ID, "id travels outside the stored document")
}

func TestUpdate_MissingProductIsNormal(t *testing.T) {
	event.Flush()
	t.Cleanup(event.Flush)

	store := newFakeStore()
	s := NewProductService(store)

	p, err := s.Update(context.Background(), "65f0000000000000000000ff", validForm())
	require.NoError(t, err)
	assert.Nil(t, p)
	assert.Empty(t, store.updates)
}

func TestUpdate_PreservesImageAndPatchesFields(t *testing.T) {
	event.Flush()
	t.Cleanup(event.Flush)

	store := newFakeStore()
	id := "65f000000000000000000002"
	store.byID[id] = models.Product{ID: id, Name: "Cũ", Image: "products/old.jpg"}
	s := NewProductService(store)

	p, err := s.Update(context.Background(), id, validForm())
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "products/old.jpg", p.Image)

	fields := store.updates[id]
	require.NotNil(t, fields)
	assert.Equal(t, "Giày thể thao bé trai", fields["name"])
	assert.NotContains(t, fields, "id", "identity is immutable after create")
	assert.NotContains(t, fields, "_id")
}

func TestDelete_FiresEvent(t *testing.T) {
	event.Flush()
	t.Cleanup(event.Flush)

	var deletedIDs []string
	event.Listen(EventProductDeleted, func(payload interface{}) {
		deletedIDs = append(deletedIDs, payload.(string))
	})

	store := newFakeStore()
	s := NewProductService(store)

	require.NoError(t, s.Delete(context.Background(), "abc"))
	assert.Equal(t, []string{"abc"}, store.deleted)
	assert.Equal(t, []string{"abc"}, deletedIDs)
}
