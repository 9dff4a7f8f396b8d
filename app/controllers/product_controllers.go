package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gocarina/gocsv"
	"github.com/google/uuid"

	"github.com/shashiranjanraj/kidstore/app/jobs"
	"github.com/shashiranjanraj/kidstore/app/models"
	"github.com/shashiranjanraj/kidstore/app/services"
	"github.com/shashiranjanraj/kidstore/app/viewmodels"
	"github.com/shashiranjanraj/kidstore/pkg/bind"
	"github.com/shashiranjanraj/kidstore/pkg/cache"
	"github.com/shashiranjanraj/kidstore/pkg/imagefile"
	"github.com/shashiranjanraj/kidstore/pkg/logger"
	"github.com/shashiranjanraj/kidstore/pkg/metrics"
	"github.com/shashiranjanraj/kidstore/pkg/numeric"
	"github.com/shashiranjanraj/kidstore/pkg/queue"
	"github.com/shashiranjanraj/kidstore/pkg/response"
	"github.com/shashiranjanraj/kidstore/pkg/storage"
	"github.com/shashiranjanraj/kidstore/pkg/workerpool"
)

// ListCacheKey holds the short-TTL catalog snapshot served by List.
// Invalidated by the product.* event listeners in internal/server.
const ListCacheKey = "products:list"

const listCacheTTL = 30 * time.Second

type ProductController struct {
	service *services.ProductService
}

func NewProductController(service *services.ProductService) *ProductController {
	return &ProductController{service: service}
}

// respondError maps service failures onto the response envelope: input errors
// become a 422 with the builder's message, everything else a logged 500.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *services.ValidationError
	if errors.As(err, &ve) {
		response.InputError(w, ve.Message)
		return
	}
	logger.WithCtx(r.Context()).Error("product request failed", "error", err)
	response.Error(w, http.StatusInternalServerError, "Internal server error")
}

// snapshot returns the catalog, preferring the Redis cache.
func (c *ProductController) snapshot(r *http.Request) ([]models.Product, error) {
	var products []models.Product
	if cache.Get(ListCacheKey, &products) {
		metrics.CacheHits.WithLabelValues(ListCacheKey).Inc()
		return products, nil
	}
	metrics.CacheMisses.WithLabelValues(ListCacheKey).Inc()

	products, err := c.service.List(r.Context())
	if err != nil {
		return nil, err
	}
	if err := cache.Set(ListCacheKey, products, listCacheTTL); err != nil {
		logger.WithCtx(r.Context()).Warn("product list cache write failed", "error", err)
	}
	return products, nil
}

// ─── Listing & lookup ─────────────────────────────────────────────────────────

// List serves GET /api/products with q / category / sort / dir params.
func (c *ProductController) List(w http.ResponseWriter, r *http.Request) {
	products, err := c.snapshot(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	list := viewmodels.NewProductList(products)
	q := r.URL.Query()

	if category := q.Get("category"); category != "" {
		list.FilterCategory(category)
	}
	if query := q.Get("q"); query != "" {
		list.ApplyFilter(query)
	}
	if col := q.Get("sort"); col != "" {
		list.Sort(viewmodels.SortColumn(col), q.Get("dir") == "desc")
	}

	response.List(w, list.Visible(), response.ListMeta{
		Total:   list.Total(),
		Visible: len(list.Visible()),
	})
}

// Show serves GET /api/products/{id}. A missing id is a plain 404.
func (c *ProductController) Show(w http.ResponseWriter, r *http.Request) {
	p, err := c.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	if p == nil {
		response.NotFound(w)
		return
	}
	response.Success(w, p)
}

// ─── Mutations ────────────────────────────────────────────────────────────────

func (c *ProductController) Create(w http.ResponseWriter, r *http.Request) {
	var form services.ProductForm
	if errs, err := bind.JSON(r, &form); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	p, err := c.service.Create(r.Context(), form)
	if err != nil {
		respondError(w, r, err)
		return
	}
	response.Created(w, p)
}

func (c *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	var form services.ProductForm
	if errs, err := bind.JSON(r, &form); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	p, err := c.service.Update(r.Context(), chi.URLParam(r, "id"), form)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if p == nil {
		response.NotFound(w)
		return
	}
	response.Success(w, p)
}

func (c *ProductController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, r, err)
		return
	}
	response.Success(w, map[string]string{"deleted": chi.URLParam(r, "id")})
}

// ReassignUnit serves PUT /api/products/{id}/unit. The unit is persisted
// first; clients then apply the same change to their in-memory list.
func (c *ProductController) ReassignUnit(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Unit string `json:"unit" validate:"required"`
	}
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	id := chi.URLParam(r, "id")
	p, err := c.service.Get(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if p == nil {
		response.NotFound(w)
		return
	}

	if err := c.service.UpdateFields(r.Context(), id, map[string]any{"unit": body.Unit}); err != nil {
		respondError(w, r, err)
		return
	}
	p.Unit = body.Unit
	response.Success(w, p)
}

// ─── Image upload ─────────────────────────────────────────────────────────────

// UploadImage serves POST /api/products/{id}/image: validate, store under a
// fresh object name, then point the product's image field at it. Rejected
// files never touch the record.
func (c *ProductController) UploadImage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p, err := c.service.Get(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if p == nil {
		response.NotFound(w)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "missing image file")
		return
	}
	defer file.Close()

	res := imagefile.Validate(header.Filename, header.Header.Get("Content-Type"), header.Size, file)
	if !res.OK {
		metrics.ValidationRejections.WithLabelValues("image").Inc()
		response.InputError(w, res.Message)
		return
	}

	// Validation consumed the image header; rewind for the full upload.
	if _, err := file.Seek(0, 0); err != nil {
		respondError(w, r, fmt.Errorf("image upload: rewind: %w", err))
		return
	}

	object := "products/" + uuid.NewString() + strings.ToLower(filepath.Ext(header.Filename))
	if err := storage.PutStream(object, file); err != nil {
		respondError(w, r, fmt.Errorf("image upload: store: %w", err))
		return
	}

	if err := c.service.UpdateFields(r.Context(), id, map[string]any{"image": object}); err != nil {
		respondError(w, r, err)
		return
	}

	// Clean up the replaced photo off the request path.
	if p.Image != "" && p.Image != object {
		if err := queue.Dispatch(&jobs.RemoveImageJob{Path: p.Image}); err != nil {
			logger.WithCtx(r.Context()).Warn("image cleanup dispatch failed", "path", p.Image, "error", err)
		}
	}

	response.Success(w, map[string]string{
		"image": object,
		"url":   storage.URL(object),
	})
}

// ─── CSV export / import ──────────────────────────────────────────────────────

// productCSVRow is the flat CSV shape used by export and import.
type productCSVRow struct {
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

// Export serves GET /api/products/export as a CSV download.
func (c *ProductController) Export(w http.ResponseWriter, r *http.Request) {
	products, err := c.service.List(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	rows := make([]productCSVRow, len(products))
	for i, p := range products {
		rows[i] = productCSVRow{
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

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="products.csv"`)
	if err := gocsv.Marshal(rows, w); err != nil {
		logger.WithCtx(r.Context()).Error("product export failed", "error", err)
	}
}

// Import serves POST /api/products/import. Each CSV row runs through the
// normal create pipeline; bad rows are reported, good rows are persisted.
// Rows are processed concurrently through a bounded worker pool so a large
// file cannot fan out into unbounded goroutines.
func (c *ProductController) Import(w http.ResponseWriter, r *http.Request) {
	var rows []productCSVRow
	if err := gocsv.Unmarshal(r.Body, &rows); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid CSV: "+err.Error())
		return
	}

	pool := workerpool.New(8)
	defer pool.Shutdown()

	rowErrs := make([]error, len(rows))
	var wg sync.WaitGroup

	for i := range rows {
		i := i
		row := rows[i]
		wg.Add(1)
		task := func() {
			defer wg.Done()
			_, err := c.service.Create(r.Context(), services.ProductForm{
				Name:           row.Name,
				Category:       row.Category,
				Brand:          row.Brand,
				Location:       row.Location,
				Unit:           row.Unit,
				Barcode:        row.Barcode,
				ImportPrice:    row.ImportPrice,
				WholesalePrice: row.WholesalePrice,
				RetailPrice:    row.RetailPrice,
				StockAlert:     row.StockAlert,
			})
			rowErrs[i] = err
		}
		// Submit never blocks; back off briefly while the pool is saturated.
		for {
			err := pool.Submit(task)
			if err == nil {
				break
			}
			if !errors.Is(err, workerpool.ErrPoolFull) {
				wg.Done()
				rowErrs[i] = err
				break
			}
			time.Sleep(5 * time.Millisecond)
		}
	}
	wg.Wait()

	type rowError struct {
		Row     int    `json:"row"`
		Message string `json:"message"`
	}
	var created int
	var failed []rowError

	for i, err := range rowErrs {
		if err == nil {
			created++
			continue
		}
		var ve *services.ValidationError
		if errors.As(err, &ve) {
			failed = append(failed, rowError{Row: i + 1, Message: ve.Message})
			continue
		}
		respondError(w, r, err)
		return
	}

	response.Success(w, map[string]any{
		"created": created,
		"failed":  failed,
	})
}

// ─── Catalog helpers ──────────────────────────────────────────────────────────

// SuggestedPrices serves GET /api/products/suggested-prices?importPrice=…
func (c *ProductController) SuggestedPrices(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("importPrice")
	if strings.TrimSpace(raw) == "" {
		response.Error(w, http.StatusBadRequest, "importPrice query parameter is required")
		return
	}
	suggested := services.CalculateSuggestedPrices(numeric.ParsePrice(raw))
	response.Success(w, suggested)
}

// Categories serves the fixed category set.
func (c *ProductController) Categories(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, models.Categories())
}

// Units serves the suggested unit set.
func (c *ProductController) Units(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, models.Units())
}
