package routes

import (
	"net/http"
	"time"

	"github.com/shashiranjanraj/kidstore/app/controllers"
	"github.com/shashiranjanraj/kidstore/pkg/metrics"
	"github.com/shashiranjanraj/kidstore/pkg/middleware"
	"github.com/shashiranjanraj/kidstore/pkg/reqid"
	"github.com/shashiranjanraj/kidstore/pkg/response"
	"github.com/shashiranjanraj/kidstore/pkg/router"
	"github.com/shashiranjanraj/kidstore/pkg/ws"
)

// Controllers carries the handler set wired in internal/server.
type Controllers struct {
	Products *controllers.ProductController
	GraphQL  *controllers.GraphQLController
	Stream   *controllers.StreamController
	Hub      *ws.Hub
}

// RegisterAPI mounts the middleware chain and every route of the catalog API.
// Reads are open; mutations sit behind JWT auth.
func RegisterAPI(r *router.Router, c Controllers) {
	r.Use(metrics.Middleware())
	r.Use(reqid.Middleware())
	r.Use(middleware.Recovery)
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))
	r.Use(middleware.RateLimit(300, time.Minute))

	r.Get("/healthz", "healthz", func(w http.ResponseWriter, _ *http.Request) {
		response.Success(w, map[string]string{"status": "ok"})
	})
	r.Get("/metrics", "metrics", metrics.Handler())

	api := r.Group("/api")

	// Reads
	api.Get("/products", "products.index", c.Products.List)
	api.Get("/products/export", "products.export", c.Products.Export)
	api.Get("/products/suggested-prices", "products.suggested", c.Products.SuggestedPrices)
	api.Get("/products/{id}", "products.show", c.Products.Show)
	api.Get("/catalog/categories", "catalog.categories", c.Products.Categories)
	api.Get("/catalog/units", "catalog.units", c.Products.Units)
	api.Post("/graphql", "graphql", c.GraphQL.Handle)

	// Mutations
	protected := api.Group("", middleware.AuthMiddleware)
	protected.Post("/products", "products.create", c.Products.Create)
	protected.Patch("/products/{id}", "products.update", c.Products.Update)
	protected.Delete("/products/{id}", "products.delete", c.Products.Delete)
	protected.Put("/products/{id}/unit", "products.unit", c.Products.ReassignUnit)
	protected.Post("/products/{id}/image", "products.image", c.Products.UploadImage)
	protected.Post("/products/import", "products.import", c.Products.Import)

	// Live catalog snapshots
	r.Get("/ws/products", "ws.products", func(w http.ResponseWriter, r *http.Request) {
		ws.Upgrade(w, r, c.Hub)
	})
	if c.Stream != nil {
		r.Get("/sse/products", "sse.products", c.Stream.Products)
	}
}
