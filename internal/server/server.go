// Package server boots the catalog service: configuration, logging, MongoDB,
// Redis, storage disks, the HTTP router, and the live-snapshot plumbing.
package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/kidstore/app/controllers"
	"github.com/shashiranjanraj/kidstore/app/jobs"
	"github.com/shashiranjanraj/kidstore/app/repositories"
	"github.com/shashiranjanraj/kidstore/app/routes"
	"github.com/shashiranjanraj/kidstore/app/services"
	"github.com/shashiranjanraj/kidstore/config"
	"github.com/shashiranjanraj/kidstore/pkg/cache"
	"github.com/shashiranjanraj/kidstore/pkg/database"
	"github.com/shashiranjanraj/kidstore/pkg/event"
	"github.com/shashiranjanraj/kidstore/pkg/logger"
	"github.com/shashiranjanraj/kidstore/pkg/queue"
	"github.com/shashiranjanraj/kidstore/pkg/router"
	"github.com/shashiranjanraj/kidstore/pkg/schedule"
	"github.com/shashiranjanraj/kidstore/pkg/storage"
	"github.com/shashiranjanraj/kidstore/pkg/ws"
)

// Start boots every subsystem and serves HTTP until SIGINT/SIGTERM.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	setupMongoLogging()

	bootCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	db, err := database.Connect(bootCtx)
	if err != nil {
		return err
	}
	defer database.Disconnect(context.Background(), db)

	if err := cache.Connect(); err != nil {
		logger.Warn("redis unavailable, list cache disabled", "error", err)
	}
	storage.Connect()

	repo := repositories.NewProductRepository(db)
	service := services.NewProductService(repo)

	productCtrl := controllers.NewProductController(service)
	graphqlCtrl, err := controllers.NewGraphQLController(service)
	if err != nil {
		return err
	}

	hub := ws.NewHub()
	go hub.Run()

	registerListeners()
	startSnapshotStream(repo, hub)
	startBackgroundWork(db)

	r := router.New()
	routes.RegisterAPI(r, routes.Controllers{
		Products: productCtrl,
		GraphQL:  graphqlCtrl,
		Stream:   controllers.NewStreamController(repo),
		Hub:      hub,
	})

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("catalog service listening", "addr", srv.Addr, "env", config.AppEnv())
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	return srv.Shutdown(shutdownCtx)
}

// setupMongoLogging fans log records out to MongoDB when LOG_TO_MONGO=true.
func setupMongoLogging() {
	if config.Get("LOG_TO_MONGO", "false") != "true" {
		return
	}
	mh, err := logger.NewMongoHandler(config.MongoURI(), config.MongoDB(), "logs")
	if err != nil {
		logger.Warn("mongo log handler disabled", "error", err)
		return
	}
	logger.L = slog.New(logger.NewMultiHandler(logger.L.Handler(), mh))
	slog.SetDefault(logger.L)
}

// registerListeners wires the catalog mutation events. Every mutation drops
// the Redis list snapshot so the next read rebuilds it.
func registerListeners() {
	invalidate := func(interface{}) {
		if err := cache.Forget(controllers.ListCacheKey); err != nil {
			logger.Warn("list cache invalidation failed", "error", err)
		}
	}
	event.Listen(services.EventProductCreated, invalidate)
	event.Listen(services.EventProductUpdated, invalidate)
	event.Listen(services.EventProductDeleted, invalidate)
}

// startBackgroundWork boots the job queue and the scheduler: image cleanup
// jobs (Redis-backed when available) and a periodic list-cache warm.
func startBackgroundWork(db *mongo.Database) {
	jobs.Register()
	queue.UseDB(db)
	if cache.RDB != nil {
		queue.SetDriver(queue.NewRedisDriver(cache.RDB))
	}
	queue.StartWorkers(context.Background(), 2)

	schedule.Every(5).Minutes().Name("warm-product-cache").WithoutOverlapping().Run(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		repo := repositories.NewProductRepository(db)
		products, err := repo.GetProducts(ctx)
		if err != nil {
			logger.Warn("cache warm failed", "error", err)
			return
		}
		if err := cache.Set(controllers.ListCacheKey, products, 6*time.Minute); err != nil {
			logger.Warn("cache warm write failed", "error", err)
		}
	})
	schedule.Start(context.Background())
}

// startSnapshotStream feeds the websocket hub from the repository's live
// subscription. Change streams need a replica set; on standalone Mongo the
// watch fails and connected clients simply get no push updates.
func startSnapshotStream(repo *repositories.ProductRepository, hub *ws.Hub) {
	sub, err := repo.Subscribe(context.Background())
	if err != nil {
		logger.Warn("live snapshot stream disabled", "error", err)
		return
	}
	go func() {
		defer sub.Close()
		for snapshot := range sub.C() {
			data, err := json.Marshal(snapshot)
			if err != nil {
				continue
			}
			hub.Broadcast <- data
		}
	}()
}
