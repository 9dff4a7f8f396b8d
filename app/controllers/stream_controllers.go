package controllers

import (
	"context"
	"net/http"

	"github.com/shashiranjanraj/kidstore/app/repositories"
	"github.com/shashiranjanraj/kidstore/pkg/logger"
	"github.com/shashiranjanraj/kidstore/pkg/response"
	"github.com/shashiranjanraj/kidstore/pkg/sse"
)

// SnapshotSubscriber is the live-sequence surface the stream handlers need.
type SnapshotSubscriber interface {
	Subscribe(ctx context.Context) (*repositories.Subscription, error)
}

// StreamController serves catalog snapshots over Server-Sent Events, for
// clients that cannot hold a websocket (proxies, EventSource-only frontends).
type StreamController struct {
	source SnapshotSubscriber
}

func NewStreamController(source SnapshotSubscriber) *StreamController {
	return &StreamController{source: source}
}

// Products serves GET /sse/products. The subscription is bound to the request
// context, so a client disconnect tears down the change-stream watcher.
func (c *StreamController) Products(w http.ResponseWriter, r *http.Request) {
	sub, err := c.source.Subscribe(r.Context())
	if err != nil {
		logger.WithCtx(r.Context()).Error("sse subscription failed", "error", err)
		response.Error(w, http.StatusServiceUnavailable, "live snapshots unavailable")
		return
	}
	defer sub.Close()

	stream := sse.New(w, r)
	if stream == nil {
		return
	}

	for snapshot := range sub.C() {
		if err := stream.Send("products", snapshot); err != nil {
			return
		}
		if stream.IsClosed() {
			return
		}
	}
}
