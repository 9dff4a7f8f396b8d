// Package jobs defines the background jobs dispatched through pkg/queue.
package jobs

import (
	"github.com/shashiranjanraj/kidstore/pkg/queue"
	"github.com/shashiranjanraj/kidstore/pkg/storage"
)

// RemoveImageJob deletes a product image object that is no longer referenced,
// e.g. after a new photo replaces it. Runs off the request path so a slow or
// flaky storage backend never delays the upload response.
type RemoveImageJob struct {
	Path string `json:"path"`
}

func (j *RemoveImageJob) Handle() error {
	return storage.Delete(j.Path)
}

// Register wires every job type into the queue registry. Call once at boot,
// before StartWorkers.
func Register() {
	queue.Register("*jobs.RemoveImageJob", func() queue.Job { return &RemoveImageJob{} })
}
