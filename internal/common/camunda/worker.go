// internal/common/camunda/worker.go
package camunda

import (
	"sync"
	"time"

	"startup-analyst/internal/common/logger"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
)

// JobHandler completes or fails the job itself.
type JobHandler interface {
	Handle(client worker.JobClient, job entities.Job)
}

type WorkerOptions struct {
	MaxJobsActive int
	Timeout       time.Duration
}

// Workers tracks the job workers opened on one client.
type Workers struct {
	client zbc.Client
	logger logger.Logger

	mu      sync.Mutex
	workers map[string]worker.JobWorker
}

func NewWorkers(client zbc.Client, log logger.Logger) *Workers {
	return &Workers{
		client:  client,
		logger:  log.WithFields(map[string]interface{}{"component": "zeebe"}),
		workers: make(map[string]worker.JobWorker),
	}
}

// Open starts polling taskType. Opening a task type twice is a no-op.
func (w *Workers) Open(taskType string, handler JobHandler, opts WorkerOptions) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, exists := w.workers[taskType]; exists {
		return
	}

	cmd := w.client.NewJobWorker().
		JobType(taskType).
		Handler(handler.Handle)
	if opts.MaxJobsActive > 0 {
		cmd = cmd.MaxJobsActive(opts.MaxJobsActive)
	}
	if opts.Timeout > 0 {
		cmd = cmd.Timeout(opts.Timeout)
	}
	w.workers[taskType] = cmd.Open()

	w.logger.Info("worker started", map[string]interface{}{
		"taskType":      taskType,
		"maxJobsActive": opts.MaxJobsActive,
		"timeout":       opts.Timeout.String(),
	})
}

// TaskTypes lists the open task types.
func (w *Workers) TaskTypes() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	types := make([]string, 0, len(w.workers))
	for t := range w.workers {
		types = append(types, t)
	}
	return types
}

// Close stops every worker and waits for in-flight jobs.
func (w *Workers) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for taskType, jw := range w.workers {
		jw.Close()
		jw.AwaitClose()
		w.logger.Info("worker stopped", map[string]interface{}{"taskType": taskType})
	}
	w.workers = make(map[string]worker.JobWorker)
}
