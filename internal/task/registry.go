package task

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Work is one unit of background execution. The returned value becomes the
// task's result on success; a non-nil error (or a panic) moves the task to
// FAILURE. Work must report progress through the registry, never by holding
// task state of its own.
type Work func(ctx context.Context, taskID string) (interface{}, error)

// Registry tracks background correction jobs in memory. A single mutex guards
// the whole map; every mutation of a task goes through it, so GetStatus always
// observes a consistent snapshot. There is no persistence and no cancellation:
// a submitted job runs to completion or failure.
type Registry struct {
	mu    sync.Mutex
	tasks map[string]*record
}

func NewRegistry() *Registry {
	return &Registry{tasks: map[string]*record{}}
}

// Submit creates a PENDING task, schedules work on its own goroutine and
// returns the task id immediately.
func (r *Registry) Submit(work Work) string {
	id := uuid.NewString()

	r.mu.Lock()
	r.tasks[id] = &record{
		id:        id,
		status:    StatusPending,
		startedAt: time.Now(),
	}
	r.mu.Unlock()

	go r.run(id, work)
	return id
}

func (r *Registry) run(id string, work Work) {
	defer func() {
		if p := recover(); p != nil {
			r.fail(id, fmt.Sprintf("panic: %v", p))
		}
	}()

	r.UpdateProgress(id, 0, "correction started")

	result, err := work(context.Background(), id)
	if err != nil {
		r.fail(id, err.Error())
		return
	}
	r.succeed(id, result)
}

// GetStatus returns a copy of the task's current state, or false if the id is
// unknown or already cleaned up.
func (r *Registry) GetStatus(id string) (Snapshot, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.tasks[id]
	if !ok {
		return Snapshot{}, false
	}
	return rec.snapshot(time.Now()), true
}

// UpdateProgress moves the task to PROGRESS and records the new percentage and
// message. It is a no-op for unknown or terminal tasks, and progress never
// regresses: a stale lower percentage is ignored.
func (r *Registry) UpdateProgress(id string, progress int, message string) {
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.tasks[id]
	if !ok || rec.status.Terminal() {
		return
	}
	rec.status = StatusProgress
	if progress > rec.progress {
		rec.progress = progress
	}
	rec.message = message
}

// SetEstimatedDuration attaches a duration hint used to derive the
// remaining-time field on snapshots. No-op once the task is terminal.
func (r *Registry) SetEstimatedDuration(id string, d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.tasks[id]
	if !ok || rec.status.Terminal() {
		return
	}
	rec.estimated = d
}

// CleanupOlderThan drops every task started more than maxAge ago, regardless
// of status, and reports how many were removed. This bounds memory growth;
// there is no external persistence to fall back on.
func (r *Registry) CleanupOlderThan(maxAge time.Duration) int {
	cutoff := time.Now().Add(-maxAge)

	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for id, rec := range r.tasks {
		if rec.startedAt.Before(cutoff) {
			delete(r.tasks, id)
			removed++
		}
	}
	return removed
}

// Len reports how many task records are currently held.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tasks)
}

func (r *Registry) succeed(id string, result interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.tasks[id]
	if !ok || rec.status.Terminal() {
		return
	}
	rec.status = StatusSuccess
	rec.progress = 100
	rec.message = "correction completed"
	rec.result = result
}

func (r *Registry) fail(id string, errMsg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.tasks[id]
	if !ok || rec.status.Terminal() {
		return
	}
	rec.status = StatusFailure
	rec.message = "correction failed"
	rec.errMsg = errMsg
}
