// Package shutdownqueue provides a process-wide LIFO queue of cleanup
// tasks, drained explicitly at the end of main:
//
//	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
//	defer cancel()
//	defer shutdownqueue.Shutdown(ctx)
//
// Tasks run once, in reverse order of registration. Panics are
// recovered. Shutdown is idempotent and returns errors joined with
// errors.Join.
package shutdownqueue

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Task is a shutdown function. It should honor ctx and return an error
// if it can't finish (or ctx is canceled).
type Task func(ctx context.Context) error

var q = &queue{}

type queue struct {
	mu     sync.Mutex
	tasks  []Task
	closed bool
}

// Add registers a task to be run on Shutdown, in LIFO order.
// Safe to call from any goroutine. If t is nil or shutdown has already
// started, Add does nothing.
func Add(t Task) {
	if t == nil {
		return
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}

	q.tasks = append(q.tasks, t)
}

// Shutdown drains all registered tasks in LIFO order. Safe to call
// multiple times; later calls are no-ops. If ctx is canceled mid-drain
// Shutdown stops early, reporting the context error alongside any task
// errors collected so far.
func Shutdown(ctx context.Context) error {
	q.mu.Lock()

	if q.closed {
		q.mu.Unlock()
		return nil
	}

	q.closed = true
	tasks := q.tasks
	q.tasks = nil

	q.mu.Unlock()

	var errs []error

	for i := len(tasks) - 1; i >= 0; i-- {
		select {
		case <-ctx.Done():
			errs = append(errs, fmt.Errorf("shutdown canceled: %w", ctx.Err()))

			return errors.Join(errs...)
		default:
		}

		runTask(ctx, tasks[i], &errs)
	}

	return errors.Join(errs...)
}

func runTask(ctx context.Context, t Task, errs *[]error) {
	defer func() {
		r := recover()
		if r != nil {
			*errs = append(*errs, fmt.Errorf("panic in shutdown task: %v", r))
		}
	}()

	err := t(ctx)
	if err != nil {
		*errs = append(*errs, err)
	}
}
