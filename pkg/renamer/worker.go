package renamer

import (
	"context"
	"errors"

	"github.com/tvrenamer/tvrenamer/pkg/logger"
)

// ErrQueueFull means the worker's task queue is at capacity.
var ErrQueueFull = errors.New("task queue is full")

// Task is one unit of background work.
type Task func(ctx context.Context) (any, error)

// Result is what a finished task hands back to the controller.
type Result struct {
	Value any
	Err   error
}

// Worker runs queued tasks one at a time on a single goroutine and posts
// results to a queue the controller drains. At most one task executes at any
// moment, so Renamer methods submitted as tasks never race each other.
type Worker struct {
	tasks   chan Task
	results chan Result
	done    chan struct{}
}

// NewWorker creates a worker with the given queue capacity.
func NewWorker(buffer int) *Worker {
	if buffer < 1 {
		buffer = 1
	}
	return &Worker{
		tasks:   make(chan Task, buffer),
		results: make(chan Result, buffer),
		done:    make(chan struct{}),
	}
}

// Start runs the worker loop until ctx is canceled.
func (w *Worker) Start(ctx context.Context) {
	log := logger.FromCtx(ctx)
	go func() {
		defer close(w.done)
		for {
			select {
			case <-ctx.Done():
				log.Debug("worker stopping")
				return
			case task := <-w.tasks:
				value, err := task(ctx)
				select {
				case w.results <- Result{Value: value, Err: err}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
}

// Submit queues a task without blocking. Tasks run in submission order.
func (w *Worker) Submit(task Task) error {
	select {
	case w.tasks <- task:
		return nil
	default:
		return ErrQueueFull
	}
}

// Drain returns the results that finished since the last drain, oldest first.
func (w *Worker) Drain() []Result {
	var out []Result
	for {
		select {
		case res := <-w.results:
			out = append(out, res)
		default:
			return out
		}
	}
}

// Wait blocks until the worker loop has exited.
func (w *Worker) Wait() {
	<-w.done
}
