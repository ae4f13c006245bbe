// Package worker runs scans and rename batches on a single background
// goroutine and reports their progress and completion as messages.
package worker

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/mydehq/hwrename/internal/types"
)

// Kind tells what a Message carries
type Kind int

const (
	KindProgress Kind = iota
	KindDone
	KindFailed
)

func (k Kind) String() string {
	switch k {
	case KindProgress:
		return "progress"
	case KindDone:
		return "done"
	case KindFailed:
		return "failed"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Message is delivered on the worker's outbox. Every task produces zero
// or more progress messages followed by exactly one done or failed message.
type Message struct {
	Task  string
	Kind  Kind
	Value any
	Err   error
}

// TaskFunc is the unit of work. report publishes a progress value.
type TaskFunc func(ctx context.Context, report func(any)) (any, error)

type job struct {
	name string
	fn   TaskFunc
}

// Worker executes one task at a time
type Worker struct {
	jobs   chan job
	out    chan Message
	logger *log.Logger

	mu      sync.Mutex
	busy    bool
	started bool
	closed  bool
	done    chan struct{}
}

// New creates a worker. Call Start before submitting tasks.
func New(logger *log.Logger) *Worker {
	if logger == nil {
		logger = log.Default()
	}
	return &Worker{
		jobs:   make(chan job, 1),
		out:    make(chan Message, 64),
		logger: logger,
		done:   make(chan struct{}),
	}
}

// Messages returns the outbox. It is closed after Close once the running
// task, if any, has finished.
func (w *Worker) Messages() <-chan Message {
	return w.out
}

// Start launches the background goroutine
func (w *Worker) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started {
		return
	}
	w.started = true
	go w.loop()
}

// Busy reports whether a task is in flight
func (w *Worker) Busy() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.busy
}

// Submit hands a task to the worker. It returns types.ErrBusy while
// another task is still running.
func (w *Worker) Submit(name string, fn TaskFunc) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.started || w.closed {
		return fmt.Errorf("worker is not running")
	}
	if w.busy {
		return types.ErrBusy
	}
	w.busy = true
	w.jobs <- job{name: name, fn: fn}
	return nil
}

// Close stops accepting tasks and waits for the running one to finish.
// Messages not yet read are discarded so a started batch always
// completes, even when nobody consumes the outbox any more.
func (w *Worker) Close() {
	w.mu.Lock()
	if !w.started || w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	close(w.jobs)
	w.mu.Unlock()

	go func() {
		for range w.out {
		}
	}()
	<-w.done
}

func (w *Worker) loop() {
	defer close(w.done)
	defer close(w.out)

	for j := range w.jobs {
		msg := w.run(j)
		w.mu.Lock()
		w.busy = false
		w.mu.Unlock()
		w.out <- msg
	}
}

func (w *Worker) run(j job) (msg Message) {
	ctx := log.WithContext(context.Background(), w.logger)
	report := func(v any) {
		w.out <- Message{Task: j.name, Kind: KindProgress, Value: v}
	}

	defer func() {
		if r := recover(); r != nil {
			w.logger.Error("task panicked", "task", j.name, "panic", r)
			msg = Message{Task: j.name, Kind: KindFailed, Err: fmt.Errorf("%s: panic: %v", j.name, r)}
		}
	}()

	w.logger.Debug("task started", "task", j.name)
	v, err := j.fn(ctx, report)
	if err != nil {
		w.logger.Debug("task failed", "task", j.name, "err", err)
		return Message{Task: j.name, Kind: KindFailed, Err: err}
	}
	w.logger.Debug("task finished", "task", j.name)
	return Message{Task: j.name, Kind: KindDone, Value: v}
}
