package revalidate

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/anonto42/ui-crate/backend/pkg/logger"
	"github.com/sirupsen/logrus"
)

// Notifier accepts events without blocking the caller and never reports
// failure.
type Notifier interface {
	Notify(ev Event)
}

// Sink handles one event. Errors are logged by the dispatcher.
type Sink interface {
	Name() string
	Handle(ctx context.Context, ev Event) error
}

// Dispatcher queues events and fans them out to sinks from a single worker.
// Events are dropped when the queue is full or the dispatcher is shut down.
type Dispatcher struct {
	queue   chan Event
	sinks   []Sink
	timeout time.Duration
	log     *logrus.Entry

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

// NewDispatcher creates a dispatcher; call Start to begin draining.
func NewDispatcher(queueSize int, sinkTimeout time.Duration, sinks ...Sink) *Dispatcher {
	if queueSize < 1 {
		queueSize = 1
	}
	return &Dispatcher{
		queue:   make(chan Event, queueSize),
		sinks:   sinks,
		timeout: sinkTimeout,
		log:     logger.WithComponent("revalidate"),
		done:    make(chan struct{}),
	}
}

func (d *Dispatcher) Start() {
	go d.run()
}

func (d *Dispatcher) Notify(ev Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.log.WithField("reason", ev.Reason).Warn("dispatcher closed, dropping event")
		return
	}
	select {
	case d.queue <- ev:
	default:
		d.log.WithField("reason", ev.Reason).Warn("revalidation queue full, dropping event")
	}
}

// Shutdown stops accepting events and waits for queued ones to drain.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for ev := range d.queue {
		for _, sink := range d.sinks {
			d.deliver(sink, ev)
		}
	}
}

func (d *Dispatcher) deliver(sink Sink, ev Event) {
	ctx := context.Background()
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	entry := d.log.WithFields(logrus.Fields{"sink": sink.Name(), "reason": ev.Reason, "paths": ev.Paths})
	defer func() {
		if r := recover(); r != nil {
			entry.WithError(fmt.Errorf("panic: %v", r)).Error("revalidation sink panicked")
		}
	}()

	if err := sink.Handle(ctx, ev); err != nil {
		entry.WithError(err).Warn("revalidation sink failed")
		return
	}
	entry.Debug("revalidation delivered")
}
