// Package control carries raw client input into the gesture, key and
// dispatch pipeline and echoes the resulting RFB actions back.
package control

import (
	"context"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"
)

// ErrPipelineClosed is returned by Submit after the pipeline stopped.
var ErrPipelineClosed = errors.New("input pipeline closed")

const defaultTick = 16 * time.Millisecond

// Pipeline serializes one connection's messages and timer ticks onto a
// single goroutine, so the router never sees concurrent calls.
type Pipeline struct {
	router *Router
	in     chan Message
	tick   time.Duration
	now    func() time.Time
	done   chan struct{}
	log    *log.Entry
}

// NewPipeline returns a pipeline for router ticking every tick.
func NewPipeline(router *Router, tick time.Duration, entry *log.Entry) *Pipeline {
	if tick <= 0 {
		tick = defaultTick
	}
	if entry == nil {
		entry = log.NewEntry(log.StandardLogger())
	}
	return &Pipeline{
		router: router,
		in:     make(chan Message, 64),
		tick:   tick,
		now:    time.Now,
		done:   make(chan struct{}),
		log:    entry,
	}
}

// SetNowFunc overrides the clock used to timestamp messages and ticks.
func (p *Pipeline) SetNowFunc(fn func() time.Time) {
	if fn != nil {
		p.now = fn
	}
}

// Submit queues a message, blocking while the queue is full.
func (p *Pipeline) Submit(ctx context.Context, msg Message) error {
	select {
	case p.in <- msg:
		return nil
	case <-p.done:
		return ErrPipelineClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done is closed once Run has returned.
func (p *Pipeline) Done() <-chan struct{} {
	return p.done
}

// Run processes messages and ticks until ctx is cancelled, then releases
// everything the connection still holds.
func (p *Pipeline) Run(ctx context.Context) {
	defer close(p.done)
	defer p.router.Close()

	ticker := time.NewTicker(p.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.drain()
			return
		case msg := <-p.in:
			p.handle(msg)
		case <-ticker.C:
			p.router.Tick(p.now())
		}
	}
}

// drain handles messages queued before cancellation.
func (p *Pipeline) drain() {
	for {
		select {
		case msg := <-p.in:
			p.handle(msg)
		default:
			return
		}
	}
}

// handle runs one message through the router.
func (p *Pipeline) handle(msg Message) {
	if err := p.router.Handle(msg, p.now()); err != nil {
		p.log.WithError(err).Debug("dropped input message")
	}
}
