package lane

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/yaoapp/kun/log"
)

// Sentinel errors.
var (
	ErrClosed      = errors.New("lane: closed")
	ErrJoinTimeout = errors.New("lane: join timed out")
)

// DefaultQueueSize is the task queue capacity when no option overrides it.
const DefaultQueueSize = 1024

// Task is a unit of work executed on a lane. The context carries the lane
// identity (see FromContext) and is cancelled when the lane's owner shuts
// the surrounding session down.
type Task func(ctx context.Context)

// Lane is a single-goroutine task executor. Tasks submitted from other
// goroutines are handed off through the queue; tasks always execute one at a
// time on the lane's own goroutine, so a blocking task delays everything
// queued behind it on the same lane.
type Lane struct {
	name      string
	queueSize int
	tasks     chan Task
	quit      chan struct{}
	done      chan struct{}
	stop      sync.Once
}

// Option configures a Lane at creation time.
type Option func(*Lane)

// QueueSize sets the task queue capacity. Default is 1024.
// Submit blocks while the queue is full.
func QueueSize(n int) Option {
	return func(l *Lane) {
		if n > 0 {
			l.queueSize = n
		}
	}
}

// New creates a lane and starts its run loop.
func New(name string, opts ...Option) *Lane {
	l := &Lane{
		name:      name,
		queueSize: DefaultQueueSize,
		quit:      make(chan struct{}),
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.tasks = make(chan Task, l.queueSize)
	go l.run()
	return l
}

// Name returns the lane name given at creation. Used in diagnostics.
func (l *Lane) Name() string {
	return l.name
}

func (l *Lane) run() {
	defer close(l.done)
	ctx := NewContext(context.Background(), l)
	for {
		select {
		case <-l.quit:
			// Queued tasks are dropped on shutdown.
			return
		case t := <-l.tasks:
			l.invoke(ctx, t)
		}
	}
}

func (l *Lane) invoke(ctx context.Context, t Task) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("lane task panic: lane=%s err=%v", l.name, r)
		}
	}()
	t(ctx)
}

// Submit queues a task for execution on the lane. It is safe to call from
// any goroutine. Submit blocks while the queue is full and returns ErrClosed
// once the lane has been closed.
func (l *Lane) Submit(t Task) error {
	if t == nil {
		return nil
	}
	// Check quit first: a buffered send could otherwise win the race
	// against an already-closed lane and silently drop the task.
	select {
	case <-l.quit:
		return ErrClosed
	default:
	}
	select {
	case l.tasks <- t:
		return nil
	case <-l.quit:
		return ErrClosed
	}
}

// SubmitContext queues a task like Submit but also gives up when ctx is
// cancelled, returning ctx.Err(). Hand-offs that must not outlive the
// session driving them use this so shutdown can unblock them.
func (l *Lane) SubmitContext(ctx context.Context, t Task) error {
	if t == nil {
		return nil
	}
	select {
	case <-l.quit:
		return ErrClosed
	default:
	}
	select {
	case l.tasks <- t:
		return nil
	case <-l.quit:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close signals the run loop to exit and waits for it, bounded by timeout.
// Tasks still queued are discarded; a task currently running is not
// interrupted. If the run loop does not exit within timeout (a task is
// blocking it), Close returns ErrJoinTimeout and the lane goroutine is
// abandoned. Close is idempotent.
func (l *Lane) Close(timeout time.Duration) error {
	l.stop.Do(func() { close(l.quit) })
	select {
	case <-l.done:
		return nil
	case <-time.After(timeout):
		return ErrJoinTimeout
	}
}
