package events

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/yaoapp/kun/log"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/robokit/robokit/events/types"
	"github.com/robokit/robokit/lane"
)

// Sentinel errors.
var (
	ErrAlreadyStarted = errors.New("events: handler already started")
	ErrClosed         = errors.New("events: handler closed")
)

// workerJoinTimeout bounds the wait for the worker lane to exit during
// Close. A callback still blocking the lane past this point is abandoned.
var workerJoinTimeout = 5 * time.Second

// Connection is the transport collaborator the handler listens on. The
// handler does not own it: establishment, teardown and wire encoding are the
// connection's concern.
type Connection interface {
	// Lane returns the connection's execution lane. Per-message dispatch
	// and OnConnectionLane callbacks run here.
	Lane() *lane.Lane

	// EventStream opens the server-streaming event call scoped to the given
	// connection ID. The returned stream is lazy, unbounded and ends when
	// ctx is cancelled.
	EventStream(ctx context.Context, connectionID string) (EventStream, error)
}

// EventStream yields event messages until the call ends.
type EventStream interface {
	Recv() (*types.EventMessage, error)
}

// Handler listens for robot events and fans them out to subscribed
// callbacks. Construct with New, wire up with Start, and tear down with
// Close; a closed handler cannot be restarted.
type Handler struct {
	mu    sync.RWMutex
	robot any
	subs  *registry

	conn    Connection
	connID  string
	worker  *lane.Lane
	started bool
	closed  bool

	// listening gates dispatch inside the consume loop; cleared first
	// during Close so a blocked Recv never delivers after shutdown.
	listening atomic.Bool

	streamCancel context.CancelFunc
	streamDone   chan struct{}
	recvErr      error
}

// New creates a handler for the given owning robot. The robot reference is
// passed through unmodified as the first argument to every callback.
func New(robot any) *Handler {
	return &Handler{robot: robot, subs: newRegistry()}
}

// Start begins listening for events on conn. It generates a fresh
// connection-id token, spawns the worker lane that hosts default callbacks,
// and starts the stream consumer. The consumer's blocking receive is a
// suspension point: it runs on its own goroutine and hands each message's
// dispatch to the connection lane, so the lane stays responsive to
// OnConnectionLane callbacks while the stream is idle.
func (h *Handler) Start(conn Connection) error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return ErrClosed
	}
	if h.started {
		h.mu.Unlock()
		return ErrAlreadyStarted
	}
	streamCtx, cancel := context.WithCancel(context.Background())
	h.started = true
	h.conn = conn
	h.connID = uuid.New().String()
	h.worker = lane.New("event-worker")
	h.streamCancel = cancel
	h.streamDone = make(chan struct{})
	h.listening.Store(true)
	h.mu.Unlock()

	go func() {
		defer close(h.streamDone)
		h.consume(streamCtx)
	}()
	return nil
}

// Close stops listening for events. It clears the listening flag, cancels
// the stream task and waits for it to acknowledge, then joins the worker
// lane with a bounded timeout; callbacks still queued on the worker lane
// are dropped. Close after Close is a no-op.
func (h *Handler) Close() error {
	h.mu.Lock()
	if !h.started || h.closed {
		h.mu.Unlock()
		return nil
	}
	h.closed = true
	cancel := h.streamCancel
	done := h.streamDone
	worker := h.worker
	h.mu.Unlock()

	h.listening.Store(false)
	cancel()
	<-done

	var errs *multierror.Error
	h.mu.RLock()
	if h.recvErr != nil {
		errs = multierror.Append(errs, h.recvErr)
	}
	h.mu.RUnlock()
	if err := worker.Close(workerJoinTimeout); err != nil {
		errs = multierror.Append(errs, fmt.Errorf("events: worker lane: %w", err))
	}
	return errs.ErrorOrNil()
}

// Listening reports whether the handler is delivering stream events.
func (h *Handler) Listening() bool {
	return h.listening.Load()
}

// ConnectionID returns the token identifying this stream session. Empty
// before Start.
func (h *Handler) ConnectionID() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.connID
}

// consume drives the event stream: open the call, then receive, flatten and
// hand each message's dispatch to the connection lane until cancelled.
// Hand-offs are submitted in receive order and run FIFO on the lane, so
// arrival order is preserved. One malformed message never aborts the stream.
func (h *Handler) consume(ctx context.Context) {
	conn, connID := h.connection()
	connLane := conn.Lane()
	stream, err := conn.EventStream(ctx, connID)
	if err != nil {
		if isCancelled(err) {
			log.Debug("event stream cancelled before opening; expected during disconnection")
			return
		}
		h.setRecvErr(err)
		log.Error("event stream open failed: %v", err)
		return
	}

	// Dispatch tasks execute on the connection lane; tying their context to
	// the stream lets Close unblock a hand-off still waiting on a full
	// worker lane.
	dispatchCtx := lane.NewContext(ctx, connLane)

	for {
		msg, err := stream.Recv()
		if err != nil {
			switch {
			case isCancelled(err):
				log.Debug("event stream task cancelled; expected during disconnection")
			case errors.Is(err, io.EOF):
				log.Debug("event stream closed by remote")
			default:
				h.setRecvErr(err)
				log.Error("event stream receive failed: %v", err)
			}
			return
		}
		if !h.listening.Load() {
			return
		}

		name, data, err := types.Resolve(msg)
		if err != nil {
			log.Warn("unknown event type")
			continue
		}

		err = connLane.SubmitContext(ctx, func(context.Context) {
			h.DispatchEventByName(dispatchCtx, data, name)
		})
		if err != nil {
			if isCancelled(err) {
				log.Debug("event stream task cancelled; expected during disconnection")
			} else {
				log.Error("event dispatch hand-off failed: %v", err)
			}
			return
		}
	}
}

// isCancelled reports whether err is the expected outcome of the stream
// task being cancelled during Close.
func isCancelled(err error) bool {
	return errors.Is(err, context.Canceled) || status.Code(err) == codes.Canceled
}

func (h *Handler) connection() (Connection, string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.conn, h.connID
}

func (h *Handler) setRecvErr(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.recvErr = err
}

func (h *Handler) workerLane() *lane.Lane {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.worker
}

func (h *Handler) connectionLane() *lane.Lane {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.conn == nil {
		return nil
	}
	return h.conn.Lane()
}
