package events

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yaoapp/kun/log"

	"github.com/robokit/robokit/lane"
)

// DispatchEventByName delivers data to every callback subscribed under name.
// Registrations are snapshotted first, so subscribe/unsubscribe from other
// goroutines (or from callbacks themselves) never race the iteration. An
// empty name is logged and ignored; an unknown name is a silent no-op.
//
// When ctx originates from a lane run loop, callbacks targeting that same
// lane execute inline; all other callbacks are handed off to their lane's
// queue. Callers outside any lane can pass context.Background().
func (h *Handler) DispatchEventByName(ctx context.Context, data any, name string) {
	if name == "" {
		log.Error("events: bad event name in dispatch")
		return
	}
	for _, reg := range h.subs.snapshot(name) {
		h.notify(ctx, reg, name, data)
	}
}

// DispatchEvent delivers data to every callback subscribed to the given
// event type.
func (h *Handler) DispatchEvent(ctx context.Context, data any, typ EventType) {
	if typ == "" {
		log.Error("events: bad event type in dispatch")
		return
	}
	h.DispatchEventByName(ctx, data, typ.String())
}

// notify schedules one registration's invocation on its lane. Same-lane
// invocations run to completion inline; cross-lane invocations go through
// the target lane's queue.
func (h *Handler) notify(ctx context.Context, reg *registration, name string, data any) {
	target := h.workerLane()
	if reg.onConnectionLane {
		target = h.connectionLane()
	}
	if target == nil {
		log.Error("events: dispatch before start: event=%s", name)
		return
	}

	task := h.invocation(reg, name, data)
	if lane.FromContext(ctx) == target {
		task(ctx)
		return
	}
	if err := target.SubmitContext(ctx, task); err != nil {
		if errors.Is(err, context.Canceled) {
			log.Debug("events: notify abandoned during shutdown: lane=%s event=%s", target.Name(), name)
			return
		}
		log.Error("events: notify failed: lane=%s event=%s err=%v", target.Name(), name, err)
	}
}

// invocation wraps one callback call with failure isolation: a returned
// error or a panic is logged and never reaches the dispatching lane.
func (h *Handler) invocation(reg *registration, name string, data any) lane.Task {
	return func(ctx context.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("event callback panic: event=%s err=%v", name, r)
				if strings.Contains(fmt.Sprint(r), "interface conversion") {
					log.Error("the subscribed callback may be asserting the wrong payload type; it receives (robot, event name, event data) plus any arguments from WithArgs")
				}
			}
		}()
		if err := reg.callback(ctx, h.robot, name, data, reg.extra...); err != nil {
			log.Error("event callback error: event=%s err=%v", name, err)
		}
	}
}
