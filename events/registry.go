package events

import (
	"context"
	"reflect"
	"runtime"
	"sync"

	"github.com/yaoapp/kun/log"
)

// Callback is invoked once per dispatched event with the owning robot, the
// event name, and the event payload, followed by any arguments given via
// WithArgs at subscribe time. A returned error is logged and isolated; it
// never aborts other callbacks or the stream.
type Callback func(ctx context.Context, robot any, name string, data any, extra ...any) error

// registration is one callback's subscription record for an event name.
type registration struct {
	callback         Callback
	extra            []any
	onConnectionLane bool
}

// registry maps event names to registrations keyed by callback identity.
// Identity is the callback's code pointer: re-subscribing the same function
// is a no-op regardless of differing options, and unsubscribe matches by
// function, not by registration record. Closures created from the same
// function literal, and method values bound to different receivers, share a
// code pointer and therefore a single identity.
type registry struct {
	mu   sync.RWMutex
	subs map[string]map[uintptr]*registration
}

func newRegistry() *registry {
	return &registry{subs: make(map[string]map[uintptr]*registration)}
}

func callbackKey(cb Callback) uintptr {
	return reflect.ValueOf(cb).Pointer()
}

func callbackName(cb Callback) string {
	if fn := runtime.FuncForPC(callbackKey(cb)); fn != nil {
		return fn.Name()
	}
	return "unknown"
}

// add stores reg under name. The first registration for a callback identity
// wins; duplicates are dropped silently.
func (r *registry) add(name string, reg *registration) {
	key := callbackKey(reg.callback)
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.subs[name]
	if !ok {
		set = make(map[uintptr]*registration)
		r.subs[name] = set
	}
	if _, exists := set[key]; exists {
		return
	}
	set[key] = reg
}

// remove deletes cb's registration under name. Reports whether a
// registration was removed; a name whose last registration is removed is
// pruned from the map entirely.
func (r *registry) remove(name string, cb Callback) (removed bool, nameKnown bool) {
	key := callbackKey(cb)
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.subs[name]
	if !ok {
		return false, false
	}
	if _, exists := set[key]; !exists {
		return false, true
	}
	delete(set, key)
	if len(set) == 0 {
		delete(r.subs, name)
	}
	return true, true
}

// snapshot returns a copy of the current registrations for name, safe to
// iterate while other goroutines mutate the registry.
func (r *registry) snapshot(name string) []*registration {
	r.mu.RLock()
	defer r.mu.RUnlock()

	set, ok := r.subs[name]
	if !ok {
		return nil
	}
	regs := make([]*registration, 0, len(set))
	for _, reg := range set {
		regs = append(regs, reg)
	}
	return regs
}

// SubscribeByName registers cb for events dispatched under name. The
// callback's identity keys the registration: subscribing the same function
// twice is a no-op, even with different options. A missing name or callback
// is logged and ignored.
func (h *Handler) SubscribeByName(cb Callback, name string, opts ...SubscribeOption) {
	if name == "" {
		log.Error("events: bad event name in subscribe")
		return
	}
	if cb == nil {
		log.Error("events: nil callback in subscribe: event=%s", name)
		return
	}

	reg := &registration{callback: cb}
	for _, opt := range opts {
		opt(reg)
	}
	h.subs.add(name, reg)
}

// Subscribe registers cb for the given event type.
func (h *Handler) Subscribe(cb Callback, typ EventType, opts ...SubscribeOption) {
	if typ == "" {
		log.Error("events: bad event type in subscribe")
		return
	}
	h.SubscribeByName(cb, typ.String(), opts...)
}

// UnsubscribeByName removes cb's registration under name. An unknown name
// or an unregistered callback is logged and ignored.
func (h *Handler) UnsubscribeByName(cb Callback, name string) {
	if name == "" {
		log.Error("events: bad event name in unsubscribe")
		return
	}
	if cb == nil {
		log.Error("events: nil callback in unsubscribe: event=%s", name)
		return
	}

	removed, nameKnown := h.subs.remove(name, cb)
	switch {
	case !nameKnown:
		log.Error("events: cannot unsubscribe from '%s': it has no subscribers", name)
	case !removed:
		log.Error("events: callback '%s' is not subscribed to '%s'", callbackName(cb), name)
	}
}

// Unsubscribe removes cb's registration for the given event type.
func (h *Handler) Unsubscribe(cb Callback, typ EventType) {
	if typ == "" {
		log.Error("events: bad event type in unsubscribe")
		return
	}
	h.UnsubscribeByName(cb, typ.String())
}
