package events

// SubscribeOption configures a callback registration.
type SubscribeOption func(*registration)

// WithArgs appends extra arguments passed to the callback after the event
// payload, in the order given. Options on a duplicate subscription are
// ignored: the first registration for a callback identity wins.
func WithArgs(args ...any) SubscribeOption {
	return func(r *registration) {
		r.extra = append(r.extra, args...)
	}
}

// OnConnectionLane routes the callback onto the connection's own lane
// instead of the worker lane. This gives the lowest latency, but a slow
// callback here stalls stream consumption. Intended for small, fast
// state-mutation callbacks only.
func OnConnectionLane() SubscribeOption {
	return func(r *registration) {
		r.onConnectionLane = true
	}
}
