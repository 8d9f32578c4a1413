package lane

import "context"

type ctxKey int

const ctxKeyLane ctxKey = iota

// NewContext returns a context tagged with the given lane. The run loop tags
// every task context this way; callers normally never need it directly.
func NewContext(ctx context.Context, l *Lane) context.Context {
	return context.WithValue(ctx, ctxKeyLane, l)
}

// FromContext returns the lane the calling task is running on, or nil when
// ctx does not originate from a lane run loop.
func FromContext(ctx context.Context) *Lane {
	if l, ok := ctx.Value(ctxKeyLane).(*Lane); ok {
		return l
	}
	return nil
}
