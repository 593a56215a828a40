package logplus

import "context"

// fieldsContextKey is the private key under which bound fields travel in a
// context.Context.
type fieldsContextKey struct{}

// BindContext returns a context carrying fields in addition to anything
// already bound. Keys already bound are overwritten; new keys are appended
// in order. The parent context is not modified.
//
// Fields bound this way are merged into every payload logged through the
// *Context severity methods, which makes them the right place for
// request-scoped values like request IDs.
func BindContext(ctx context.Context, fields Fields) context.Context {
	return context.WithValue(ctx, fieldsContextKey{}, bind(ContextFields(ctx), fields))
}

// UnbindContext returns a context with the given keys removed from the bound
// fields. Unknown keys are ignored.
func UnbindContext(ctx context.Context, keys ...string) context.Context {
	bound := ContextFields(ctx)
	kept := make(Fields, 0, len(bound))
	for _, kv := range bound {
		drop := false
		for _, k := range keys {
			if kv.Key == k {
				drop = true
				break
			}
		}
		if !drop {
			kept = append(kept, kv)
		}
	}
	return context.WithValue(ctx, fieldsContextKey{}, kept)
}

// ContextFields returns a copy of the fields bound into ctx, or nil when
// none are bound.
func ContextFields(ctx context.Context) Fields {
	if ctx == nil {
		return nil
	}
	bound, ok := ctx.Value(fieldsContextKey{}).(Fields)
	if !ok || len(bound) == 0 {
		return nil
	}
	snapshot := make(Fields, len(bound))
	copy(snapshot, bound)
	return snapshot
}
