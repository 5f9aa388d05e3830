package logging

import "context"

type ctxKey struct{}

// ContextWith returns a copy of ctx carrying key–value pairs. Both backends
// add them to every record logged with that context, after the pairs of
// any enclosing ContextWith call.
func ContextWith(ctx context.Context, args ...any) context.Context {
	prev := fromContext(ctx)
	merged := make([]any, 0, len(prev)+len(args))
	merged = append(merged, prev...)
	merged = append(merged, args...)
	return context.WithValue(ctx, ctxKey{}, merged)
}

func fromContext(ctx context.Context) []any {
	if ctx == nil {
		return nil
	}
	v, _ := ctx.Value(ctxKey{}).([]any)
	return v
}

// withContext prepends the pairs carried by ctx to args.
func withContext(ctx context.Context, args []any) []any {
	c := fromContext(ctx)
	if len(c) == 0 {
		return args
	}
	out := make([]any, 0, len(c)+len(args))
	out = append(out, c...)
	return append(out, args...)
}
