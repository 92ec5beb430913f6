package scanner

import "context"

// ProgressFunc is called once per inspected entry with the number of
// entries finished so far and the total number being inspected. It may be
// called from several goroutines at once.
type ProgressFunc func(done, total int)

type progressKey struct{}

// WithProgress returns a context that makes ScanAll report per-entry
// progress to fn.
func WithProgress(ctx context.Context, fn ProgressFunc) context.Context {
	return context.WithValue(ctx, progressKey{}, fn)
}

func progressFromContext(ctx context.Context) ProgressFunc {
	if fn, ok := ctx.Value(progressKey{}).(ProgressFunc); ok && fn != nil {
		return fn
	}
	return func(int, int) {}
}
