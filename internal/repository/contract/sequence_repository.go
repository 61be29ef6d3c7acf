package contract

import "context"

// SequenceRepository issues monotonically increasing document numbers per
// (prefix, year). Next must be safe under concurrent callers.
type SequenceRepository interface {
	Next(ctx context.Context, prefix string, year int) (int64, error)
}
