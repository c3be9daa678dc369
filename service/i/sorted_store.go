package i

import (
	"context"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
)

// SortedStore keeps members ordered by score, lowest first.
type SortedStore interface {
	// SetIfLower stores score for member when it is the member's first score
	// or lower than the stored one. It reports whether the store changed.
	SetIfLower(ctx context.Context, key, member string, score float64) (bool, error)

	// Lowest returns up to n members with the lowest scores, ascending.
	Lowest(ctx context.Context, key string, n int64) ([]dmn.ScoredMember, error)
}
