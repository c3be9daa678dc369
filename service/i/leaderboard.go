package i

import (
	"context"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
)

// Leaderboard ranks winning rounds per difficulty.
type Leaderboard interface {
	// Submit records a win; only a player's best run per difficulty is kept.
	Submit(ctx context.Context, difficulty, username string, elapsedSeconds int64, steps int) error

	// Top returns the best runs for a difficulty.
	Top(ctx context.Context, difficulty string) ([]dmn.LeaderboardEntry, error)
}
