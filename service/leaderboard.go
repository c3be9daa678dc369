package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/service/i"
)

const (
	defaultLeaderboardPrefix = "vinom"
	defaultLeaderboardSize   = 10
	leaderboardKeyFmt        = "%s:leaderboard:%s"

	// stepsSlot is the score space reserved for steps below one second, so
	// ties on time are broken by the shorter walk.
	stepsSlot = 100000
)

var _ i.Leaderboard = &Leaderboard{}

// LeaderboardOptions configures a Leaderboard.
type LeaderboardOptions struct {
	Prefix string
	Size   int64
}

// Leaderboard keeps each player's best winning run per difficulty.
type Leaderboard struct {
	store  i.SortedStore
	logger i.Logger
	opts   *LeaderboardOptions
}

// NewLeaderboard creates a Leaderboard over store.
func NewLeaderboard(store i.SortedStore, logger i.Logger, opts *LeaderboardOptions) (*Leaderboard, error) {
	if store == nil || logger == nil {
		return nil, errors.New("leaderboard requires a store and a logger")
	}

	if opts == nil {
		opts = &LeaderboardOptions{}
	}
	if opts.Prefix == "" {
		opts.Prefix = defaultLeaderboardPrefix
	}
	if opts.Size <= 0 {
		opts.Size = defaultLeaderboardSize
	}

	return &Leaderboard{
		store:  store,
		logger: logger,
		opts:   opts,
	}, nil
}

// Submit implements i.Leaderboard.
func (l *Leaderboard) Submit(ctx context.Context, difficulty, username string, elapsedSeconds int64, steps int) error {
	improved, err := l.store.SetIfLower(ctx, l.key(difficulty), username, encodeScore(elapsedSeconds, steps))
	if err != nil {
		l.logger.Error(fmt.Sprintf("submitting %s score for %s: %s", difficulty, username, err))
		return err
	}

	if improved {
		l.logger.Info(fmt.Sprintf("new best %s run for %s: %ds in %d steps", difficulty, username, elapsedSeconds, steps))
	}
	return nil
}

// Top implements i.Leaderboard.
func (l *Leaderboard) Top(ctx context.Context, difficulty string) ([]dmn.LeaderboardEntry, error) {
	members, err := l.store.Lowest(ctx, l.key(difficulty), l.opts.Size)
	if err != nil {
		l.logger.Error(fmt.Sprintf("reading %s leaderboard: %s", difficulty, err))
		return nil, err
	}

	entries := make([]dmn.LeaderboardEntry, 0, len(members))
	for idx, m := range members {
		elapsed, steps := decodeScore(m.Score)
		entries = append(entries, dmn.LeaderboardEntry{
			Rank:           idx + 1,
			Username:       m.Member,
			ElapsedSeconds: elapsed,
			Steps:          steps,
		})
	}
	return entries, nil
}

func (l *Leaderboard) key(difficulty string) string {
	return fmt.Sprintf(leaderboardKeyFmt, l.opts.Prefix, difficulty)
}

func encodeScore(elapsedSeconds int64, steps int) float64 {
	return float64(elapsedSeconds)*stepsSlot + float64(min(steps, stepsSlot-1))
}

func decodeScore(score float64) (int64, int) {
	whole := int64(math.Round(score))
	return whole / stepsSlot, int(whole % stepsSlot)
}
