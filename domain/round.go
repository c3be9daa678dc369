package domain

import (
	"time"

	"github.com/beka-birhanu/vinom-maze/game"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/google/uuid"
)

// RoundView is what presentation layers get to see of a player's round.
type RoundView struct {
	ID         uuid.UUID
	Difficulty string
	Character  string
	Target     string
	Maze       *maze.Maze
	State      game.Snapshot
}

// MoveResult pairs the round after a move with the move's outcome.
type MoveResult struct {
	Round   RoundView
	Outcome game.Outcome
}

// QuizResult pairs the round after an answer with whether it was correct.
type QuizResult struct {
	Round   RoundView
	Correct bool
}

// RoundResult is the stored record of a finished round.
type RoundResult struct {
	ID             uuid.UUID `bson:"_id"`
	UserID         uuid.UUID `bson:"userId"`
	Difficulty     string    `bson:"difficulty"`
	Character      string    `bson:"character"`
	Status         string    `bson:"status"`
	Steps          int       `bson:"steps"`
	ElapsedSeconds int64     `bson:"elapsedSeconds"`
	QuizzesSolved  int       `bson:"quizzesSolved"`
	FinishedAt     time.Time `bson:"finishedAt"`
}

// LeaderboardEntry is one line of a difficulty's best-times board.
type LeaderboardEntry struct {
	Rank           int
	Username       string
	ElapsedSeconds int64
	Steps          int
}

// ScoredMember is a raw member of a sorted store.
type ScoredMember struct {
	Member string
	Score  float64
}
