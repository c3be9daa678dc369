package i

import (
	"context"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/google/uuid"
)

// RoundManager owns every player's active round.
type RoundManager interface {
	// NewRound replaces the player's round with a fresh maze.
	NewRound(ctx context.Context, playerID uuid.UUID, username, difficulty, character string) (*dmn.RoundView, error)

	// Current returns the player's active round.
	Current(playerID uuid.UUID) (*dmn.RoundView, error)

	// Move applies a directional move to the player's round.
	Move(ctx context.Context, playerID uuid.UUID, d maze.Direction) (*dmn.MoveResult, error)

	// AnswerQuiz answers the quiz blocking the player's round.
	AnswerQuiz(ctx context.Context, playerID uuid.UUID, option int) (*dmn.QuizResult, error)

	// Reset regenerates the maze keeping difficulty and character.
	Reset(ctx context.Context, playerID uuid.UUID) (*dmn.RoundView, error)

	// Results lists the player's finished rounds, most recent first.
	Results(playerID uuid.UUID, limit int64) ([]*dmn.RoundResult, error)
}
