// Package gameapi exposes maze rounds and leaderboards over HTTP.
package gameapi

import (
	"time"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/game"
	"github.com/beka-birhanu/vinom-maze/maze"
)

// NewRoundRequest starts a round.
type NewRoundRequest struct {
	Difficulty string `json:"difficulty" binding:"required"`
	Character  string `json:"character" binding:"required"`
}

// MoveRequest carries one of up, down, left, right.
type MoveRequest struct {
	Direction string `json:"direction" binding:"required"`
}

// QuizAnswerRequest picks an option index of the open quiz.
type QuizAnswerRequest struct {
	Option *int `json:"option" binding:"required"`
}

// CellResponse is one grid cell with its walls.
type CellResponse struct {
	Top    bool `json:"top"`
	Right  bool `json:"right"`
	Bottom bool `json:"bottom"`
	Left   bool `json:"left"`
	Quiz   bool `json:"quiz"`
}

// MazeResponse is the grid of a round. The solution path is never sent.
type MazeResponse struct {
	Rows  int              `json:"rows"`
	Cols  int              `json:"cols"`
	Cells [][]CellResponse `json:"cells"`
}

// QuizResponse is an open quiz without its answer.
type QuizResponse struct {
	Cell    maze.CellPosition `json:"cell"`
	Prompt  string            `json:"prompt"`
	Options []string          `json:"options"`
}

// RoundResponse is the full visible state of a round.
type RoundResponse struct {
	ID             string              `json:"id"`
	Difficulty     string              `json:"difficulty"`
	Character      string              `json:"character"`
	Target         string              `json:"target"`
	Status         string              `json:"status"`
	Player         maze.CellPosition   `json:"player"`
	Pursuer        *maze.CellPosition  `json:"pursuer,omitempty"`
	Steps          int                 `json:"steps"`
	ElapsedSeconds int64               `json:"elapsedSeconds"`
	Quiz           *QuizResponse       `json:"quiz,omitempty"`
	SolvedQuizzes  []maze.CellPosition `json:"solvedQuizzes"`
	Maze           MazeResponse        `json:"maze"`
}

// MoveResponse is the round after a move with the move's outcome tag.
type MoveResponse struct {
	Outcome         string        `json:"outcome"`
	Reason          string        `json:"reason,omitempty"`
	PursuerAwakened bool          `json:"pursuerAwakened"`
	Round           RoundResponse `json:"round"`
}

// QuizAnswerResponse is the round after an answer.
type QuizAnswerResponse struct {
	Correct bool          `json:"correct"`
	Round   RoundResponse `json:"round"`
}

// ResultResponse is a finished round.
type ResultResponse struct {
	ID             string    `json:"id"`
	Difficulty     string    `json:"difficulty"`
	Character      string    `json:"character"`
	Status         string    `json:"status"`
	Steps          int       `json:"steps"`
	ElapsedSeconds int64     `json:"elapsedSeconds"`
	QuizzesSolved  int       `json:"quizzesSolved"`
	FinishedAt     time.Time `json:"finishedAt"`
}

// LeaderboardEntryResponse is one ranked run.
type LeaderboardEntryResponse struct {
	Rank           int    `json:"rank"`
	Username       string `json:"username"`
	ElapsedSeconds int64  `json:"elapsedSeconds"`
	Steps          int    `json:"steps"`
}

func newRoundResponse(v *dmn.RoundView) RoundResponse {
	s := v.State
	r := RoundResponse{
		ID:             v.ID.String(),
		Difficulty:     v.Difficulty,
		Character:      v.Character,
		Target:         v.Target,
		Status:         s.Status.String(),
		Player:         s.Player,
		Steps:          s.Steps,
		ElapsedSeconds: s.ElapsedSeconds,
		SolvedQuizzes:  s.SolvedQuizzes,
		Maze:           newMazeResponse(v.Maze),
	}
	if r.SolvedQuizzes == nil {
		r.SolvedQuizzes = []maze.CellPosition{}
	}
	if s.PursuerActive {
		pursuer := s.Pursuer
		r.Pursuer = &pursuer
	}
	if s.Quiz != nil {
		r.Quiz = &QuizResponse{
			Cell:    s.Quiz.Cell,
			Prompt:  s.Quiz.Question.Prompt,
			Options: s.Quiz.Question.Options,
		}
	}
	return r
}

func newMazeResponse(m *maze.Maze) MazeResponse {
	if m == nil {
		return MazeResponse{Cells: [][]CellResponse{}}
	}

	cells := make([][]CellResponse, m.Rows())
	for row := range cells {
		cells[row] = make([]CellResponse, m.Cols())
		for col := range cells[row] {
			c := m.Cell(maze.CellPosition{Row: row, Col: col})
			cells[row][col] = CellResponse{
				Top:    c.NorthWall,
				Right:  c.EastWall,
				Bottom: c.SouthWall,
				Left:   c.WestWall,
				Quiz:   c.Quiz,
			}
		}
	}
	return MazeResponse{Rows: m.Rows(), Cols: m.Cols(), Cells: cells}
}

func newMoveResponse(res *dmn.MoveResult) MoveResponse {
	r := MoveResponse{
		Outcome:         res.Outcome.Kind.String(),
		PursuerAwakened: res.Outcome.PursuerAwakened,
		Round:           newRoundResponse(&res.Round),
	}
	if res.Outcome.Kind == game.OutcomeRejected && res.Outcome.Rejection != nil {
		r.Reason = res.Outcome.Rejection.Error()
	}
	return r
}

func newResultResponse(r *dmn.RoundResult) ResultResponse {
	return ResultResponse{
		ID:             r.ID.String(),
		Difficulty:     r.Difficulty,
		Character:      r.Character,
		Status:         r.Status,
		Steps:          r.Steps,
		ElapsedSeconds: r.ElapsedSeconds,
		QuizzesSolved:  r.QuizzesSolved,
		FinishedAt:     r.FinishedAt,
	}
}
