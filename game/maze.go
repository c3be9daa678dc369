package game

import "github.com/beka-birhanu/vinom-maze/maze"

// Maze defines the methods a carved maze must implement to host a round.
type Maze interface {
	Rows() int
	Cols() int
	Entrance() maze.CellPosition
	Exit() maze.CellPosition
	CanMove(pos maze.CellPosition, d maze.Direction) bool
	IsQuizCell(pos maze.CellPosition) bool
	FindPath(start, target maze.CellPosition) []maze.CellPosition
}

// Question is a multiple choice challenge shown on a quiz cell.
type Question struct {
	Prompt  string   // Prompt shown to the player
	Options []string // Answer options in display order
	Answer  int      // Index into Options of the correct answer
}

// QuizBank hands out questions for quiz cells.
type QuizBank interface {
	Next() Question
}
