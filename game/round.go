package game

import (
	"errors"
	"sort"
	"sync"

	"github.com/beka-birhanu/vinom-maze/maze"
)

// Round-related errors.
var (
	ErrNilMaze         = errors.New("round requires a maze")
	ErrNilQuizBank     = errors.New("round requires a quiz bank")
	ErrNoActiveQuiz    = errors.New("no quiz is open")
	ErrInvalidOption   = errors.New("quiz option out of range")
	ErrRoundNotPlaying = errors.New("round is not in play")
	ErrQuizOpen        = errors.New("a quiz must be answered first")
	ErrOutOfBounds     = errors.New("move leaves the maze")
	ErrWalled          = errors.New("a wall blocks the move")
	ErrInvalidMove     = errors.New("not a unit move")
)

const (
	// pursuerActivationProgress is the share of the entrance-to-exit distance
	// the player must cover before the pursuer wakes up.
	pursuerActivationProgress = 0.45

	// pursuerRestEvery makes the pursuer sit out every n-th accepted move.
	pursuerRestEvery = 3
)

// Outcome reports what a single move attempt did.
type Outcome struct {
	Kind            OutcomeKind
	Rejection       error             // Why the move was rejected, nil otherwise
	Player          maze.CellPosition // Player position after the attempt
	Pursuer         maze.CellPosition // Pursuer position after the attempt
	PursuerActive   bool              // Whether the pursuer is chasing
	PursuerAwakened bool              // Set only on the move that woke the pursuer
	TimerStarted    bool              // Set only on the first accepted move
	Steps           int               // Accepted moves so far
	Status          Status            // Round status after the attempt
}

// OpenQuiz is the quiz currently blocking movement.
type OpenQuiz struct {
	Cell     maze.CellPosition
	Question Question
}

// Snapshot is a read-only view of a round for presentation.
type Snapshot struct {
	Status         Status
	Player         maze.CellPosition
	Pursuer        maze.CellPosition
	PursuerActive  bool
	Steps          int
	ElapsedSeconds int64
	Quiz           *OpenQuiz
	SolvedQuizzes  []maze.CellPosition
	Version        int64
}

// Round is the turn engine for one maze. Moves, quiz answers and ticks are
// serialised: each call runs to completion before the next is accepted.
type Round struct {
	maze          Maze
	quizzes       QuizBank
	status        Status
	player        maze.CellPosition
	pursuer       maze.CellPosition
	pursuerActive bool
	steps         int
	elapsed       int64
	timerStarted  bool
	solved        map[maze.CellPosition]struct{}
	quiz          *OpenQuiz
	version       int64 // Bumped on every state change
	sync.RWMutex
}

// NewRound starts a round on m with the player at the entrance. A maze whose
// entrance is its exit (1x1) is won before the first move.
func NewRound(m Maze, quizzes QuizBank) (*Round, error) {
	if m == nil {
		return nil, ErrNilMaze
	}
	if quizzes == nil {
		return nil, ErrNilQuizBank
	}

	status := StatusPlaying
	if m.Entrance() == m.Exit() {
		status = StatusWon
	}

	return &Round{
		maze:    m,
		quizzes: quizzes,
		status:  status,
		player:  m.Entrance(),
		pursuer: m.Entrance(),
		solved:  make(map[maze.CellPosition]struct{}),
	}, nil
}

// Status returns the current round status.
func (r *Round) Status() Status {
	r.RLock()
	defer r.RUnlock()
	return r.status
}

// AttemptMove processes one directional move intent.
func (r *Round) AttemptMove(d maze.Direction) Outcome {
	r.Lock()
	defer r.Unlock()

	if err := r.guardMove(d); err != nil {
		out := r.outcome(OutcomeRejected)
		out.Rejection = err
		return out
	}

	dest := r.player.Step(d)
	r.player = dest
	r.steps++
	r.version++

	timerStarted := false
	if !r.timerStarted {
		r.timerStarted = true
		timerStarted = true
	}

	awakened := false
	if !r.pursuerActive && r.progress(dest) >= pursuerActivationProgress {
		r.pursuerActive = true
		r.pursuer = r.maze.Entrance()
		awakened = true
	}

	if r.pursuerActive {
		if r.steps%pursuerRestEvery != 0 {
			r.advancePursuer()
		}
		if r.pursuer == r.player {
			r.status = StatusLost
			return r.finish(OutcomeCaught, awakened, timerStarted)
		}
	}

	if r.maze.IsQuizCell(dest) {
		if _, done := r.solved[dest]; !done {
			r.quiz = &OpenQuiz{Cell: dest, Question: r.quizzes.Next()}
			return r.finish(OutcomeQuizOpened, awakened, timerStarted)
		}
	}

	if dest == r.maze.Exit() {
		r.status = StatusWon
		return r.finish(OutcomeWon, awakened, timerStarted)
	}

	return r.finish(OutcomeMoved, awakened, timerStarted)
}

// AnswerQuiz resolves the open quiz. A correct answer marks the quiz cell as
// solved for the rest of the round; a wrong one leaves the quiz open.
func (r *Round) AnswerQuiz(option int) (bool, error) {
	r.Lock()
	defer r.Unlock()

	if r.quiz == nil {
		return false, ErrNoActiveQuiz
	}
	if option < 0 || option >= len(r.quiz.Question.Options) {
		return false, ErrInvalidOption
	}
	if option != r.quiz.Question.Answer {
		return false, nil
	}

	r.solved[r.quiz.Cell] = struct{}{}
	r.quiz = nil
	r.version++
	return true, nil
}

// Tick adds one second to the elapsed time once the first move has been made.
// It touches nothing but the counter.
func (r *Round) Tick() {
	r.Lock()
	defer r.Unlock()

	if r.timerStarted && r.status == StatusPlaying {
		r.elapsed++
	}
}

// Snapshot returns a copy of the round state.
func (r *Round) Snapshot() Snapshot {
	r.RLock()
	defer r.RUnlock()

	s := Snapshot{
		Status:         r.status,
		Player:         r.player,
		Pursuer:        r.pursuer,
		PursuerActive:  r.pursuerActive,
		Steps:          r.steps,
		ElapsedSeconds: r.elapsed,
		Version:        r.version,
	}
	if r.quiz != nil {
		q := *r.quiz
		q.Question.Options = append([]string(nil), r.quiz.Question.Options...)
		s.Quiz = &q
	}
	for pos := range r.solved {
		s.SolvedQuizzes = append(s.SolvedQuizzes, pos)
	}
	// Row-major, matching maze.QuizCells.
	sort.Slice(s.SolvedQuizzes, func(a, b int) bool {
		pa, pb := s.SolvedQuizzes[a], s.SolvedQuizzes[b]
		if pa.Row != pb.Row {
			return pa.Row < pb.Row
		}
		return pa.Col < pb.Col
	})
	return s
}

// guardMove checks, in order, every reason a move can be refused.
func (r *Round) guardMove(d maze.Direction) error {
	if r.status != StatusPlaying {
		return ErrRoundNotPlaying
	}
	if r.quiz != nil {
		return ErrQuizOpen
	}
	if !d.Valid() {
		return ErrInvalidMove
	}
	dest := r.player.Step(d)
	if dest.Row < 0 || dest.Row >= r.maze.Rows() || dest.Col < 0 || dest.Col >= r.maze.Cols() {
		return ErrOutOfBounds
	}
	if !r.maze.CanMove(r.player, d) {
		return ErrWalled
	}
	return nil
}

// progress is how far pos lies along the entrance-to-exit diagonal, in [0, 1].
func (r *Round) progress(pos maze.CellPosition) float64 {
	span := r.maze.Rows() + r.maze.Cols() - 2
	if span <= 0 {
		return 1
	}
	return float64(pos.Row+pos.Col) / float64(span)
}

// advancePursuer moves the pursuer one step along its shortest path to the
// player. An empty or single-cell path leaves it in place.
func (r *Round) advancePursuer() {
	path := r.maze.FindPath(r.pursuer, r.player)
	if len(path) > 1 {
		r.pursuer = path[1]
	}
}

func (r *Round) outcome(kind OutcomeKind) Outcome {
	return Outcome{
		Kind:          kind,
		Player:        r.player,
		Pursuer:       r.pursuer,
		PursuerActive: r.pursuerActive,
		Steps:         r.steps,
		Status:        r.status,
	}
}

func (r *Round) finish(kind OutcomeKind, awakened, timerStarted bool) Outcome {
	out := r.outcome(kind)
	out.PursuerAwakened = awakened
	out.TimerStarted = timerStarted
	return out
}
