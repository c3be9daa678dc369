package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/beka-birhanu/vinom-maze/config"
	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/game"
	"github.com/beka-birhanu/vinom-maze/infrastruture/telemetry"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/quiz"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	defaultTickInterval   = time.Second
	defaultRoundRetention = 10 * time.Minute
	defaultResultsLimit   = 20
	submitTimeout         = 2 * time.Second
)

var (
	ErrNoRound = errors.New("no round in progress")
)

var _ i.RoundManager = &RoundManager{}

// MazeFactory builds a carved maze.
type MazeFactory func(rows, cols int, rng *rand.Rand) (*maze.Maze, error)

// QuizFactory builds the quiz source for a round.
type QuizFactory func(level int, rng *rand.Rand) game.QuizBank

// RoundManagerConfig holds the collaborators of a RoundManager.
type RoundManagerConfig struct {
	MazeFactory  MazeFactory   // Defaults to maze.New
	QuizFactory  QuizFactory   // Defaults to arithmetic questions
	Results      i.ResultRepo  // Finished rounds are stored here
	Users        i.UserRepo    // Player stats are updated here
	Leaderboard  i.Leaderboard // Wins are submitted here
	Logger       i.Logger      // Required
	Tracer       trace.Tracer  // Defaults to a no-op tracer
	Seed         int64         // 0 seeds from the clock
	TickInterval time.Duration // Elapsed-time resolution
	Retention    time.Duration // How long finished rounds stay readable
}

type managedRound struct {
	id         uuid.UUID
	playerID   uuid.UUID
	username   string
	difficulty config.Difficulty
	character  config.Character
	maze       *maze.Maze
	round      *game.Round
	endedAt    time.Time
}

// RoundManager owns the active round of every player and drives their
// elapsed-time counters.
type RoundManager struct {
	rounds       map[uuid.UUID]*managedRound // indexed by player ID
	mazeFactory  MazeFactory
	quizFactory  QuizFactory
	results      i.ResultRepo
	users        i.UserRepo
	leaderboard  i.Leaderboard
	logger       i.Logger
	tracer       trace.Tracer
	rng          *rand.Rand
	rngMu        sync.Mutex
	tickInterval time.Duration
	retention    time.Duration
	sync.RWMutex
}

// NewRoundManager creates a RoundManager from c.
func NewRoundManager(c *RoundManagerConfig) (*RoundManager, error) {
	if c == nil || c.Logger == nil {
		return nil, errors.New("round manager requires a logger")
	}

	rm := &RoundManager{
		rounds:       make(map[uuid.UUID]*managedRound),
		mazeFactory:  c.MazeFactory,
		quizFactory:  c.QuizFactory,
		results:      c.Results,
		users:        c.Users,
		leaderboard:  c.Leaderboard,
		logger:       c.Logger,
		tracer:       c.Tracer,
		tickInterval: c.TickInterval,
		retention:    c.Retention,
	}

	if rm.mazeFactory == nil {
		rm.mazeFactory = maze.New
	}
	if rm.quizFactory == nil {
		rm.quizFactory = func(level int, rng *rand.Rand) game.QuizBank {
			return quiz.NewArithmetic(level, rng)
		}
	}
	if rm.tracer == nil {
		rm.tracer = telemetry.NoopTracer()
	}
	if rm.tickInterval <= 0 {
		rm.tickInterval = defaultTickInterval
	}
	if rm.retention <= 0 {
		rm.retention = defaultRoundRetention
	}

	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rm.rng = rand.New(rand.NewSource(seed))
	return rm, nil
}

// Run ticks every active round until ctx is done and drops finished rounds
// once their retention has passed.
func (rm *RoundManager) Run(ctx context.Context) {
	ticker := time.NewTicker(rm.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			rm.tick(now)
		}
	}
}

// NewRound implements i.RoundManager.
func (rm *RoundManager) NewRound(ctx context.Context, playerID uuid.UUID, username, difficulty, character string) (*dmn.RoundView, error) {
	d, err := config.DifficultyByName(difficulty)
	if err != nil {
		return nil, err
	}
	c, err := config.CharacterByID(character)
	if err != nil {
		return nil, err
	}

	mr, err := rm.startRound(ctx, playerID, username, d, c)
	if err != nil {
		return nil, err
	}

	view := mr.view()
	return &view, nil
}

// Current implements i.RoundManager.
func (rm *RoundManager) Current(playerID uuid.UUID) (*dmn.RoundView, error) {
	mr, err := rm.lookup(playerID)
	if err != nil {
		return nil, err
	}
	view := mr.view()
	return &view, nil
}

// Move implements i.RoundManager.
func (rm *RoundManager) Move(ctx context.Context, playerID uuid.UUID, d maze.Direction) (*dmn.MoveResult, error) {
	mr, err := rm.lookup(playerID)
	if err != nil {
		return nil, err
	}

	_, span := rm.tracer.Start(ctx, "round.move")
	defer span.End()

	outcome := mr.round.AttemptMove(d)
	span.SetAttributes(
		attribute.String("round.id", mr.id.String()),
		attribute.String("move.direction", d.String()),
		attribute.String("move.outcome", outcome.Kind.String()),
		attribute.Int("round.steps", outcome.Steps),
	)

	if outcome.PursuerAwakened {
		rm.logger.Info(fmt.Sprintf("pursuer woke up in round %s", mr.id))
	}
	if outcome.Kind != game.OutcomeRejected && outcome.Status.Terminal() {
		rm.finish(mr)
	}

	return &dmn.MoveResult{Round: mr.view(), Outcome: outcome}, nil
}

// AnswerQuiz implements i.RoundManager.
func (rm *RoundManager) AnswerQuiz(ctx context.Context, playerID uuid.UUID, option int) (*dmn.QuizResult, error) {
	mr, err := rm.lookup(playerID)
	if err != nil {
		return nil, err
	}

	_, span := rm.tracer.Start(ctx, "round.quiz")
	defer span.End()

	correct, err := mr.round.AnswerQuiz(option)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Bool("quiz.correct", correct))

	return &dmn.QuizResult{Round: mr.view(), Correct: correct}, nil
}

// Reset implements i.RoundManager.
func (rm *RoundManager) Reset(ctx context.Context, playerID uuid.UUID) (*dmn.RoundView, error) {
	old, err := rm.lookup(playerID)
	if err != nil {
		return nil, err
	}

	mr, err := rm.startRound(ctx, playerID, old.username, old.difficulty, old.character)
	if err != nil {
		return nil, err
	}

	view := mr.view()
	return &view, nil
}

// Results implements i.RoundManager.
func (rm *RoundManager) Results(playerID uuid.UUID, limit int64) ([]*dmn.RoundResult, error) {
	if rm.results == nil {
		return []*dmn.RoundResult{}, nil
	}
	if limit <= 0 {
		limit = defaultResultsLimit
	}
	return rm.results.ByUser(playerID, limit)
}

// startRound generates a maze and installs a new round for the player,
// replacing any previous one.
func (rm *RoundManager) startRound(ctx context.Context, playerID uuid.UUID, username string, d config.Difficulty, c config.Character) (*managedRound, error) {
	_, span := rm.tracer.Start(ctx, "maze.generate")
	defer span.End()

	start := time.Now()
	m, err := rm.mazeFactory(d.Rows, d.Cols, rm.childRand())
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		rm.logger.Error(fmt.Sprintf("creating %s maze: %s", d.Name, err))
		return nil, err
	}

	round, err := game.NewRound(m, rm.quizFactory(d.Level, rm.childRand()))
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		rm.logger.Error(fmt.Sprintf("creating round: %s", err))
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("maze.rows", m.Rows()),
		attribute.Int("maze.cols", m.Cols()),
		attribute.Int("maze.solution_length", len(m.SolutionPath)),
		attribute.Int("maze.quizzes", len(m.QuizCells())),
		attribute.Int64("maze.generation_us", time.Since(start).Microseconds()),
	)

	mr := &managedRound{
		id:         uuid.New(),
		playerID:   playerID,
		username:   username,
		difficulty: d,
		character:  c,
		maze:       m,
		round:      round,
	}

	rm.Lock()
	rm.rounds[playerID] = mr
	rm.Unlock()

	rm.logger.Info(fmt.Sprintf("started %s round %s for player %s", d.Name, mr.id, playerID))
	return mr, nil
}

func (rm *RoundManager) lookup(playerID uuid.UUID) (*managedRound, error) {
	rm.RLock()
	defer rm.RUnlock()
	mr, ok := rm.rounds[playerID]
	if !ok {
		return nil, ErrNoRound
	}
	return mr, nil
}

// childRand derives an independent source so rounds never share one.
func (rm *RoundManager) childRand() *rand.Rand {
	rm.rngMu.Lock()
	defer rm.rngMu.Unlock()
	return rand.New(rand.NewSource(rm.rng.Int63()))
}

// finish stores the result of a round that just ended.
func (rm *RoundManager) finish(mr *managedRound) {
	rm.Lock()
	if !mr.endedAt.IsZero() {
		rm.Unlock()
		return
	}
	mr.endedAt = time.Now()
	rm.Unlock()

	s := mr.round.Snapshot()
	rm.logger.Info(fmt.Sprintf("round %s %s after %d steps", mr.id, s.Status, s.Steps))

	result := &dmn.RoundResult{
		ID:             mr.id,
		UserID:         mr.playerID,
		Difficulty:     mr.difficulty.Name,
		Character:      mr.character.ID,
		Status:         s.Status.String(),
		Steps:          s.Steps,
		ElapsedSeconds: s.ElapsedSeconds,
		QuizzesSolved:  len(s.SolvedQuizzes),
		FinishedAt:     mr.endedAt,
	}

	if rm.results != nil {
		if err := rm.results.Save(result); err != nil {
			rm.logger.Error(fmt.Sprintf("saving result of round %s: %s", mr.id, err))
		}
	}

	if rm.users != nil {
		rm.recordStats(result)
	}

	if rm.leaderboard != nil && s.Status == game.StatusWon {
		ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
		defer cancel()
		if err := rm.leaderboard.Submit(ctx, mr.difficulty.Name, mr.username, s.ElapsedSeconds, s.Steps); err != nil {
			rm.logger.Warning(fmt.Sprintf("leaderboard submission for round %s failed: %s", mr.id, err))
		}
	}
}

// recordStats folds a finished round into the player's profile.
func (rm *RoundManager) recordStats(result *dmn.RoundResult) {
	user, err := rm.users.ByID(result.UserID)
	if err != nil {
		rm.logger.Warning(fmt.Sprintf("loading player %s for stats: %s", result.UserID, err))
		return
	}

	if user.RecordRound(result) {
		rm.logger.Info(fmt.Sprintf("%s set a personal best on %s", user.Username, result.Difficulty))
	}
	if err := rm.users.Save(user); err != nil {
		rm.logger.Error(fmt.Sprintf("saving stats of player %s: %s", result.UserID, err))
	}
}

// tick advances every round's clock and forgets rounds past retention.
func (rm *RoundManager) tick(now time.Time) {
	rm.Lock()
	defer rm.Unlock()

	for playerID, mr := range rm.rounds {
		if !mr.endedAt.IsZero() && now.Sub(mr.endedAt) > rm.retention {
			delete(rm.rounds, playerID)
			continue
		}
		mr.round.Tick()
	}
}

func (mr *managedRound) view() dmn.RoundView {
	return dmn.RoundView{
		ID:         mr.id,
		Difficulty: mr.difficulty.Name,
		Character:  mr.character.ID,
		Target:     mr.character.Target,
		Maze:       mr.maze,
		State:      mr.round.Snapshot(),
	}
}
