package gameapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/beka-birhanu/vinom-maze/api/identity"
	"github.com/beka-birhanu/vinom-maze/config"
	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/game"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPlayer = uuid.MustParse("5b0c6a52-3c57-4a3c-9d4f-0d3e0c1f2a11")

type fakeRoundManager struct {
	view       *dmn.RoundView
	moves      []maze.Direction
	answers    []int
	difficulty string
	err        error
}

func (f *fakeRoundManager) NewRound(_ context.Context, playerID uuid.UUID, username, difficulty, character string) (*dmn.RoundView, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.difficulty = difficulty
	return f.view, nil
}

func (f *fakeRoundManager) Current(uuid.UUID) (*dmn.RoundView, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.view, nil
}

func (f *fakeRoundManager) Move(_ context.Context, _ uuid.UUID, d maze.Direction) (*dmn.MoveResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.moves = append(f.moves, d)
	return &dmn.MoveResult{
		Round: *f.view,
		Outcome: game.Outcome{
			Kind:      game.OutcomeRejected,
			Rejection: game.ErrWalled,
		},
	}, nil
}

func (f *fakeRoundManager) AnswerQuiz(_ context.Context, _ uuid.UUID, option int) (*dmn.QuizResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.answers = append(f.answers, option)
	return &dmn.QuizResult{Round: *f.view, Correct: option == 1}, nil
}

func (f *fakeRoundManager) Reset(context.Context, uuid.UUID) (*dmn.RoundView, error) {
	return f.view, f.err
}

func (f *fakeRoundManager) Results(uuid.UUID, int64) ([]*dmn.RoundResult, error) {
	return []*dmn.RoundResult{{ID: uuid.New(), Difficulty: "easy", Status: "won", Steps: 12}}, f.err
}

func testView(t *testing.T) *dmn.RoundView {
	t.Helper()
	m, err := maze.Blank(2, 3)
	require.NoError(t, err)
	require.NoError(t, m.Carve(maze.CellPosition{Row: 0, Col: 0}, maze.East))

	return &dmn.RoundView{
		ID:         uuid.New(),
		Difficulty: "easy",
		Character:  "doha",
		Target:     "베베핀",
		Maze:       m,
		State: game.Snapshot{
			Status: game.StatusPlaying,
			Player: maze.CellPosition{Row: 0, Col: 1},
			Steps:  1,
			Quiz: &game.OpenQuiz{
				Cell:     maze.CellPosition{Row: 0, Col: 1},
				Question: game.Question{Prompt: "1 + 1 = ?", Options: []string{"3", "2", "1"}, Answer: 1},
			},
		},
	}
}

func newTestEngine(t *testing.T, rm *fakeRoundManager) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rc, err := NewRoundController(rm)
	require.NoError(t, err)

	engine := gin.New()
	group := engine.Group("/api/v1")
	group.Use(func(c *gin.Context) {
		c.Set(identity.ContextUserClaims, map[string]interface{}{
			service.ClaimUserID:   testPlayer.String(),
			service.ClaimUsername: "doha_dad",
		})
		c.Next()
	})
	rc.RegisterProtected(group)
	return engine
}

func doJSON(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestNewRoundEndpoint(t *testing.T) {
	rm := &fakeRoundManager{view: testView(t)}
	engine := newTestEngine(t, rm)

	w := doJSON(t, engine, http.MethodPost, "/api/v1/rounds", NewRoundRequest{Difficulty: "easy", Character: "doha"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "easy", rm.difficulty)

	var resp RoundResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "playing", resp.Status)
	assert.Equal(t, 2, resp.Maze.Rows)
	assert.Equal(t, 3, resp.Maze.Cols)
	assert.False(t, resp.Maze.Cells[0][0].Right)
	assert.False(t, resp.Maze.Cells[0][1].Left)
	assert.True(t, resp.Maze.Cells[0][1].Right)
	assert.Nil(t, resp.Pursuer)
	require.NotNil(t, resp.Quiz)
	assert.Equal(t, []string{"3", "2", "1"}, resp.Quiz.Options)
	assert.NotContains(t, w.Body.String(), "answer")
	assert.NotContains(t, w.Body.String(), "SolutionPath")
}

func TestNewRoundValidation(t *testing.T) {
	engine := newTestEngine(t, &fakeRoundManager{err: config.ErrUnknownDifficulty})

	w := doJSON(t, engine, http.MethodPost, "/api/v1/rounds", gin.H{"character": "doha"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, engine, http.MethodPost, "/api/v1/rounds", NewRoundRequest{Difficulty: "nightmare", Character: "doha"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMoveEndpoint(t *testing.T) {
	rm := &fakeRoundManager{view: testView(t)}
	engine := newTestEngine(t, rm)

	w := doJSON(t, engine, http.MethodPost, "/api/v1/rounds/current/moves", MoveRequest{Direction: "up"})
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, rm.moves, 1)
	assert.Equal(t, maze.North, rm.moves[0])

	var resp MoveResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "rejected", resp.Outcome)
	assert.Equal(t, game.ErrWalled.Error(), resp.Reason)

	w = doJSON(t, engine, http.MethodPost, "/api/v1/rounds/current/moves", MoveRequest{Direction: "sideways"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Len(t, rm.moves, 1)
}

func TestQuizEndpoint(t *testing.T) {
	rm := &fakeRoundManager{view: testView(t)}
	engine := newTestEngine(t, rm)

	w := doJSON(t, engine, http.MethodPost, "/api/v1/rounds/current/quiz", gin.H{"option": 0})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []int{0}, rm.answers)

	var resp QuizAnswerResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Correct)

	w = doJSON(t, engine, http.MethodPost, "/api/v1/rounds/current/quiz", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNoRoundIsNotFound(t *testing.T) {
	engine := newTestEngine(t, &fakeRoundManager{err: service.ErrNoRound})

	w := doJSON(t, engine, http.MethodGet, "/api/v1/rounds/current", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, engine, http.MethodPost, "/api/v1/rounds/current/moves", MoveRequest{Direction: "left"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestResultsEndpoint(t *testing.T) {
	engine := newTestEngine(t, &fakeRoundManager{view: testView(t)})

	w := doJSON(t, engine, http.MethodGet, "/api/v1/results?limit=5", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp []ResultResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "won", resp[0].Status)

	w = doJSON(t, engine, http.MethodGet, "/api/v1/results?limit=abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
