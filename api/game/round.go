package gameapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/beka-birhanu/vinom-maze/api/identity"
	"github.com/beka-birhanu/vinom-maze/config"
	"github.com/beka-birhanu/vinom-maze/game"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/service"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/gin-gonic/gin"
)

var (
	ErrUnknownDirection = errors.New("unknown direction")
)

// RoundController serves a player's maze round.
type RoundController struct {
	rounds i.RoundManager
}

// NewRoundController initializes a RoundController.
func NewRoundController(rm i.RoundManager) (*RoundController, error) {
	if rm == nil {
		return nil, errors.New("round controller requires a round manager")
	}
	return &RoundController{rounds: rm}, nil
}

// RegisterPublic registers public routes.
func (rc *RoundController) RegisterPublic(route *gin.RouterGroup) {}

// RegisterProtected registers protected routes.
func (rc *RoundController) RegisterProtected(route *gin.RouterGroup) {
	rounds := route.Group("/rounds")
	{
		rounds.POST("", rc.newRound)
		rounds.GET("/current", rc.current)
		rounds.POST("/current/moves", rc.move)
		rounds.POST("/current/quiz", rc.answerQuiz)
		rounds.POST("/current/reset", rc.reset)
	}
	route.GET("/results", rc.results)
}

func (rc *RoundController) newRound(ctx *gin.Context) {
	playerID, username, ok := identity.Player(ctx)
	if !ok {
		ctx.Status(http.StatusUnauthorized)
		return
	}

	var request NewRoundRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, err := rc.rounds.NewRound(ctx.Request.Context(), playerID, username, request.Difficulty, request.Character)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, newRoundResponse(view))
}

func (rc *RoundController) current(ctx *gin.Context) {
	playerID, _, ok := identity.Player(ctx)
	if !ok {
		ctx.Status(http.StatusUnauthorized)
		return
	}

	view, err := rc.rounds.Current(playerID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newRoundResponse(view))
}

func (rc *RoundController) move(ctx *gin.Context) {
	playerID, _, ok := identity.Player(ctx)
	if !ok {
		ctx.Status(http.StatusUnauthorized)
		return
	}

	var request MoveRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	d, ok := maze.ParseDirection(request.Direction)
	if !ok {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": ErrUnknownDirection.Error()})
		return
	}

	res, err := rc.rounds.Move(ctx.Request.Context(), playerID, d)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newMoveResponse(res))
}

func (rc *RoundController) answerQuiz(ctx *gin.Context) {
	playerID, _, ok := identity.Player(ctx)
	if !ok {
		ctx.Status(http.StatusUnauthorized)
		return
	}

	var request QuizAnswerRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := rc.rounds.AnswerQuiz(ctx.Request.Context(), playerID, *request.Option)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, QuizAnswerResponse{
		Correct: res.Correct,
		Round:   newRoundResponse(&res.Round),
	})
}

func (rc *RoundController) reset(ctx *gin.Context) {
	playerID, _, ok := identity.Player(ctx)
	if !ok {
		ctx.Status(http.StatusUnauthorized)
		return
	}

	view, err := rc.rounds.Reset(ctx.Request.Context(), playerID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newRoundResponse(view))
}

func (rc *RoundController) results(ctx *gin.Context) {
	playerID, _, ok := identity.Player(ctx)
	if !ok {
		ctx.Status(http.StatusUnauthorized)
		return
	}

	var limit int64
	if raw := ctx.Query("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = parsed
	}

	results, err := rc.rounds.Results(playerID, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}

	response := make([]ResultResponse, 0, len(results))
	for _, r := range results {
		response = append(response, newResultResponse(r))
	}
	ctx.JSON(http.StatusOK, response)
}

// respondError maps service errors to status codes.
func respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNoRound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, config.ErrUnknownDifficulty),
		errors.Is(err, config.ErrUnknownCharacter),
		errors.Is(err, game.ErrNoActiveQuiz),
		errors.Is(err, game.ErrInvalidOption):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
