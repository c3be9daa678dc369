package gameapi

import (
	"errors"
	"net/http"

	"github.com/beka-birhanu/vinom-maze/config"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/gin-gonic/gin"
)

// LeaderboardController serves the best runs of each difficulty.
type LeaderboardController struct {
	leaderboard i.Leaderboard
}

// NewLeaderboardController initializes a LeaderboardController.
func NewLeaderboardController(lb i.Leaderboard) (*LeaderboardController, error) {
	if lb == nil {
		return nil, errors.New("leaderboard controller requires a leaderboard")
	}
	return &LeaderboardController{leaderboard: lb}, nil
}

// RegisterPublic registers public routes.
func (lc *LeaderboardController) RegisterPublic(route *gin.RouterGroup) {
	route.GET("/leaderboard/:difficulty", lc.top)
}

// RegisterProtected registers protected routes.
func (lc *LeaderboardController) RegisterProtected(route *gin.RouterGroup) {}

func (lc *LeaderboardController) top(ctx *gin.Context) {
	d, err := config.DifficultyByName(ctx.Param("difficulty"))
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	entries, err := lc.leaderboard.Top(ctx.Request.Context(), d.Name)
	if err != nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": "leaderboard unavailable"})
		return
	}

	response := make([]LeaderboardEntryResponse, 0, len(entries))
	for _, e := range entries {
		response = append(response, LeaderboardEntryResponse{
			Rank:           e.Rank,
			Username:       e.Username,
			ElapsedSeconds: e.ElapsedSeconds,
			Steps:          e.Steps,
		})
	}
	ctx.JSON(http.StatusOK, response)
}
