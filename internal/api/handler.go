package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/ericogr/pokebattle/internal/battle"
	"github.com/ericogr/pokebattle/internal/constants"
	"github.com/ericogr/pokebattle/internal/dex"
	"github.com/ericogr/pokebattle/internal/engine"
	"github.com/ericogr/pokebattle/internal/logging"
	"github.com/ericogr/pokebattle/internal/service"
	"github.com/ericogr/pokebattle/internal/storage"
)

const defaultPollInterval = 250 * time.Millisecond

// BattleService is the hub as seen by the handlers.
type BattleService interface {
	CreateBattle(ctx context.Context, req service.CreateBattleRequest) (battle.BattleData, error)
	Snapshot(ctx context.Context, id string) (battle.BattleData, error)
	Events(ctx context.Context, id string, since int) (battle.Events, int, error)
	SubmitAction(ctx context.Context, id string, action battle.PlayerActionEvent) (service.SubmitResult, error)
}

// StatsRepo serves the leaderboard and profiles.
type StatsRepo interface {
	GetTopPlayers(limit int) ([]storage.User, error)
	GetStatsByUsername(name string) (*storage.User, error)
}

// BattleHandler groups all battle-related HTTP handlers.
type BattleHandler struct {
	battles      BattleService
	stats        StatsRepo
	dex          *dex.Dex
	upgrader     websocket.Upgrader
	pollInterval time.Duration
}

// NewBattleHandler creates a handler. pollInterval is how often event
// streams look for new events; zero uses a default.
func NewBattleHandler(battles BattleService, stats StatsRepo, d *dex.Dex, pollInterval time.Duration) *BattleHandler {
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}
	return &BattleHandler{
		battles: battles,
		stats:   stats,
		dex:     d,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		pollInterval: pollInterval,
	}
}

// RegisterRoutes mounts every endpoint on router.
func RegisterRoutes(router *gin.Engine, h *BattleHandler) {
	router.GET(constants.RouteHealth, Health)

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		apiRoutes.GET(constants.RouteVersion, Version)
		apiRoutes.GET(constants.RouteDexSpecies, h.ListSpecies)
		apiRoutes.GET(constants.RouteLeaderboard, h.ListLeaderboard)
		apiRoutes.GET(constants.RoutePlayerStats, h.GetPlayerStats)

		apiRoutes.POST(constants.RouteBattles, h.CreateBattle)
		apiRoutes.GET(constants.RouteBattleByID, h.GetBattle)
		apiRoutes.POST(constants.RouteBattleActions, h.SubmitAction)
		apiRoutes.GET(constants.RouteBattleStream, h.StreamEvents)
	}
}

// writeError maps service and battle errors to HTTP responses.
func writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrUnknownBattle):
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
	case errors.Is(err, battle.ErrInvalidAction),
		errors.Is(err, battle.ErrUnknownPlayer),
		errors.Is(err, service.ErrInvalidPlayers),
		errors.Is(err, engine.ErrUnknownSpecies),
		errors.Is(err, engine.ErrUnknownMove),
		errors.Is(err, engine.ErrInvalidPokemonIndex),
		errors.Is(err, engine.ErrInvalidTeam):
		c.JSON(http.StatusBadRequest, gin.H{
			constants.JSONKeyError:   constants.ErrInvalidAction,
			constants.JSONKeyDetails: err.Error(),
		})
	default:
		logging.Error(fallback, err, logging.Fields{constants.LogFieldBattleID: c.Param(constants.ParamBattleID)})
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: fallback})
	}
}
