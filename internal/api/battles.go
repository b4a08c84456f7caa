package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ericogr/pokebattle/internal/battle"
	"github.com/ericogr/pokebattle/internal/constants"
	"github.com/ericogr/pokebattle/internal/service"
)

// CreateBattle starts a new battle and returns its initial snapshot.
func (h *BattleHandler) CreateBattle(c *gin.Context) {
	var req service.CreateBattleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	for i := range req.Players {
		req.Players[i] = strings.TrimSpace(req.Players[i])
	}
	snap, err := h.battles.CreateBattle(c.Request.Context(), req)
	if err != nil {
		writeError(c, err, constants.ErrFailedCreateBattle)
		return
	}
	c.JSON(http.StatusCreated, snap)
}

// GetBattle returns the battle snapshot, or only the events after ?since=N.
func (h *BattleHandler) GetBattle(c *gin.Context) {
	id, ok := battleID(c)
	if !ok {
		return
	}
	if _, present := c.GetQuery(constants.QueryEventsSince); present {
		since, ok := sinceParam(c)
		if !ok {
			return
		}
		events, next, err := h.battles.Events(c.Request.Context(), id, since)
		if err != nil {
			writeError(c, err, constants.ErrFailedLoadBattle)
			return
		}
		c.JSON(http.StatusOK, gin.H{constants.JSONKeyEvents: events, constants.JSONKeyNext: next})
		return
	}
	snap, err := h.battles.Snapshot(c.Request.Context(), id)
	if err != nil {
		writeError(c, err, constants.ErrFailedLoadBattle)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// SubmitAction hands a player's action to the battle.
func (h *BattleHandler) SubmitAction(c *gin.Context) {
	id, ok := battleID(c)
	if !ok {
		return
	}
	var action battle.PlayerActionEvent
	if err := c.ShouldBindJSON(&action); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			constants.JSONKeyError:   constants.ErrInvalidRequest,
			constants.JSONKeyDetails: err.Error(),
		})
		return
	}
	res, err := h.battles.SubmitAction(c.Request.Context(), id, action)
	if err != nil {
		writeError(c, err, constants.ErrFailedStoreAction)
		return
	}
	c.JSON(http.StatusOK, res)
}
