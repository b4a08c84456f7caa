package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ericogr/pokebattle/internal/constants"
)

// ListLeaderboard returns the top players by points, 10 by default.
func (h *BattleHandler) ListLeaderboard(c *gin.Context) {
	limit := limitParam(c, constants.DefaultLeaderboard, constants.MaxLeaderboardLimit)
	users, err := h.stats.GetTopPlayers(limit)
	if err != nil {
		writeError(c, err, constants.ErrFailedFetchLeaderboard)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *BattleHandler) GetPlayerStats(c *gin.Context) {
	name := strings.TrimSpace(c.Param(constants.ParamPlayerName))
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	u, err := h.stats.GetStatsByUsername(name)
	if err != nil {
		writeError(c, err, constants.ErrFailedFetchStats)
		return
	}
	c.JSON(http.StatusOK, u)
}

// ListSpecies returns the species players can pick.
func (h *BattleHandler) ListSpecies(c *gin.Context) {
	c.JSON(http.StatusOK, h.dex.AllSpecies())
}
