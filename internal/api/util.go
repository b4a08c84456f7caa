package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ericogr/pokebattle/internal/constants"
)

const maxBattleIDLength = 64

// battleID reads the path parameter and answers 400 when it is unusable.
func battleID(c *gin.Context) (string, bool) {
	id := strings.TrimSpace(c.Param(constants.ParamBattleID))
	if id == "" || len(id) > maxBattleIDLength {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidBattleID})
		return "", false
	}
	return id, true
}

// sinceParam parses ?since=N. Missing means 0.
func sinceParam(c *gin.Context) (int, bool) {
	s := c.Query(constants.QueryEventsSince)
	if s == "" {
		return 0, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidSince})
		return 0, false
	}
	return n, true
}

// limitParam parses ?limit=N, falling back to def outside 1..upper.
func limitParam(c *gin.Context, def, upper int) int {
	if s := c.Query(constants.QueryLimit); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= upper {
			return n
		}
	}
	return def
}
