package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"statvalue-backend/internal/model"
	"statvalue-backend/internal/stats"
	"statvalue-backend/internal/store"
)

// searchPerPosition caps search hits per position table.
const searchPerPosition = 10

// historyMinYear cuts market-value history off below this year; earlier
// seasons exist in the wide dataset but are too sparse to chart.
const historyMinYear = 2018

// GetPlayersByPosition lists a position's full roster (identity and usage
// fields only).
func GetPlayersByPosition(c *gin.Context) {
	pos := model.Position(strings.ToLower(c.Param("position")))
	if !pos.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid position: " + c.Param("position"),
		})
		return
	}

	roster, err := store.PlayersByPosition(pos)
	if err != nil {
		abortWithError(c, err)
		return
	}

	players := make([]model.PlayerSummary, len(roster))
	for i := range roster {
		players[i] = roster[i].Summary()
	}
	c.JSON(http.StatusOK, gin.H{
		"players": players,
	})
}

// GetPlayerByID returns one full record, stats included. Search results carry
// the id for this lookup.
func GetPlayerByID(c *gin.Context) {
	pos := model.Position(strings.ToLower(c.Param("position")))
	if !pos.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid position: " + c.Param("position"),
		})
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid player id: " + c.Param("id"),
		})
		return
	}

	rec, err := store.PlayerByID(pos, id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	statsMap, err := stats.StatsMap(rec, pos)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"player": rec.Summary(),
		"stats":  statsMap,
	})
}

// SearchPlayers finds players by name fragment across all four positions.
func SearchPlayers(c *gin.Context) {
	query := strings.TrimSpace(c.Query("query"))
	if len(query) < 2 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "query must be at least 2 characters",
		})
		return
	}

	results, err := store.SearchPlayers(query, searchPerPosition)
	if err != nil {
		abortWithError(c, err)
		return
	}
	if results == nil {
		results = []model.SearchResult{}
	}
	c.JSON(http.StatusOK, gin.H{
		"results": results,
	})
}

// GetPlayerHistory returns a player's market-value history from 2018 onward.
func GetPlayerHistory(c *gin.Context) {
	name := c.Param("player_name")
	history, err := store.ValueHistory(name, historyMinYear)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}
