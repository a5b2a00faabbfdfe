package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"statvalue-backend/internal/model"
	"statvalue-backend/internal/stats"
	"statvalue-backend/internal/store"
)

// ComparePlayers returns raw and normalized stats for two or more players of
// one position. Normalization is max-scaling across exactly the supplied
// players.
func ComparePlayers(c *gin.Context) {
	var req model.CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid request: " + err.Error(),
		})
		return
	}
	pos := model.Position(strings.ToLower(req.Position))
	if !pos.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid position: " + req.Position,
		})
		return
	}
	if len(req.Players) < 2 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "select at least two players to compare",
		})
		return
	}

	records := make([]model.PlayerRecord, 0, len(req.Players))
	for _, name := range req.Players {
		rec, err := store.PlayerByName(pos, name)
		if err != nil {
			abortWithError(c, err)
			return
		}
		records = append(records, *rec)
	}

	normalized, err := stats.Normalize(records, pos)
	if err != nil {
		abortWithError(c, err)
		return
	}

	entries := make([]model.ComparisonEntry, len(records))
	for i := range records {
		raw, err := stats.StatsMap(&records[i], pos)
		if err != nil {
			abortWithError(c, err)
			return
		}
		entries[i] = model.ComparisonEntry{
			Player:          records[i].Summary(),
			Stats:           raw,
			NormalizedStats: normalized[i],
		}
	}
	c.JSON(http.StatusOK, entries)
}

// SimilarPlayers returns the five nearest same-position neighbours of the
// named player by raw-stat Euclidean distance.
func SimilarPlayers(c *gin.Context) {
	var req model.SimilarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid request: " + err.Error(),
		})
		return
	}
	pos := model.Position(strings.ToLower(req.Position))
	if !pos.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid position: " + req.Position,
		})
		return
	}

	roster, err := store.PlayersByPosition(pos)
	if err != nil {
		abortWithError(c, err)
		return
	}

	similar, err := stats.FindSimilar(roster, req.Player, pos, stats.DefaultNeighbours)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"similar_players": similar,
	})
}

// RadarCompare projects two players onto the position's semantic radar axes
// and normalizes the pair against each other only.
func RadarCompare(c *gin.Context) {
	var req model.RadarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid request: " + err.Error(),
		})
		return
	}
	pos := model.Position(strings.ToLower(req.Position))
	if !pos.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid position: " + req.Position,
		})
		return
	}
	if len(req.Players) != 2 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "radar comparison takes exactly two players",
		})
		return
	}

	profiles := make([]model.RadarProfile, 2)
	for i, name := range req.Players {
		rec, err := store.PlayerByName(pos, name)
		if err != nil {
			abortWithError(c, err)
			return
		}
		profile, err := stats.ProjectRadar(rec, pos)
		if err != nil {
			abortWithError(c, err)
			return
		}
		profiles[i] = profile
	}

	normA, normB := stats.NormalizeRadar(profiles[0], profiles[1])
	c.JSON(http.StatusOK, gin.H{
		"players": []gin.H{
			{"name": req.Players[0], "raw": profiles[0], "normalized": normA},
			{"name": req.Players[1], "raw": profiles[1], "normalized": normB},
		},
	})
}
