package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"statvalue-backend/internal/model"
	"statvalue-backend/internal/valuation"
)

var predictionCtx *valuation.Context

// SetPredictionContext wires the lazily-loaded projection context in at
// startup.
func SetPredictionContext(ctx *valuation.Context) {
	predictionCtx = ctx
}

// Predict projects a player's market value for a target year.
func Predict(c *gin.Context) {
	var req model.PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid request: " + err.Error(),
		})
		return
	}

	maxYear := time.Now().Year() + 5
	if req.Year < 2000 || req.Year > maxYear {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("year must be between 2000 and %d", maxYear),
		})
		return
	}

	if predictionCtx == nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": model.ErrModelUnavailable.Error(),
		})
		return
	}

	result, err := predictionCtx.Predict(req.PlayerName, req.Year)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
