package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"statvalue-backend/internal/model"
	"statvalue-backend/internal/store"
)

// statusFor maps domain errors to HTTP statuses. Anything unrecognized is an
// internal error; the message still surfaces in the JSON body.
func statusFor(err error) int {
	switch {
	case errors.Is(err, model.ErrPlayerNotFound), errors.Is(err, store.ErrNoHistory):
		return http.StatusNotFound
	case errors.Is(err, model.ErrUnknownPosition),
		errors.Is(err, model.ErrInsufficientHistory),
		errors.Is(err, model.ErrNoDataForYear):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrModelUnavailable):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{
		"error": err.Error(),
	})
}
