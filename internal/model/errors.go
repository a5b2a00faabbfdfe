package model

import "errors"

// Domain errors. Handlers translate these to HTTP statuses; everything else
// surfaces as an internal error.
var (
	// ErrUnknownPosition reports a position outside the four recognized keys.
	ErrUnknownPosition = errors.New("unknown position")

	// ErrPlayerNotFound reports a player name or id with no stored record.
	ErrPlayerNotFound = errors.New("player not found")

	// ErrInsufficientHistory reports too few yearly rows to feed the
	// projection model's lookback window.
	ErrInsufficientHistory = errors.New("insufficient historical data")

	// ErrNoDataForYear reports a requested historical year with no stored row
	// even though more recent data exists.
	ErrNoDataForYear = errors.New("no data for requested year")

	// ErrModelUnavailable reports that the prediction artifacts failed to load.
	ErrModelUnavailable = errors.New("prediction model unavailable")
)
