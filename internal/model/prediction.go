package model

// PredictRequest asks for a market-value projection for one player.
type PredictRequest struct {
	PlayerName string `json:"playerName" binding:"required"`
	Year       int    `json:"year" binding:"required"`
}

// PredictionResult is the market-value projection for a single target year.
// Computed per request, never persisted.
type PredictionResult struct {
	PlayerName      string  `json:"playerName"`
	Year            int     `json:"year"`
	PredictedValue  float64 `json:"predictedValue"`
	CurrentValue    float64 `json:"currentValue"`
	ConfidenceLevel string  `json:"confidenceLevel"`
	YearsForward    int     `json:"yearsForward,omitempty"`
	LastKnownYear   int     `json:"lastKnownYear,omitempty"`
	LastKnownAge    int     `json:"lastKnownAge,omitempty"`
	ProjectedAge    int     `json:"projectedAge,omitempty"`
}

// CompareRequest asks for raw and normalized stats for 2+ players of one position.
type CompareRequest struct {
	Position string   `json:"position" binding:"required"`
	Players  []string `json:"players" binding:"required"`
}

// ComparisonEntry is one player's slice of a comparison response.
type ComparisonEntry struct {
	Player          PlayerSummary      `json:"player"`
	Stats           map[string]float64 `json:"stats"`
	NormalizedStats map[string]float64 `json:"normalizedStats"`
}

// SimilarRequest asks for the nearest same-position neighbours of one player.
type SimilarRequest struct {
	Player   string `json:"player" binding:"required"`
	Position string `json:"position" binding:"required"`
}

// SimilarityResult is one neighbour in a similarity response, ordered by
// ascending distance.
type SimilarityResult struct {
	Name     string             `json:"name"`
	Stats    map[string]float64 `json:"stats"`
	Distance float64            `json:"distance"`
}

// RadarRequest asks for a pairwise-normalized radar comparison of two players.
type RadarRequest struct {
	Position string   `json:"position" binding:"required"`
	Players  []string `json:"players" binding:"required"`
}

// RadarProfile maps semantic comparison axes to values. Axis names are
// human-facing categories, distinct from raw stored stat names.
type RadarProfile map[string]float64
