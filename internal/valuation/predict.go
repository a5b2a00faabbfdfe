package valuation

import (
	"fmt"
	"math"

	"statvalue-backend/internal/model"
)

// peakAge anchors the age-derived features; market value tends to crest
// around it.
const peakAge = 27

// Career phase buckets by age.
const (
	phaseRising      = 1
	phaseDevelopment = 2
	phasePeak        = 3
)

func careerPhaseValue(age int) float64 {
	switch {
	case age <= 21:
		return phaseRising
	case age <= 25:
		return phaseDevelopment
	case age <= 29:
		return phasePeak
	case age <= 33:
		return phaseDevelopment // "Experienced" shares the development weight
	default:
		return phaseRising // "Veteran" bottoms out
	}
}

// Predict produces a market-value estimate for one player in targetYear.
//
// When a stored row for targetYear exists at or before the last known year,
// the stored value is returned verbatim with confidence "High (Actual Data)";
// no model runs. Otherwise the player's most recent lookback-length window is
// fed through the sequence model with the final timestep's year-dependent
// features projected to targetYear, followed by the age adjustment and the
// distance-based confidence decay.
func (c *Context) Predict(playerName string, targetYear int) (*model.PredictionResult, error) {
	artifact, dataset, err := c.ensureLoaded()
	if err != nil {
		return nil, err
	}

	rows := dataset.PlayerRows(playerName)
	if len(rows) == 0 {
		return nil, fmt.Errorf("%q: %w", playerName, model.ErrPlayerNotFound)
	}
	if len(rows) < artifact.Lookback {
		return nil, fmt.Errorf("%q has %d years, need %d: %w",
			playerName, len(rows), artifact.Lookback, model.ErrInsufficientHistory)
	}

	window := rows[len(rows)-artifact.Lookback:]
	last := window[len(window)-1]
	lastKnownYear := last.Year
	lastKnownMV := last.MV
	lastKnownAge := last.Age

	if lastKnownYear >= targetYear {
		for _, r := range rows {
			if r.Year == targetYear {
				// Stored data wins over any model output.
				return &model.PredictionResult{
					PlayerName:      playerName,
					Year:            targetYear,
					PredictedValue:  r.MV,
					CurrentValue:    lastKnownMV,
					ConfidenceLevel: "High (Actual Data)",
					LastKnownAge:    r.Age,
					ProjectedAge:    r.Age,
				}, nil
			}
		}
		return nil, fmt.Errorf("%q in %d: %w", playerName, targetYear, model.ErrNoDataForYear)
	}

	yearsForward := targetYear - lastKnownYear
	projectedAge := lastKnownAge + yearsForward

	input := make([][]float64, artifact.Lookback)
	for i, r := range window {
		input[i] = featureVector(r.Features, artifact.Features)
	}
	projectFinalTimestep(input[len(input)-1], artifact.Features, targetYear, projectedAge)

	scaled := make([][]float64, len(input))
	for i, x := range input {
		scaled[i] = artifact.FeatureScaler.Transform(x)
	}
	predicted := artifact.TargetScaler.Inverse(artifact.Forward(scaled))

	if projectedAge > 30 {
		factor := math.Max(0.5, 1-0.05*float64(projectedAge-30))
		predicted *= factor
	}

	confidence := baseConfidence - math.Min(maxConfidencePenalty, confidencePenaltyPerYear*float64(yearsForward))
	var label string
	switch {
	case confidence > 0.8:
		label = "High"
	case confidence > 0.6:
		label = "Medium"
	default:
		label = "Low"
	}

	return &model.PredictionResult{
		PlayerName:      playerName,
		Year:            targetYear,
		PredictedValue:  round2(predicted),
		CurrentValue:    round2(lastKnownMV),
		ConfidenceLevel: fmt.Sprintf("%s (%d%%)", label, int(math.Round(confidence*100))),
		YearsForward:    yearsForward,
		LastKnownYear:   lastKnownYear,
		LastKnownAge:    lastKnownAge,
		ProjectedAge:    projectedAge,
	}, nil
}

// Confidence decays linearly with projection distance.
const (
	baseConfidence           = 0.9
	confidencePenaltyPerYear = 0.05
	maxConfidencePenalty     = 0.4
)

func featureVector(features map[string]float64, order []string) []float64 {
	vec := make([]float64, len(order))
	for i, name := range order {
		vec[i] = features[name]
	}
	return vec
}

// projectFinalTimestep rewrites the year-dependent entries of the window's
// last timestep so the model sees the trend carried into the target year.
func projectFinalTimestep(vec []float64, order []string, targetYear, projectedAge int) {
	age := float64(projectedAge)
	projected := map[string]float64{
		"Year":             float64(targetYear),
		"Age":              age,
		"Age_squared":      age * age,
		"Years_from_peak":  math.Abs(age - peakAge),
		"PeakAgeFactor":    1 - math.Abs(age-peakAge)/15,
		"CareerPhaseValue": careerPhaseValue(projectedAge),
	}
	for i, name := range order {
		if v, ok := projected[name]; ok {
			vec[i] = v
		}
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
