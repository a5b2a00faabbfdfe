package stats

import (
	"statvalue-backend/internal/model"
)

// Normalize rescales each stat independently onto 0-100 across the supplied
// players: per stat, the roster maximum maps to 100 and everything else scales
// proportionally. A max of 0 (or below) falls back to 1, so an all-zero column
// normalizes to 0 for everyone instead of NaN.
//
// This is max-scaling, not min-max: one outlier compresses the rest toward 0,
// and values are not clamped. Known limitation, kept intentionally.
func Normalize(players []model.PlayerRecord, pos model.Position) ([]map[string]float64, error) {
	defs, err := Schema(pos)
	if err != nil {
		return nil, err
	}

	out := make([]map[string]float64, len(players))
	for i := range out {
		out[i] = make(map[string]float64, len(defs))
	}

	for _, d := range defs {
		maxValue := 0.0
		for i := range players {
			if v := d.Value(&players[i]); v > maxValue {
				maxValue = v
			}
		}
		if maxValue <= 0 {
			maxValue = 1
		}
		for i := range players {
			out[i][d.Name] = d.Value(&players[i]) / maxValue * 100
		}
	}
	return out, nil
}
