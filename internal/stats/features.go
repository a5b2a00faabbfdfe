package stats

import (
	"statvalue-backend/internal/model"
)

// Extract projects a record onto the position's fixed-order feature vector.
// Stats that were NULL in storage already read as 0 from the record.
func Extract(r *model.PlayerRecord, pos model.Position) ([]float64, error) {
	defs, err := Schema(pos)
	if err != nil {
		return nil, err
	}
	vec := make([]float64, len(defs))
	for i, d := range defs {
		vec[i] = d.Value(r)
	}
	return vec, nil
}

// StatsMap returns the position's stats keyed by stat name, for JSON output.
func StatsMap(r *model.PlayerRecord, pos model.Position) (map[string]float64, error) {
	defs, err := Schema(pos)
	if err != nil {
		return nil, err
	}
	m := make(map[string]float64, len(defs))
	for _, d := range defs {
		m[d.Name] = d.Value(r)
	}
	return m, nil
}
