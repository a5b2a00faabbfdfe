package stats

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"statvalue-backend/internal/model"
)

// DefaultNeighbours is the similarity result cutoff.
const DefaultNeighbours = 5

// FindSimilar ranks every other player of the roster by Euclidean distance to
// the named reference player and returns the k closest. The distance runs over
// raw stat units with no per-feature weighting or scaling, so counts and
// percentages mix directly; that mirrors the historical behaviour and is a
// documented limitation, not something to auto-correct here.
//
// Records whose name matches the reference case-insensitively are excluded
// from the result set, so a duplicate-name row never shows up as its own
// neighbour. Ties keep roster order (stable sort). Results are recomputed on
// every call; nothing is cached.
func FindSimilar(roster []model.PlayerRecord, referenceName string, pos model.Position, k int) ([]model.SimilarityResult, error) {
	defs, err := Schema(pos)
	if err != nil {
		return nil, err
	}
	if k <= 0 {
		k = DefaultNeighbours
	}

	var ref *model.PlayerRecord
	for i := range roster {
		if strings.EqualFold(roster[i].Name, referenceName) {
			ref = &roster[i]
			break
		}
	}
	if ref == nil {
		return nil, fmt.Errorf("%q in %ss: %w", referenceName, pos, model.ErrPlayerNotFound)
	}

	refVec, err := Extract(ref, pos)
	if err != nil {
		return nil, err
	}

	results := make([]model.SimilarityResult, 0, len(roster))
	for i := range roster {
		cand := &roster[i]
		if strings.EqualFold(cand.Name, referenceName) {
			continue
		}
		candVec, err := Extract(cand, pos)
		if err != nil {
			return nil, err
		}
		results = append(results, model.SimilarityResult{
			Name:     cand.Name,
			Stats:    statsFromVector(defs, candVec),
			Distance: euclidean(refVec, candVec),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Distance < results[j].Distance
	})
	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

func euclidean(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

func statsFromVector(defs []StatDef, vec []float64) map[string]float64 {
	m := make(map[string]float64, len(defs))
	for i, d := range defs {
		m[d.Name] = vec[i]
	}
	return m
}
