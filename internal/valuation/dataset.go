package valuation

import (
	"math"
	"sort"
	"strings"

	"statvalue-backend/internal/store"
)

// Club reputation tiers. Hardcoded lists inherited from the model's training
// setup; tier 1 scores 1 (strongest), unlisted clubs score 3.
var topClubsTier1 = []string{
	"PSG", "Manchester Utd", "Liverpool", "Real Madrid", "Barcelona",
	"Bayern Munich", "Arsenal", "Atlético Madrid", "Inter", "Chelsea", "Manchester City",
}

var topClubsTier2 = []string{
	"Juventus", "Tottenham", "Napoli", "Dortmund", "Atalanta", "Milan", "Athletic Club",
	"RB Leipzig", "Monaco", "Brighton", "Valencia", "Sevilla",
}

// Row is one feature-engineered year of a player's history.
type Row struct {
	Name     string
	Year     int
	MV       float64
	Age      int
	Features map[string]float64
}

// Dataset holds the engineered historical dataset, indexed by player name.
// Built once at load time; read-only afterwards.
type Dataset struct {
	byPlayer map[string][]Row // rows in year order
}

// BuildDataset runs the load-time feature engineering over the raw historical
// rows: club-reputation scoring, the combined reputation index, per-player lag
// features, age-derived features, and zero-fill for any declared feature that
// is still missing.
func BuildDataset(raw []store.ValueRow, features []string) *Dataset {
	sort.SliceStable(raw, func(i, j int) bool {
		if raw[i].Name != raw[j].Name {
			return raw[i].Name < raw[j].Name
		}
		return raw[i].Year < raw[j].Year
	})

	clubValueScore := clubQuintiles(raw)
	hasReputation := false
	for _, r := range raw {
		if r.HasReputation {
			hasReputation = true
			break
		}
	}

	ds := &Dataset{byPlayer: make(map[string][]Row)}
	for i, r := range raw {
		crBase := clubTier(r.Club)
		crValue := clubValueScore[r.Club]
		if crValue == 0 {
			crValue = 3
		}
		cr := math.Round(float64(crBase)*0.6 + float64(crValue)*0.4)

		reputation := cr
		if hasReputation {
			reputation = (cr + r.NR + r.PR) / 3
		}

		prevMV := r.MV // first year backfills with its own value
		if i > 0 && raw[i-1].Name == r.Name {
			prevMV = raw[i-1].MV
		}
		trend := r.MV - prevMV
		growthBase := prevMV
		if growthBase <= 0 {
			growthBase = 0.1
		}
		growth := r.MV/growthBase - 1

		age := float64(r.Age)
		row := Row{
			Name: r.Name,
			Year: r.Year,
			MV:   r.MV,
			Age:  r.Age,
			Features: map[string]float64{
				"MV":               r.MV,
				"Year":             float64(r.Year),
				"Age":              age,
				"Age_squared":      age * age,
				"Years_from_peak":  math.Abs(age - peakAge),
				"PeakAgeFactor":    1 - math.Abs(age-peakAge)/15,
				"CareerPhaseValue": careerPhaseValue(r.Age),
				"CR":               cr,
				"ReputationIndex":  reputation,
				"PrevYearMV":       prevMV,
				"MV_Trend":         trend,
				"MV_GrowthRate":    growth,
			},
		}
		for _, f := range features {
			if _, ok := row.Features[f]; !ok {
				row.Features[f] = 0
			}
		}
		ds.byPlayer[r.Name] = append(ds.byPlayer[r.Name], row)
	}
	return ds
}

// PlayerRows returns a player's engineered rows in year order, nil when the
// player has none.
func (d *Dataset) PlayerRows(name string) []Row {
	return d.byPlayer[name]
}

// Players returns every player name in the dataset, sorted.
func (d *Dataset) Players() []string {
	names := make([]string, 0, len(d.byPlayer))
	for name := range d.byPlayer {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func clubTier(club string) int {
	for _, c := range topClubsTier1 {
		if strings.EqualFold(c, club) {
			return 1
		}
	}
	for _, c := range topClubsTier2 {
		if strings.EqualFold(c, club) {
			return 2
		}
	}
	return 3
}

// clubQuintiles scores each club 1-5 by its average market value across the
// dataset, 5 being the most valuable fifth.
func clubQuintiles(raw []store.ValueRow) map[string]int {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, r := range raw {
		sums[r.Club] += r.MV
		counts[r.Club]++
	}
	type clubAvg struct {
		club string
		avg  float64
	}
	avgs := make([]clubAvg, 0, len(sums))
	for club, sum := range sums {
		avgs = append(avgs, clubAvg{club, sum / float64(counts[club])})
	}
	sort.Slice(avgs, func(i, j int) bool { return avgs[i].avg < avgs[j].avg })

	scores := make(map[string]int, len(avgs))
	n := len(avgs)
	for i, c := range avgs {
		score := i*5/n + 1
		if score > 5 {
			score = 5
		}
		scores[c.club] = score
	}
	return scores
}
