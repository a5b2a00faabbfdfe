package stats

import (
	"math"

	"statvalue-backend/internal/model"
)

// placeholderAerialCommand stands in for goalkeeper aerial claims, which the
// source data does not carry yet. Placeholder pending real data; keep it
// visible rather than dropping the axis.
const placeholderAerialCommand = 50

// radarAxis maps one human-facing comparison axis to a source stat, or to a
// fixed placeholder when Source is nil.
type radarAxis struct {
	Axis     string
	Source   func(*model.PlayerRecord) float64
	Constant float64
}

var radarAxes = map[model.Position][]radarAxis{
	model.Defender: {
		{Axis: "Aerial Dominance", Source: func(r *model.PlayerRecord) float64 { return r.AerWonPerc }},
		{Axis: "Tackling", Source: func(r *model.PlayerRecord) float64 { return r.TklWon }},
		{Axis: "Clearances", Source: func(r *model.PlayerRecord) float64 { return r.Clr }},
		{Axis: "Shot Blocking", Source: func(r *model.PlayerRecord) float64 { return r.BlkSh }},
		{Axis: "Anticipation", Source: func(r *model.PlayerRecord) float64 { return r.Int }},
		{Axis: "Distribution", Source: func(r *model.PlayerRecord) float64 { return r.PasMedCmp }},
	},
	model.Midfielder: {
		{Axis: "Ball Recovery", Source: func(r *model.PlayerRecord) float64 { return r.Recov }},
		{Axis: "Passing Volume", Source: func(r *model.PlayerRecord) float64 { return r.PasTotCmp }},
		{Axis: "Passing Accuracy", Source: func(r *model.PlayerRecord) float64 { return r.PasTotCmpPerc }},
		{Axis: "Progression", Source: func(r *model.PlayerRecord) float64 { return r.PasProg }},
		{Axis: "Defensive Work", Source: func(r *model.PlayerRecord) float64 { return r.TklMid3rd }},
		{Axis: "Ball Carrying", Source: func(r *model.PlayerRecord) float64 { return r.CarProg }},
	},
	model.Forward: {
		{Axis: "Finishing", Source: func(r *model.PlayerRecord) float64 { return r.Goals }},
		{Axis: "Shot Accuracy", Source: func(r *model.PlayerRecord) float64 { return r.SoTPerc }},
		{Axis: "Shot Volume", Source: func(r *model.PlayerRecord) float64 { return r.SoT }},
		{Axis: "Creativity", Source: func(r *model.PlayerRecord) float64 { return r.Sca }},
		{Axis: "Box Presence", Source: func(r *model.PlayerRecord) float64 { return r.TouAttPen }},
		{Axis: "Assisting", Source: func(r *model.PlayerRecord) float64 { return r.Assists }},
	},
	model.Goalkeeper: {
		{Axis: "Shot Stopping", Source: func(r *model.PlayerRecord) float64 { return r.SavePerc }},
		{Axis: "Sweeping", Source: func(r *model.PlayerRecord) float64 { return r.SweeperActions }},
		{Axis: "Distribution", Source: func(r *model.PlayerRecord) float64 { return r.PasTotCmp }},
		{Axis: "Passing Accuracy", Source: func(r *model.PlayerRecord) float64 { return r.PasTotCmpPerc }},
		{Axis: "Long Range Passing", Source: func(r *model.PlayerRecord) float64 { return r.Pas3rd }},
		{Axis: "Aerial Command", Constant: placeholderAerialCommand},
	},
}

// ProjectRadar maps a record's raw stats onto the position's semantic axes.
// Values are raw; pair them with NormalizeRadar before display.
func ProjectRadar(r *model.PlayerRecord, pos model.Position) (model.RadarProfile, error) {
	axes, ok := radarAxes[pos]
	if !ok {
		return nil, model.ErrUnknownPosition
	}
	profile := make(model.RadarProfile, len(axes))
	for _, ax := range axes {
		if ax.Source != nil {
			profile[ax.Axis] = ax.Source(r)
		} else {
			profile[ax.Axis] = ax.Constant
		}
	}
	return profile, nil
}

// NormalizeRadar rescales two radar profiles against each other, axis by axis:
// the larger of the two values maps to 100 and both sides are capped there.
// A pairwise max of 0 falls back to 1, so two zero values stay 0.
// Normalization is strictly two-player; it never looks at the wider roster.
func NormalizeRadar(a, b model.RadarProfile) (model.RadarProfile, model.RadarProfile) {
	normA := make(model.RadarProfile, len(a))
	normB := make(model.RadarProfile, len(b))

	for _, axis := range axisUnion(a, b) {
		maxValue := math.Max(a[axis], b[axis])
		if maxValue <= 0 {
			maxValue = 1
		}
		normA[axis] = math.Min(100, a[axis]/maxValue*100)
		normB[axis] = math.Min(100, b[axis]/maxValue*100)
	}
	return normA, normB
}

func axisUnion(a, b model.RadarProfile) []string {
	seen := make(map[string]bool, len(a)+len(b))
	var axes []string
	for axis := range a {
		if !seen[axis] {
			seen[axis] = true
			axes = append(axes, axis)
		}
	}
	for axis := range b {
		if !seen[axis] {
			seen[axis] = true
			axes = append(axes, axis)
		}
	}
	return axes
}
