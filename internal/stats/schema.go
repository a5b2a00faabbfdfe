package stats

import (
	"statvalue-backend/internal/model"
)

// StatDef binds one performance stat to its wire name, its column in the
// position table, and a typed accessor on PlayerRecord. Accessors keep stat
// lookup compile-checked instead of relying on name-based field access.
type StatDef struct {
	Name   string
	Column string
	Value  func(*model.PlayerRecord) float64
}

// schemas fixes the stat set and ordering per position. The order is load-
// bearing: feature vectors for similarity use it on both sides of a
// comparison.
var schemas = map[model.Position][]StatDef{
	model.Defender: {
		{"AerWonPerc", "aerwon_percentage", func(r *model.PlayerRecord) float64 { return r.AerWonPerc }},
		{"TklWon", "tklwon", func(r *model.PlayerRecord) float64 { return r.TklWon }},
		{"Clr", "clr", func(r *model.PlayerRecord) float64 { return r.Clr }},
		{"BlkSh", "blksh", func(r *model.PlayerRecord) float64 { return r.BlkSh }},
		{"Int", "int", func(r *model.PlayerRecord) float64 { return r.Int }},
		{"PasMedCmp", "pasmedcmp", func(r *model.PlayerRecord) float64 { return r.PasMedCmp }},
		{"PasMedCmpPerc", "pasmedcmp_percentage", func(r *model.PlayerRecord) float64 { return r.PasMedCmpPerc }},
	},
	model.Forward: {
		{"Goals", "goals", func(r *model.PlayerRecord) float64 { return r.Goals }},
		{"SoT", "sot", func(r *model.PlayerRecord) float64 { return r.SoT }},
		{"SoTPerc", "sot_percentage", func(r *model.PlayerRecord) float64 { return r.SoTPerc }},
		{"ScaSh", "scash", func(r *model.PlayerRecord) float64 { return r.ScaSh }},
		{"TouAttPen", "touattpen", func(r *model.PlayerRecord) float64 { return r.TouAttPen }},
		{"Assists", "assists", func(r *model.PlayerRecord) float64 { return r.Assists }},
		{"Sca", "sca", func(r *model.PlayerRecord) float64 { return r.Sca }},
	},
	model.Midfielder: {
		{"Recov", "recov", func(r *model.PlayerRecord) float64 { return r.Recov }},
		{"PasTotCmp", "pastotcmp", func(r *model.PlayerRecord) float64 { return r.PasTotCmp }},
		{"PasTotCmpPerc", "pastotcmp_percentage", func(r *model.PlayerRecord) float64 { return r.PasTotCmpPerc }},
		{"PasProg", "pasprog", func(r *model.PlayerRecord) float64 { return r.PasProg }},
		{"TklMid3rd", "tklmid3rd", func(r *model.PlayerRecord) float64 { return r.TklMid3rd }},
		{"CarProg", "carprog", func(r *model.PlayerRecord) float64 { return r.CarProg }},
		{"Int", "int", func(r *model.PlayerRecord) float64 { return r.Int }},
	},
	model.Goalkeeper: {
		{"PasTotCmpPerc", "pastotcmp_percentage", func(r *model.PlayerRecord) float64 { return r.PasTotCmpPerc }},
		{"PasTotCmp", "pastotcmp", func(r *model.PlayerRecord) float64 { return r.PasTotCmp }},
		{"Err", "err", func(r *model.PlayerRecord) float64 { return r.Err }},
		{"SavePerc", "save_percentage", func(r *model.PlayerRecord) float64 { return r.SavePerc }},
		{"SweeperActions", "sweeper_actions", func(r *model.PlayerRecord) float64 { return r.SweeperActions }},
		{"Pas3rd", "pas3rd", func(r *model.PlayerRecord) float64 { return r.Pas3rd }},
	},
}

// Schema returns the ordered stat definitions for a position.
func Schema(pos model.Position) ([]StatDef, error) {
	defs, ok := schemas[pos]
	if !ok {
		return nil, model.ErrUnknownPosition
	}
	return defs, nil
}

// StatNames returns the position's stat names in schema order.
func StatNames(pos model.Position) ([]string, error) {
	defs, err := Schema(pos)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(defs))
	for i, d := range defs {
		names[i] = d.Name
	}
	return names, nil
}
