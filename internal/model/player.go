package model

// Position partitions both storage and the per-position stat schema.
type Position string

const (
	Defender   Position = "defender"
	Midfielder Position = "midfielder"
	Forward    Position = "forward"
	Goalkeeper Position = "goalkeeper"
)

// Positions lists every recognized position in a fixed order.
var Positions = []Position{Defender, Midfielder, Forward, Goalkeeper}

// Valid reports whether p is one of the four recognized positions.
func (p Position) Valid() bool {
	switch p {
	case Defender, Midfielder, Forward, Goalkeeper:
		return true
	}
	return false
}

// PlayerRecord holds one stored player row. It carries the union of all
// per-position performance stats as typed fields; a position only populates
// and reads its own subset (see stats.Schema). NULL stats scan to 0.
type PlayerRecord struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Nation  string `json:"Nation"`
	Squad   string `json:"Squad"`
	Comp    string `json:"Comp"`
	Age     int    `json:"Age"`
	Born    int    `json:"Born"`
	MP      int    `json:"MP"`
	Starts  int    `json:"Starts"`
	Min     int    `json:"Min"`
	NinetyS float64 `json:"NinetyS"`

	// Defender stats
	AerWonPerc    float64
	TklWon        float64
	Clr           float64
	BlkSh         float64
	Int           float64
	PasMedCmp     float64
	PasMedCmpPerc float64

	// Forward stats
	Goals     float64
	SoT       float64
	SoTPerc   float64
	ScaSh     float64
	TouAttPen float64
	Assists   float64
	Sca       float64

	// Midfielder stats (Int shared with defenders)
	Recov         float64
	PasTotCmp     float64
	PasTotCmpPerc float64
	PasProg       float64
	TklMid3rd     float64
	CarProg       float64

	// Goalkeeper stats (PasTotCmp/PasTotCmpPerc shared with midfielders)
	Err            float64
	SavePerc       float64
	SweeperActions float64
	Pas3rd         float64
}

// PlayerSummary is the identity/usage slice of a record returned by the
// roster listing endpoint.
type PlayerSummary struct {
	Name    string  `json:"name"`
	Nation  string  `json:"Nation"`
	Squad   string  `json:"Squad"`
	Comp    string  `json:"Comp"`
	Age     int     `json:"Age"`
	Born    int     `json:"Born"`
	MP      int     `json:"MP"`
	Starts  int     `json:"Starts"`
	Min     int     `json:"Min"`
	NinetyS float64 `json:"NinetyS"`
}

// Summary projects the identity and usage fields of a record.
func (r *PlayerRecord) Summary() PlayerSummary {
	return PlayerSummary{
		Name:    r.Name,
		Nation:  r.Nation,
		Squad:   r.Squad,
		Comp:    r.Comp,
		Age:     r.Age,
		Born:    r.Born,
		MP:      r.MP,
		Starts:  r.Starts,
		Min:     r.Min,
		NinetyS: r.NinetyS,
	}
}

// SearchResult is one row of the cross-position player search.
type SearchResult struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Squad    string `json:"squad"`
	Nation   string `json:"nation"`
	Position string `json:"position"`
}

// ValueEntry is one year of a player's market-value history.
type ValueEntry struct {
	Year        int     `json:"year"`
	MarketValue float64 `json:"marketValue"`
	Age         int     `json:"age"`
}
