package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"statvalue-backend/internal/model"
)

// rosterCacheTTL bounds how stale a cached position roster may get before the
// next read goes back to SQLite.
const rosterCacheTTL = 10 * time.Minute

const commonColumns = `id, player, nation, squad, comp, age, born, mp, starts, min, ninety_s`

// positionTable binds a position to its table, its stat columns in schema
// order, and a typed assignment of scanned stat values.
type positionTable struct {
	table  string
	cols   []string
	assign func(*model.PlayerRecord, []float64)
}

var tables = map[model.Position]positionTable{
	model.Defender: {
		table: "defenders",
		cols:  []string{"aerwon_percentage", "tklwon", "clr", "blksh", "int", "pasmedcmp", "pasmedcmp_percentage"},
		assign: func(r *model.PlayerRecord, v []float64) {
			r.AerWonPerc, r.TklWon, r.Clr, r.BlkSh, r.Int, r.PasMedCmp, r.PasMedCmpPerc = v[0], v[1], v[2], v[3], v[4], v[5], v[6]
		},
	},
	model.Midfielder: {
		table: "midfielders",
		cols:  []string{"recov", "pastotcmp", "pastotcmp_percentage", "pasprog", "tklmid3rd", "carprog", "int"},
		assign: func(r *model.PlayerRecord, v []float64) {
			r.Recov, r.PasTotCmp, r.PasTotCmpPerc, r.PasProg, r.TklMid3rd, r.CarProg, r.Int = v[0], v[1], v[2], v[3], v[4], v[5], v[6]
		},
	},
	model.Forward: {
		table: "forwards",
		cols:  []string{"goals", "sot", "sot_percentage", "scash", "touattpen", "assists", "sca"},
		assign: func(r *model.PlayerRecord, v []float64) {
			r.Goals, r.SoT, r.SoTPerc, r.ScaSh, r.TouAttPen, r.Assists, r.Sca = v[0], v[1], v[2], v[3], v[4], v[5], v[6]
		},
	},
	model.Goalkeeper: {
		table: "goalkeepers",
		cols:  []string{"pastotcmp_percentage", "pastotcmp", "err", "save_percentage", "sweeper_actions", "pas3rd"},
		assign: func(r *model.PlayerRecord, v []float64) {
			r.PasTotCmpPerc, r.PasTotCmp, r.Err, r.SavePerc, r.SweeperActions, r.Pas3rd = v[0], v[1], v[2], v[3], v[4], v[5]
		},
	},
}

func tableFor(pos model.Position) (positionTable, error) {
	pt, ok := tables[pos]
	if !ok {
		return positionTable{}, fmt.Errorf("%q: %w", pos, model.ErrUnknownPosition)
	}
	return pt, nil
}

func (pt positionTable) selectClause() string {
	quoted := make([]string, len(pt.cols))
	for i, c := range pt.cols {
		quoted[i] = `"` + c + `"`
	}
	return fmt.Sprintf("SELECT %s, %s FROM %s", commonColumns, strings.Join(quoted, ", "), pt.table)
}

func (pt positionTable) scan(rows *sql.Rows) (model.PlayerRecord, error) {
	var r model.PlayerRecord
	var nation, squad, comp sql.NullString
	var age, born, mp, starts, min sql.NullInt64
	var ninetyS sql.NullFloat64

	statVals := make([]sql.NullFloat64, len(pt.cols))
	args := []any{&r.ID, &r.Name, &nation, &squad, &comp, &age, &born, &mp, &starts, &min, &ninetyS}
	for i := range statVals {
		args = append(args, &statVals[i])
	}
	if err := rows.Scan(args...); err != nil {
		return r, err
	}

	r.Nation, r.Squad, r.Comp = nation.String, squad.String, comp.String
	r.Age, r.Born = int(age.Int64), int(born.Int64)
	r.MP, r.Starts, r.Min = int(mp.Int64), int(starts.Int64), int(min.Int64)
	r.NinetyS = ninetyS.Float64

	// Missing stats read as 0 everywhere downstream.
	vals := make([]float64, len(statVals))
	for i, v := range statVals {
		vals[i] = v.Float64
	}
	pt.assign(&r, vals)
	return r, nil
}

// PlayersByPosition returns the full roster for a position, from cache when a
// fresh copy exists. Rosters can be large; callers should treat the slice as
// read-only.
func PlayersByPosition(pos model.Position) ([]model.PlayerRecord, error) {
	pt, err := tableFor(pos)
	if err != nil {
		return nil, err
	}

	cacheKey := "roster:" + string(pos)
	var cached []model.PlayerRecord
	if err := getCacheProvider().Get(cacheKey, &cached); err == nil && len(cached) > 0 {
		return cached, nil
	}

	rows, err := db.Query(pt.selectClause() + " ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", pt.table, err)
	}
	defer rows.Close()

	var roster []model.PlayerRecord
	for rows.Next() {
		r, err := pt.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", pt.table, err)
		}
		roster = append(roster, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", pt.table, err)
	}

	if len(roster) > 0 {
		if err := getCacheProvider().Set(cacheKey, roster, rosterCacheTTL); err != nil {
			// Cache is best-effort; the read already succeeded.
		}
	}
	return roster, nil
}

// PlayerByName returns a position's record by case-insensitive exact name.
func PlayerByName(pos model.Position, name string) (*model.PlayerRecord, error) {
	pt, err := tableFor(pos)
	if err != nil {
		return nil, err
	}
	rows, err := db.Query(pt.selectClause()+" WHERE player = ? COLLATE NOCASE LIMIT 1", name)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", pt.table, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%q in %ss: %w", name, pos, model.ErrPlayerNotFound)
	}
	r, err := pt.scan(rows)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", pt.table, err)
	}
	return &r, nil
}

// PlayerByID returns a position's record by id.
func PlayerByID(pos model.Position, id int64) (*model.PlayerRecord, error) {
	pt, err := tableFor(pos)
	if err != nil {
		return nil, err
	}
	rows, err := db.Query(pt.selectClause()+" WHERE id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", pt.table, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("id %d in %ss: %w", id, pos, model.ErrPlayerNotFound)
	}
	r, err := pt.scan(rows)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", pt.table, err)
	}
	return &r, nil
}

// SearchPlayers finds players whose name contains the query, across all four
// positions, at most perPosition rows each.
func SearchPlayers(query string, perPosition int) ([]model.SearchResult, error) {
	pattern := "%" + query + "%"
	var results []model.SearchResult
	for _, pos := range model.Positions {
		pt := tables[pos]
		rows, err := db.Query(
			fmt.Sprintf("SELECT id, player, squad, nation FROM %s WHERE player LIKE ? COLLATE NOCASE ORDER BY player LIMIT ?", pt.table),
			pattern, perPosition,
		)
		if err != nil {
			return nil, fmt.Errorf("search %s: %w", pt.table, err)
		}
		for rows.Next() {
			var res model.SearchResult
			var squad, nation sql.NullString
			if err := rows.Scan(&res.ID, &res.Name, &squad, &nation); err != nil {
				rows.Close()
				return nil, fmt.Errorf("scan search %s: %w", pt.table, err)
			}
			res.Squad, res.Nation = squad.String, nation.String
			res.Position = string(pos)
			results = append(results, res)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, fmt.Errorf("iterate search %s: %w", pt.table, err)
		}
		rows.Close()
	}
	return results, nil
}

// ErrNoHistory distinguishes an empty history from a query failure.
var ErrNoHistory = errors.New("no market value history")

// ValueHistory returns a player's market-value rows from minYear onward,
// ordered by year.
func ValueHistory(name string, minYear int) ([]model.ValueEntry, error) {
	rows, err := db.Query(
		"SELECT year, mv, age FROM market_values WHERE name = ? AND year >= ? ORDER BY year",
		name, minYear,
	)
	if err != nil {
		return nil, fmt.Errorf("query market_values: %w", err)
	}
	defer rows.Close()

	var history []model.ValueEntry
	for rows.Next() {
		var e model.ValueEntry
		var age sql.NullInt64
		if err := rows.Scan(&e.Year, &e.MarketValue, &age); err != nil {
			return nil, fmt.Errorf("scan market_values: %w", err)
		}
		e.Age = int(age.Int64)
		history = append(history, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate market_values: %w", err)
	}
	if len(history) == 0 {
		return nil, fmt.Errorf("%q: %w", name, ErrNoHistory)
	}
	return history, nil
}

// ValueRow is one raw row of the wide historical dataset consumed by the
// value projection engine.
type ValueRow struct {
	Name string
	Year int
	MV   float64
	Age  int
	Club string
	NR   float64
	PR   float64
	// HasReputation records whether the nation/performance reputation columns
	// were populated for this row; the reputation index falls back to the club
	// score alone when they were not.
	HasReputation bool
}

// ValueRows returns the entire historical dataset ordered by player then year.
func ValueRows() ([]ValueRow, error) {
	rows, err := db.Query("SELECT name, year, mv, age, club, nr, pr FROM market_values ORDER BY name, year")
	if err != nil {
		return nil, fmt.Errorf("query market_values: %w", err)
	}
	defer rows.Close()

	var out []ValueRow
	for rows.Next() {
		var r ValueRow
		var age sql.NullInt64
		var club sql.NullString
		var nr, pr sql.NullFloat64
		if err := rows.Scan(&r.Name, &r.Year, &r.MV, &age, &club, &nr, &pr); err != nil {
			return nil, fmt.Errorf("scan market_values: %w", err)
		}
		r.Age = int(age.Int64)
		r.Club = club.String
		r.NR, r.PR = nr.Float64, pr.Float64
		r.HasReputation = nr.Valid && pr.Valid
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate market_values: %w", err)
	}
	return out, nil
}
