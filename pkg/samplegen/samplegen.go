// Package samplegen builds a complete sample dataset so the server runs
// without a real ingest: four position rosters with plausible stat
// distributions, multi-year market-value histories, and a small working
// model artifact for the projection engine.
package samplegen

import (
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"statvalue-backend/internal/store"

	_ "modernc.org/sqlite"
)

type Options struct {
	OutputPath  string
	ModelDir    string
	PerPosition int
	YearsFrom   int
	YearsTo     int
	Seed        int64
	WithModel   bool
}

// Execute parses flags (with env fallbacks) and generates the sample dataset.
func Execute(args []string) error {
	fs := flag.NewFlagSet("samplegen", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var opts Options
	fs.StringVar(&opts.OutputPath, "output", "", "")
	fs.StringVar(&opts.ModelDir, "model-dir", "", "")
	fs.IntVar(&opts.PerPosition, "per-position", 60, "")
	fs.IntVar(&opts.YearsFrom, "years-from", 2016, "")
	fs.IntVar(&opts.YearsTo, "years-to", 2024, "")
	fs.Int64Var(&opts.Seed, "seed", 42, "")
	fs.BoolVar(&opts.WithModel, "with-model", true, "")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if strings.TrimSpace(opts.OutputPath) == "" {
		opts.OutputPath = getEnvString("DB_PATH", "data/statvalue.db")
	}
	if strings.TrimSpace(opts.ModelDir) == "" {
		opts.ModelDir = getEnvString("MODEL_DIR", "models")
	}
	if opts.PerPosition == 60 {
		opts.PerPosition = getEnvInt("SAMPLEGEN_PER_POSITION", 60)
	}

	return Generate(opts)
}

// Generate writes the sample database (and optionally the model artifact).
func Generate(opts Options) error {
	if err := os.MkdirAll(filepath.Dir(opts.OutputPath), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s", filepath.ToSlash(opts.OutputPath)))
	if err != nil {
		return fmt.Errorf("open sample database: %w", err)
	}
	defer db.Close()

	if err := store.CreateSchema(db); err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	gen := &generator{db: db, rng: rng, opts: opts}

	if err := gen.rosters(); err != nil {
		return err
	}
	if err := gen.histories(); err != nil {
		return err
	}
	log.Printf("sample database written: %s", opts.OutputPath)

	if opts.WithModel {
		if err := writeSampleModel(opts.ModelDir, rng); err != nil {
			return err
		}
		log.Printf("sample model artifact written: %s", filepath.Join(opts.ModelDir, "market_value_lstm.json"))
	}
	return nil
}

type generator struct {
	db   *sql.DB
	rng  *rand.Rand
	opts Options

	names []string // generated player names, reused for histories
}

var firstNames = []string{
	"Luka", "Marco", "Kai", "Jude", "Pedro", "Nico", "Emre", "Sergio", "Theo",
	"Rafael", "Jan", "Viktor", "Andre", "Mateo", "Bruno", "Diego", "Ivan",
	"Tomas", "Felix", "Oscar", "Hugo", "Leon", "Milan", "Pavel", "Sandro",
}

var lastNames = []string{
	"Silva", "Moreno", "Keller", "Novak", "Rossi", "Dubois", "Larsen", "Costa",
	"Vidal", "Weber", "Petrov", "Santos", "Fischer", "Marin", "Kovac", "Bianchi",
	"Lindgren", "Horvat", "Fernandes", "Schmidt", "Ramos", "Janssen", "Sørloth",
	"Carvalho", "Zimmer",
}

var squads = []string{
	"Real Madrid", "Barcelona", "Liverpool", "Arsenal", "Bayern Munich",
	"Dortmund", "Inter", "Milan", "Napoli", "Monaco", "Sevilla", "Brighton",
	"Real Sociedad", "Villarreal", "Leverkusen", "Stuttgart", "Torino",
	"Lille", "Rennes", "Porto",
}

var nations = []string{
	"ESP", "GER", "FRA", "ITA", "ENG", "POR", "NED", "BRA", "ARG", "CRO",
	"BEL", "DEN", "NOR", "SUI", "AUT",
}

var competitions = []string{"La Liga", "Premier League", "Bundesliga", "Serie A", "Ligue 1"}

func (g *generator) playerName(i int) string {
	first := firstNames[g.rng.Intn(len(firstNames))]
	last := lastNames[g.rng.Intn(len(lastNames))]
	// Suffix keeps generated names unique without a collision check.
	return fmt.Sprintf("%s %s %s", first, last, strconv.Itoa(i+1))
}

func (g *generator) rosters() error {
	type table struct {
		name   string
		insert string
		stats  func() []any
	}
	// Fixed order keeps generation deterministic for a given seed.
	tables := []table{
		{
			name: "defenders",
			insert: `INSERT INTO defenders (player, nation, squad, comp, age, born, mp, starts, min, ninety_s,
				aerwon_percentage, tklwon, clr, blksh, "int", pasmedcmp, pasmedcmp_percentage)
				VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
			stats: func() []any {
				return []any{
					g.uniform(35, 80), g.uniform(10, 70), g.uniform(30, 160), g.uniform(5, 45),
					g.uniform(15, 70), g.uniform(200, 900), g.uniform(75, 95),
				}
			},
		},
		{
			name: "midfielders",
			insert: `INSERT INTO midfielders (player, nation, squad, comp, age, born, mp, starts, min, ninety_s,
				recov, pastotcmp, pastotcmp_percentage, pasprog, tklmid3rd, carprog, "int")
				VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
			stats: func() []any {
				return []any{
					g.uniform(80, 260), g.uniform(400, 2200), g.uniform(70, 93), g.uniform(40, 260),
					g.uniform(5, 40), g.uniform(20, 140), g.uniform(10, 55),
				}
			},
		},
		{
			name: "forwards",
			insert: `INSERT INTO forwards (player, nation, squad, comp, age, born, mp, starts, min, ninety_s,
				goals, sot, sot_percentage, scash, touattpen, assists, sca)
				VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
			stats: func() []any {
				return []any{
					g.uniform(2, 30), g.uniform(10, 70), g.uniform(25, 60), g.uniform(5, 50),
					g.uniform(40, 260), g.uniform(1, 15), g.uniform(30, 160),
				}
			},
		},
		{
			name: "goalkeepers",
			insert: `INSERT INTO goalkeepers (player, nation, squad, comp, age, born, mp, starts, min, ninety_s,
				pastotcmp_percentage, pastotcmp, err, save_percentage, sweeper_actions, pas3rd)
				VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
			stats: func() []any {
				return []any{
					g.uniform(60, 92), g.uniform(400, 1200), g.uniform(0, 6), g.uniform(60, 85),
					g.uniform(5, 45), g.uniform(50, 300),
				}
			},
		},
	}

	for _, tbl := range tables {
		for i := 0; i < g.opts.PerPosition; i++ {
			player := g.playerName(i)
			g.names = append(g.names, player)

			age := 18 + g.rng.Intn(18)
			born := g.opts.YearsTo - age
			mp := 5 + g.rng.Intn(33)
			starts := g.rng.Intn(mp + 1)
			minutes := starts*90 + g.rng.Intn(600)

			args := []any{
				player, nations[g.rng.Intn(len(nations))], squads[g.rng.Intn(len(squads))],
				competitions[g.rng.Intn(len(competitions))], age, born, mp, starts, minutes,
				math.Round(float64(minutes)/90*10) / 10,
			}
			args = append(args, tbl.stats()...)
			if _, err := g.db.Exec(tbl.insert, args...); err != nil {
				return fmt.Errorf("insert into %s: %w", tbl.name, err)
			}
		}
	}
	return nil
}

func (g *generator) histories() error {
	for _, name := range g.names {
		club := squads[g.rng.Intn(len(squads))]
		startAge := 17 + g.rng.Intn(10)
		value := g.uniform(1, 40)
		nr := float64(1 + g.rng.Intn(5))
		pr := float64(1 + g.rng.Intn(5))

		for year := g.opts.YearsFrom; year <= g.opts.YearsTo; year++ {
			age := startAge + (year - g.opts.YearsFrom)
			// Value rises toward the peak years and drifts down after.
			drift := 1.1
			if age > 29 {
				drift = 0.92
			}
			value = math.Max(0.5, value*drift*(0.9+g.rng.Float64()*0.25))

			_, err := g.db.Exec(
				`INSERT OR REPLACE INTO market_values (name, year, mv, age, club, nr, pr) VALUES (?,?,?,?,?,?,?)`,
				name, year, math.Round(value*100)/100, age, club, nr, pr,
			)
			if err != nil {
				return fmt.Errorf("insert market value: %w", err)
			}
		}
	}
	return nil
}

func (g *generator) uniform(lo, hi float64) float64 {
	return math.Round((lo+g.rng.Float64()*(hi-lo))*10) / 10
}

// writeSampleModel emits a small deterministic LSTM artifact. The weights are
// not trained; they just give the projection path something runnable.
func writeSampleModel(modelDir string, rng *rand.Rand) error {
	if err := os.MkdirAll(modelDir, 0o755); err != nil {
		return fmt.Errorf("create model dir: %w", err)
	}

	features := []string{
		"MV", "Age", "Year", "CR", "ReputationIndex", "PrevYearMV",
		"MV_Trend", "MV_GrowthRate", "Age_squared", "Years_from_peak",
		"PeakAgeFactor", "CareerPhaseValue",
	}
	const hidden = 4
	f := len(features)

	small := func() float64 { return (rng.Float64() - 0.5) * 0.4 }
	matrix := func(rows, cols int) [][]float64 {
		m := make([][]float64, rows)
		for i := range m {
			m[i] = make([]float64, cols)
			for j := range m[i] {
				m[i][j] = small()
			}
		}
		return m
	}
	vector := func(n int) []float64 {
		v := make([]float64, n)
		for i := range v {
			v[i] = small()
		}
		return v
	}

	artifact := map[string]any{
		"lookback": 4,
		"features": features,
		"feature_scaler": map[string]any{
			"center": []float64{20, 25, 2020, 2, 2.5, 18, 0, 0.05, 650, 3, 0.8, 2},
			"scale":  []float64{15, 5, 4, 1, 1.5, 14, 5, 0.3, 260, 3, 0.2, 1},
		},
		"target_scaler": map[string]any{"center": 20.0, "scale": 15.0},
		"lstm": map[string]any{
			"hidden": hidden,
			"w_ih":   matrix(4*hidden, f),
			"w_hh":   matrix(4*hidden, hidden),
			"b_ih":   vector(4 * hidden),
			"b_hh":   vector(4 * hidden),
		},
		"dense": map[string]any{"w": vector(hidden), "b": 0.1},
	}

	data, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return fmt.Errorf("encode model artifact: %w", err)
	}
	path := filepath.Join(modelDir, "market_value_lstm.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write model artifact: %w", err)
	}
	return nil
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
