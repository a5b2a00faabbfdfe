package valuation

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"statvalue-backend/internal/model"
	"statvalue-backend/internal/store"
)

// testArtifact writes a zero-weight artifact whose prediction collapses to
// the target scaler center, making model-path outputs exact.
func testArtifact(t *testing.T, center float64) string {
	t.Helper()
	features := []string{"MV", "Age", "Year", "CareerPhaseValue"}
	a := Artifact{
		Lookback: 4,
		Features: features,
		FeatureScaler: FeatureScaler{
			Center: make([]float64, len(features)),
			Scale:  []float64{1, 1, 1, 1},
		},
		TargetScaler: TargetScaler{Center: center, Scale: 1},
		LSTM:         zeroLSTM(2, len(features)),
		Output:       DenseLayer{W: []float64{0, 0}, B: 0},
	}
	dir := t.TempDir()
	data, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("marshal artifact: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ArtifactFile), data, 0o644); err != nil {
		t.Fatalf("write artifact: %v", err)
	}
	return dir
}

type historyRow struct {
	year int
	mv   float64
	age  int
}

func seedHistory(t *testing.T, name string, rows []historyRow) {
	t.Helper()
	for _, r := range rows {
		_, err := store.DB().Exec(
			"INSERT INTO market_values (name, year, mv, age, club) VALUES (?,?,?,?,?)",
			name, r.year, r.mv, r.age, "Porto",
		)
		if err != nil {
			t.Fatalf("seed history: %v", err)
		}
	}
}

func setupStore(t *testing.T) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	if err := store.Init(path); err != nil {
		t.Fatalf("store init: %v", err)
	}
	if err := store.CreateSchema(store.DB()); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	t.Cleanup(func() { store.Close() })
}

func TestPredictExactYearLookup(t *testing.T) {
	setupStore(t)
	seedHistory(t, "Exact Player", []historyRow{
		{2018, 10, 24}, {2019, 12, 25}, {2020, 14, 26}, {2021, 16, 27},
	})
	ctx := NewContext(testArtifact(t, 999)) // center would leak into any model call

	got, err := ctx.Predict("Exact Player", 2020)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.PredictedValue != 14 {
		t.Errorf("PredictedValue = %v, want stored 14", got.PredictedValue)
	}
	if got.ConfidenceLevel != "High (Actual Data)" {
		t.Errorf("ConfidenceLevel = %q, want %q", got.ConfidenceLevel, "High (Actual Data)")
	}
	if got.CurrentValue != 16 {
		t.Errorf("CurrentValue = %v, want last known 16", got.CurrentValue)
	}
	if got.ProjectedAge != 26 {
		t.Errorf("ProjectedAge = %v, want 26", got.ProjectedAge)
	}
}

func TestPredictNoDataForYear(t *testing.T) {
	setupStore(t)
	seedHistory(t, "Gap Player", []historyRow{
		{2018, 10, 24}, {2019, 12, 25}, {2021, 14, 27}, {2022, 16, 28},
	})
	ctx := NewContext(testArtifact(t, 100))

	_, err := ctx.Predict("Gap Player", 2020)
	if !errors.Is(err, model.ErrNoDataForYear) {
		t.Fatalf("expected ErrNoDataForYear, got %v", err)
	}
}

func TestPredictInsufficientHistory(t *testing.T) {
	setupStore(t)
	seedHistory(t, "Short Player", []historyRow{
		{2019, 10, 24}, {2020, 12, 25}, {2021, 14, 26},
	})
	ctx := NewContext(testArtifact(t, 100))

	_, err := ctx.Predict("Short Player", 2025)
	if !errors.Is(err, model.ErrInsufficientHistory) {
		t.Fatalf("expected ErrInsufficientHistory, got %v", err)
	}
}

func TestPredictUnknownPlayer(t *testing.T) {
	setupStore(t)
	ctx := NewContext(testArtifact(t, 100))

	_, err := ctx.Predict("Nobody", 2025)
	if !errors.Is(err, model.ErrPlayerNotFound) {
		t.Fatalf("expected ErrPlayerNotFound, got %v", err)
	}
}

func TestPredictAgeAdjustment(t *testing.T) {
	setupStore(t)
	seedHistory(t, "Old Player", []historyRow{
		{2018, 40, 30}, {2019, 40, 31}, {2020, 40, 32}, {2021, 40, 33},
	})
	ctx := NewContext(testArtifact(t, 100))

	got, err := ctx.Predict("Old Player", 2023)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Projected age 35: factor max(0.5, 1-0.05*5) = 0.75 on the model's 100.
	if got.PredictedValue != 75 {
		t.Errorf("PredictedValue = %v, want 75", got.PredictedValue)
	}
	if got.ProjectedAge != 35 {
		t.Errorf("ProjectedAge = %v, want 35", got.ProjectedAge)
	}
	// Two years forward: 0.9 - 0.1 = 0.8, which is not > 0.8.
	if got.ConfidenceLevel != "Medium (80%)" {
		t.Errorf("ConfidenceLevel = %q, want %q", got.ConfidenceLevel, "Medium (80%)")
	}
}

func TestPredictConfidenceDecay(t *testing.T) {
	setupStore(t)
	seedHistory(t, "Young Player", []historyRow{
		{2018, 20, 21}, {2019, 25, 22}, {2020, 30, 23}, {2021, 35, 24},
	})
	ctx := NewContext(testArtifact(t, 100))

	got, err := ctx.Predict("Young Player", 2027)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.YearsForward != 6 {
		t.Errorf("YearsForward = %v, want 6", got.YearsForward)
	}
	// Penalty min(0.4, 0.3) leaves the level at 0.6, which is not > 0.6.
	if got.ConfidenceLevel != "Low (60%)" {
		t.Errorf("ConfidenceLevel = %q, want %q", got.ConfidenceLevel, "Low (60%)")
	}
	// Projected age 30 stays below the adjustment threshold.
	if got.PredictedValue != 100 {
		t.Errorf("PredictedValue = %v, want unadjusted 100", got.PredictedValue)
	}
}

func TestPredictModelUnavailable(t *testing.T) {
	setupStore(t)
	seedHistory(t, "Any Player", []historyRow{
		{2018, 10, 24}, {2019, 12, 25}, {2020, 14, 26}, {2021, 16, 27},
	})
	ctx := NewContext(t.TempDir()) // no artifact present

	_, err := ctx.Predict("Any Player", 2025)
	if !errors.Is(err, model.ErrModelUnavailable) {
		t.Fatalf("expected ErrModelUnavailable, got %v", err)
	}

	// A later call retries the load rather than caching the failure.
	_, err = ctx.Predict("Any Player", 2025)
	if !errors.Is(err, model.ErrModelUnavailable) {
		t.Fatalf("expected ErrModelUnavailable on retry, got %v", err)
	}
}
