package stats

import (
	"math"
	"testing"

	"statvalue-backend/internal/model"
)

func TestNormalizeMaxMapsTo100(t *testing.T) {
	players := []model.PlayerRecord{
		defender("A", 50, 20, 10),
		defender("B", 25, 40, 5),
	}
	out, err := Normalize(players, model.Defender)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := out[0]["AerWonPerc"]; got != 100 {
		t.Errorf("A AerWonPerc = %v, want 100", got)
	}
	if got := out[1]["AerWonPerc"]; got != 50 {
		t.Errorf("B AerWonPerc = %v, want 50", got)
	}
	if got := out[1]["TklWon"]; got != 100 {
		t.Errorf("B TklWon = %v, want 100", got)
	}
}

func TestNormalizeAllZeroColumn(t *testing.T) {
	players := []model.PlayerRecord{
		defender("A", 0, 0, 0),
		defender("B", 0, 0, 0),
	}
	out, err := Normalize(players, model.Defender)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, m := range out {
		for stat, v := range m {
			if v != 0 {
				t.Errorf("player %d %s = %v, want 0", i, stat, v)
			}
			if math.IsNaN(v) {
				t.Errorf("player %d %s is NaN", i, stat)
			}
		}
	}
}

func TestNormalizeUnknownPosition(t *testing.T) {
	if _, err := Normalize(nil, model.Position("libero")); err == nil {
		t.Fatal("expected error for unknown position")
	}
}
