package stats

import (
	"testing"

	"statvalue-backend/internal/model"
)

func TestProjectRadarGoalkeeperPlaceholder(t *testing.T) {
	r := &model.PlayerRecord{Name: "GK", SavePerc: 74, SweeperActions: 12, PasTotCmp: 600}
	profile, err := ProjectRadar(r, model.Goalkeeper)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := profile["Aerial Command"]; got != 50 {
		t.Errorf("Aerial Command = %v, want placeholder 50", got)
	}
	if got := profile["Shot Stopping"]; got != 74 {
		t.Errorf("Shot Stopping = %v, want 74", got)
	}
}

func TestProjectRadarUnknownPosition(t *testing.T) {
	if _, err := ProjectRadar(&model.PlayerRecord{}, model.Position("sweeper")); err == nil {
		t.Fatal("expected error for unknown position")
	}
}

func TestNormalizeRadarBounds(t *testing.T) {
	a := model.RadarProfile{"Finishing": 20, "Creativity": 80}
	b := model.RadarProfile{"Finishing": 10, "Creativity": 160}

	normA, normB := NormalizeRadar(a, b)

	for axis, v := range normA {
		if v < 0 || v > 100 {
			t.Errorf("a[%s] = %v out of [0, 100]", axis, v)
		}
	}
	for axis, v := range normB {
		if v < 0 || v > 100 {
			t.Errorf("b[%s] = %v out of [0, 100]", axis, v)
		}
	}
	if normA["Finishing"] != 100 || normB["Finishing"] != 50 {
		t.Errorf("Finishing = (%v, %v), want (100, 50)", normA["Finishing"], normB["Finishing"])
	}
}

func TestNormalizeRadarBothZero(t *testing.T) {
	a := model.RadarProfile{"Finishing": 0}
	b := model.RadarProfile{"Finishing": 0}
	normA, normB := NormalizeRadar(a, b)
	if normA["Finishing"] != 0 || normB["Finishing"] != 0 {
		t.Errorf("zero inputs normalized to (%v, %v), want (0, 0)", normA["Finishing"], normB["Finishing"])
	}
}

func TestNormalizeRadarAxisUnion(t *testing.T) {
	a := model.RadarProfile{"Finishing": 5}
	b := model.RadarProfile{"Creativity": 8}
	normA, normB := NormalizeRadar(a, b)
	if _, ok := normA["Creativity"]; !ok {
		t.Error("a missing axis present only in b")
	}
	if _, ok := normB["Finishing"]; !ok {
		t.Error("b missing axis present only in a")
	}
}
