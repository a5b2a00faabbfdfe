package stats

import (
	"errors"
	"testing"

	"statvalue-backend/internal/model"
)

func TestExtractOrderAndZeroFill(t *testing.T) {
	r := &model.PlayerRecord{
		Name:       "Test Defender",
		AerWonPerc: 61.5,
		TklWon:     40,
		// Clr, BlkSh left unset: stored NULLs read as 0
		Int:           33,
		PasMedCmp:     512,
		PasMedCmpPerc: 88.2,
	}

	vec, err := Extract(r, model.Defender)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []float64{61.5, 40, 0, 0, 33, 512, 88.2}
	if len(vec) != len(want) {
		t.Fatalf("vector length = %d, want %d", len(vec), len(want))
	}
	for i := range want {
		if vec[i] != want[i] {
			t.Errorf("vec[%d] = %v, want %v", i, vec[i], want[i])
		}
	}
}

func TestExtractDeterministic(t *testing.T) {
	r := &model.PlayerRecord{Goals: 12, SoT: 30, Assists: 4}
	a, err := Extract(r, model.Forward)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Extract(r, model.Forward)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("extraction not deterministic at index %d", i)
		}
	}
}

func TestExtractUnknownPosition(t *testing.T) {
	_, err := Extract(&model.PlayerRecord{}, model.Position("striker"))
	if !errors.Is(err, model.ErrUnknownPosition) {
		t.Fatalf("expected ErrUnknownPosition, got %v", err)
	}
}

func TestSchemaLengths(t *testing.T) {
	tests := []struct {
		pos  model.Position
		want int
	}{
		{model.Defender, 7},
		{model.Midfielder, 7},
		{model.Forward, 7},
		{model.Goalkeeper, 6},
	}
	for _, tt := range tests {
		names, err := StatNames(tt.pos)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.pos, err)
		}
		if len(names) != tt.want {
			t.Errorf("%s: %d stats, want %d", tt.pos, len(names), tt.want)
		}
	}
}
