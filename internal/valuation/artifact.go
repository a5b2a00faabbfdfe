package valuation

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
)

// ArtifactFile is the model bundle name expected under MODEL_DIR.
const ArtifactFile = "market_value_lstm.json"

// FeatureScaler applies robust scaling per feature: (x - center) / scale.
type FeatureScaler struct {
	Center []float64 `json:"center"`
	Scale  []float64 `json:"scale"`
}

// Transform scales one feature vector. A zero scale entry passes the centered
// value through unchanged.
func (s *FeatureScaler) Transform(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		scale := 1.0
		if i < len(s.Scale) && s.Scale[i] != 0 {
			scale = s.Scale[i]
		}
		center := 0.0
		if i < len(s.Center) {
			center = s.Center[i]
		}
		out[i] = (v - center) / scale
	}
	return out
}

// TargetScaler holds the scalar target's robust-scaling parameters.
type TargetScaler struct {
	Center float64 `json:"center"`
	Scale  float64 `json:"scale"`
}

// Inverse maps a scaled model output back to market-value units.
func (s *TargetScaler) Inverse(y float64) float64 {
	scale := s.Scale
	if scale == 0 {
		scale = 1
	}
	return y*scale + s.Center
}

// LSTMWeights is a single-layer LSTM. Weight rows are stacked in gate order
// input, forget, cell, output (4*Hidden rows total).
type LSTMWeights struct {
	Hidden int         `json:"hidden"`
	Wih    [][]float64 `json:"w_ih"` // 4H x F
	Whh    [][]float64 `json:"w_hh"` // 4H x H
	Bih    []float64   `json:"b_ih"`
	Bhh    []float64   `json:"b_hh"`
}

// DenseLayer is the scalar output head on the final hidden state.
type DenseLayer struct {
	W []float64 `json:"w"`
	B float64   `json:"b"`
}

// Artifact bundles everything the projection engine loads once per process:
// the sequence model, both scalers, the ordered important-feature names and
// the lookback window length.
type Artifact struct {
	Lookback      int           `json:"lookback"`
	Features      []string      `json:"features"`
	FeatureScaler FeatureScaler `json:"feature_scaler"`
	TargetScaler  TargetScaler  `json:"target_scaler"`
	LSTM          LSTMWeights   `json:"lstm"`
	Output        DenseLayer    `json:"dense"`
}

// LoadArtifact reads and validates the model bundle from modelDir.
func LoadArtifact(modelDir string) (*Artifact, error) {
	path := filepath.Join(modelDir, ArtifactFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model artifact %s: %w", path, err)
	}
	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("parse model artifact %s: %w", path, err)
	}
	if err := a.validate(); err != nil {
		return nil, fmt.Errorf("model artifact %s: %w", path, err)
	}
	return &a, nil
}

func (a *Artifact) validate() error {
	if a.Lookback <= 0 {
		return fmt.Errorf("lookback must be positive, got %d", a.Lookback)
	}
	if len(a.Features) == 0 {
		return fmt.Errorf("no feature names")
	}
	f := len(a.Features)
	h := a.LSTM.Hidden
	if h <= 0 {
		return fmt.Errorf("hidden size must be positive, got %d", h)
	}
	if len(a.LSTM.Wih) != 4*h || len(a.LSTM.Whh) != 4*h ||
		len(a.LSTM.Bih) != 4*h || len(a.LSTM.Bhh) != 4*h {
		return fmt.Errorf("lstm weights do not match hidden size %d", h)
	}
	for _, row := range a.LSTM.Wih {
		if len(row) != f {
			return fmt.Errorf("w_ih rows must have %d columns", f)
		}
	}
	for _, row := range a.LSTM.Whh {
		if len(row) != h {
			return fmt.Errorf("w_hh rows must have %d columns", h)
		}
	}
	if len(a.Output.W) != h {
		return fmt.Errorf("dense weights must have %d entries", h)
	}
	if len(a.FeatureScaler.Center) != f || len(a.FeatureScaler.Scale) != f {
		return fmt.Errorf("feature scaler must cover %d features", f)
	}
	return nil
}

// Forward runs the window through the LSTM and output head. Each timestep must
// already be scaled; the result is in scaled target units.
func (a *Artifact) Forward(window [][]float64) float64 {
	h := a.LSTM.Hidden
	hidden := make([]float64, h)
	cell := make([]float64, h)

	for _, x := range window {
		// gates = Wih*x + Whh*h + bih + bhh, rows stacked i,f,g,o
		gates := make([]float64, 4*h)
		for row := 0; row < 4*h; row++ {
			sum := a.LSTM.Bih[row] + a.LSTM.Bhh[row]
			for j, v := range x {
				sum += a.LSTM.Wih[row][j] * v
			}
			for j, v := range hidden {
				sum += a.LSTM.Whh[row][j] * v
			}
			gates[row] = sum
		}
		for j := 0; j < h; j++ {
			in := sigmoid(gates[j])
			forget := sigmoid(gates[h+j])
			cand := math.Tanh(gates[2*h+j])
			out := sigmoid(gates[3*h+j])
			cell[j] = forget*cell[j] + in*cand
			hidden[j] = out * math.Tanh(cell[j])
		}
	}

	y := a.Output.B
	for j, w := range a.Output.W {
		y += w * hidden[j]
	}
	return y
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
