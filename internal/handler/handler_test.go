package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"

	"statvalue-backend/internal/cache"
	"statvalue-backend/internal/store"
	"statvalue-backend/internal/valuation"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	path := filepath.Join(t.TempDir(), "handler_test.db")
	if err := store.Init(path); err != nil {
		t.Fatalf("init store: %v", err)
	}
	if err := store.CreateSchema(store.DB()); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	store.SetCacheProvider(cache.NewMemory())
	t.Cleanup(func() { store.Close() })

	r := gin.New()
	api := r.Group("/api")
	{
		api.GET("/players/:position", GetPlayersByPosition)
		api.GET("/players/:position/:id", GetPlayerByID)
		api.GET("/search", SearchPlayers)
		api.POST("/compare", ComparePlayers)
		api.POST("/similar", SimilarPlayers)
		api.POST("/radar", RadarCompare)
		api.POST("/predict", Predict)
		api.GET("/player-history/:player_name", GetPlayerHistory)
	}
	return r
}

func seedForward(t *testing.T, name string, goals, sot float64) {
	t.Helper()
	_, err := store.DB().Exec(
		`INSERT INTO forwards (player, nation, squad, comp, age, born, mp, starts, min, ninety_s,
			goals, sot, sot_percentage, scash, touattpen, assists, sca)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		name, "fr FRA", "Lyon", "Ligue 1", 24, 2000, 30, 25, 2300, 25.6,
		goals, sot, 42.0, 0.4, 120.0, 5.0, 70.0,
	)
	if err != nil {
		t.Fatalf("seed forward: %v", err)
	}
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetPlayersByPosition(t *testing.T) {
	r := newTestRouter(t)
	seedForward(t, "First Forward", 10, 30)
	seedForward(t, "Second Forward", 8, 25)

	w := doJSON(t, r, http.MethodGet, "/api/players/Forward", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var resp struct {
		Players []struct {
			Name string `json:"name"`
		} `json:"players"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Players) != 2 {
		t.Errorf("players = %d, want 2", len(resp.Players))
	}
}

func TestGetPlayersByPositionInvalid(t *testing.T) {
	r := newTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/api/players/striker", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestGetPlayerByID(t *testing.T) {
	r := newTestRouter(t)
	seedForward(t, "Detail Forward", 14, 40)

	w := doJSON(t, r, http.MethodGet, "/api/search?query=detail", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("search status = %d, body %s", w.Code, w.Body.String())
	}
	var search struct {
		Results []struct {
			ID int64 `json:"id"`
		} `json:"results"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &search); err != nil {
		t.Fatalf("decode search: %v", err)
	}
	if len(search.Results) != 1 {
		t.Fatalf("search results = %d, want 1", len(search.Results))
	}

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/players/forward/%d", search.Results[0].ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var detail struct {
		Player struct {
			Name string `json:"name"`
		} `json:"player"`
		Stats map[string]float64 `json:"stats"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &detail); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if detail.Player.Name != "Detail Forward" {
		t.Errorf("name = %q, want %q", detail.Player.Name, "Detail Forward")
	}
	if detail.Stats["Goals"] != 14 {
		t.Errorf("Goals = %v, want 14", detail.Stats["Goals"])
	}

	w = doJSON(t, r, http.MethodGet, "/api/players/forward/9999", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 for unknown id", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/players/forward/abc", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for non-numeric id", w.Code)
	}
}

func TestSearchPlayersValidation(t *testing.T) {
	r := newTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/api/search?query=a", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for one-character query", w.Code)
	}
}

func TestSearchPlayersEmptyResult(t *testing.T) {
	r := newTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/api/search?query=nobody", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var resp struct {
		Results []json.RawMessage `json:"results"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Results == nil {
		t.Error("results must be an empty array, not null")
	}
}

func TestComparePlayers(t *testing.T) {
	r := newTestRouter(t)
	seedForward(t, "Big Scorer", 20, 50)
	seedForward(t, "Small Scorer", 10, 25)

	w := doJSON(t, r, http.MethodPost, "/api/compare", map[string]any{
		"position": "forward",
		"players":  []string{"Big Scorer", "Small Scorer"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var entries []struct {
		Player struct {
			Name string `json:"name"`
		} `json:"player"`
		Stats           map[string]float64 `json:"stats"`
		NormalizedStats map[string]float64 `json:"normalizedStats"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &entries); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[0].NormalizedStats["Goals"] != 100 {
		t.Errorf("leader normalized Goals = %v, want 100", entries[0].NormalizedStats["Goals"])
	}
	if entries[1].NormalizedStats["Goals"] != 50 {
		t.Errorf("trailer normalized Goals = %v, want 50", entries[1].NormalizedStats["Goals"])
	}
	if entries[0].Stats["Goals"] != 20 {
		t.Errorf("raw Goals = %v, want 20", entries[0].Stats["Goals"])
	}
}

func TestComparePlayersValidation(t *testing.T) {
	r := newTestRouter(t)
	seedForward(t, "Lone Forward", 10, 30)

	w := doJSON(t, r, http.MethodPost, "/api/compare", map[string]any{
		"position": "forward",
		"players":  []string{"Lone Forward"},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for a single player", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/compare", map[string]any{
		"position": "forward",
		"players":  []string{"Lone Forward", "No Such Player"},
	})
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 for unknown player", w.Code)
	}
}

func TestSimilarPlayers(t *testing.T) {
	r := newTestRouter(t)
	seedForward(t, "Reference", 10, 30)
	seedForward(t, "Close Match", 11, 31)
	seedForward(t, "Far Match", 40, 90)

	w := doJSON(t, r, http.MethodPost, "/api/similar", map[string]any{
		"player":   "Reference",
		"position": "forward",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var resp struct {
		SimilarPlayers []struct {
			Name     string  `json:"name"`
			Distance float64 `json:"distance"`
		} `json:"similar_players"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.SimilarPlayers) != 2 {
		t.Fatalf("neighbours = %d, want 2", len(resp.SimilarPlayers))
	}
	if resp.SimilarPlayers[0].Name != "Close Match" {
		t.Errorf("nearest = %q, want %q", resp.SimilarPlayers[0].Name, "Close Match")
	}
}

func TestRadarCompareValidation(t *testing.T) {
	r := newTestRouter(t)
	seedForward(t, "One", 10, 30)
	seedForward(t, "Two", 12, 35)
	seedForward(t, "Three", 14, 40)

	w := doJSON(t, r, http.MethodPost, "/api/radar", map[string]any{
		"position": "forward",
		"players":  []string{"One", "Two", "Three"},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for three players", w.Code)
	}
}

func TestRadarCompare(t *testing.T) {
	r := newTestRouter(t)
	seedForward(t, "One", 10, 30)
	seedForward(t, "Two", 20, 35)

	w := doJSON(t, r, http.MethodPost, "/api/radar", map[string]any{
		"position": "forward",
		"players":  []string{"One", "Two"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var resp struct {
		Players []struct {
			Name       string             `json:"name"`
			Raw        map[string]float64 `json:"raw"`
			Normalized map[string]float64 `json:"normalized"`
		} `json:"players"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Players) != 2 {
		t.Fatalf("players = %d, want 2", len(resp.Players))
	}
	for _, p := range resp.Players {
		for axis, v := range p.Normalized {
			if v < 0 || v > 100 {
				t.Errorf("%s normalized %q = %v, want within [0,100]", p.Name, axis, v)
			}
		}
	}
}

func TestPredictValidation(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/predict", map[string]any{
		"playerName": "Anyone",
		"year":       1990,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for out-of-range year", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/predict", map[string]any{
		"year": 2025,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for missing player name", w.Code)
	}
}

func TestPredictModelUnavailable(t *testing.T) {
	r := newTestRouter(t)
	SetPredictionContext(valuation.NewContext(t.TempDir()))
	t.Cleanup(func() { SetPredictionContext(nil) })

	w := doJSON(t, r, http.MethodPost, "/api/predict", map[string]any{
		"playerName": "Anyone",
		"year":       2025,
	})
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500 when no model artifact exists", w.Code)
	}
}

func TestGetPlayerHistory(t *testing.T) {
	r := newTestRouter(t)
	for year, mv := range map[int]float64{2017: 5, 2019: 12, 2020: 18} {
		_, err := store.DB().Exec(
			"INSERT INTO market_values (name, year, mv, age, club) VALUES (?,?,?,?,?)",
			"History Forward", year, mv, 20+year-2015, "Lyon",
		)
		if err != nil {
			t.Fatalf("seed history: %v", err)
		}
	}

	w := doJSON(t, r, http.MethodGet, "/api/player-history/History%20Forward", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var history []struct {
		Year        int     `json:"year"`
		MarketValue float64 `json:"marketValue"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &history); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("history = %d rows, want 2 (pre-2018 filtered)", len(history))
	}
	if history[0].Year != 2019 {
		t.Errorf("first year = %d, want 2019", history[0].Year)
	}

	w = doJSON(t, r, http.MethodGet, "/api/player-history/Unknown", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 for unknown player", w.Code)
	}
}
