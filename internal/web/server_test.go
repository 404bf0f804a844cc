package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/jvesely/arcade/internal/config"
	"github.com/jvesely/arcade/internal/persist"
)

type stubScores struct {
	rows     []persist.ScoreRow
	inserted []persist.ScoreRow
	topGame  string
	topLimit int
	err      error
}

func (s *stubScores) Insert(_ context.Context, row persist.ScoreRow) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.inserted = append(s.inserted, row)
	return int64(len(s.inserted)), nil
}

func (s *stubScores) Top(_ context.Context, game string, limit int) ([]persist.ScoreRow, error) {
	s.topGame, s.topLimit = game, limit
	if s.err != nil {
		return nil, s.err
	}
	if limit > len(s.rows) {
		limit = len(s.rows)
	}
	return s.rows[:limit], nil
}

type stubSessions struct {
	started []string
	ended   []int64
	err     error
}

func (s *stubSessions) Start(_ context.Context, player string) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.started = append(s.started, player)
	return int64(len(s.started)), nil
}

func (s *stubSessions) End(_ context.Context, id int64, _ float64, _ time.Duration) error {
	if s.err != nil {
		return s.err
	}
	s.ended = append(s.ended, id)
	return nil
}

func newTestServer(scores *stubScores, sessions *stubSessions) *Server {
	cfg := &config.Config{Game: config.GameConfig{LeaderboardSize: 3}}
	return NewServer(cfg, scores, sessions, zap.NewNop())
}

func do(s *Server, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.http.Handler.ServeHTTP(rec, req)
	return rec
}

func TestSubmitScoreStoresRow(t *testing.T) {
	scores := &stubScores{}
	s := newTestServer(scores, &stubSessions{})

	rec := do(s, http.MethodPost, "/api/scores",
		`{"player":"ada","altitude":1200,"wave":4,"play_time_ms":90000}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
	var out struct {
		ID int64 `json:"id"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.ID != 1 {
		t.Fatalf("id = %d, want 1", out.ID)
	}
	if len(scores.inserted) != 1 {
		t.Fatalf("inserted %d rows, want 1", len(scores.inserted))
	}
	row := scores.inserted[0]
	if row.Player != "ada" || row.Wave != 4 {
		t.Fatalf("stored row = %+v", row)
	}
	if row.Game != "rocket" {
		t.Fatalf("game defaulted to %q, want %q", row.Game, "rocket")
	}
	if row.PlayTime != 90*time.Second {
		t.Fatalf("play time = %v, want %v", row.PlayTime, 90*time.Second)
	}
}

func TestSubmitScoreValidation(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"malformed json", `{"player":`},
		{"missing player", `{"altitude":10}`},
		{"player too long", `{"player":"` + strings.Repeat("x", 33) + `"}`},
		{"negative altitude", `{"player":"ada","altitude":-1}`},
		{"negative play time", `{"player":"ada","play_time_ms":-5}`},
		{"negative wave", `{"player":"ada","wave":-2}`},
	}

	for _, tc := range cases {
		scores := &stubScores{}
		s := newTestServer(scores, &stubSessions{})
		rec := do(s, http.MethodPost, "/api/scores", tc.body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: status = %d, want %d", tc.name, rec.Code, http.StatusBadRequest)
		}
		if len(scores.inserted) != 0 {
			t.Fatalf("%s: rejected score reached the store", tc.name)
		}
	}
}

func TestTopScoresLimitClamp(t *testing.T) {
	cases := []struct {
		target    string
		wantLimit int
	}{
		{"/api/scores", 3},
		{"/api/scores?limit=50", 3},
		{"/api/scores?limit=2", 2},
	}

	for _, tc := range cases {
		scores := &stubScores{rows: make([]persist.ScoreRow, 5)}
		s := newTestServer(scores, &stubSessions{})
		rec := do(s, http.MethodGet, tc.target, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: status = %d, want %d", tc.target, rec.Code, http.StatusOK)
		}
		if scores.topLimit != tc.wantLimit {
			t.Fatalf("%s: limit = %d, want %d", tc.target, scores.topLimit, tc.wantLimit)
		}
	}
}

func TestTopScoresRejectsBadLimit(t *testing.T) {
	for _, target := range []string{"/api/scores?limit=0", "/api/scores?limit=abc"} {
		s := newTestServer(&stubScores{}, &stubSessions{})
		rec := do(s, http.MethodGet, target, "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: status = %d, want %d", target, rec.Code, http.StatusBadRequest)
		}
	}
}

func TestTopScoresDefaultsGame(t *testing.T) {
	scores := &stubScores{}
	s := newTestServer(scores, &stubSessions{})

	do(s, http.MethodGet, "/api/scores", "")
	if scores.topGame != "rocket" {
		t.Fatalf("game = %q, want %q", scores.topGame, "rocket")
	}

	do(s, http.MethodGet, "/api/scores?game=pong", "")
	if scores.topGame != "pong" {
		t.Fatalf("game = %q, want %q", scores.topGame, "pong")
	}
}

func TestStorageFailureReturns500(t *testing.T) {
	scores := &stubScores{err: errors.New("pool closed")}
	s := newTestServer(scores, &stubSessions{})

	if rec := do(s, http.MethodGet, "/api/scores", ""); rec.Code != http.StatusInternalServerError {
		t.Fatalf("list status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	body := `{"player":"ada","altitude":10}`
	if rec := do(s, http.MethodPost, "/api/scores", body); rec.Code != http.StatusInternalServerError {
		t.Fatalf("submit status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
}

func TestSessionEndpoints(t *testing.T) {
	sessions := &stubSessions{}
	s := newTestServer(&stubScores{}, sessions)

	rec := do(s, http.MethodPost, "/api/sessions", `{"player":"ada"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("start status = %d, want %d", rec.Code, http.StatusCreated)
	}

	rec = do(s, http.MethodPost, "/api/sessions/7/end", `{"final_altitude":400,"play_time_ms":60000}`)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("end status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if len(sessions.ended) != 1 || sessions.ended[0] != 7 {
		t.Fatalf("ended sessions = %v, want [7]", sessions.ended)
	}

	rec = do(s, http.MethodPost, "/api/sessions/abc/end", `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad id status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(&stubScores{}, &stubSessions{})
	if rec := do(s, http.MethodGet, "/healthz", ""); rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
}
