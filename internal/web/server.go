// Package web serves the arcade landing page and the scores API.
package web

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/jvesely/arcade/internal/config"
	"github.com/jvesely/arcade/internal/persist"
)

//go:embed index.html
var indexPage []byte

const defaultGame = "rocket"

// ScoreStore is the slice of the score repository the handlers use.
type ScoreStore interface {
	Insert(ctx context.Context, s persist.ScoreRow) (int64, error)
	Top(ctx context.Context, game string, limit int) ([]persist.ScoreRow, error)
}

// SessionStore records play sessions submitted over HTTP.
type SessionStore interface {
	Start(ctx context.Context, player string) (int64, error)
	End(ctx context.Context, id int64, finalAltitude float64, playTime time.Duration) error
}

// Server is the public HTTP surface: a landing page describing how to
// connect over SSH, plus a small JSON API for scores.
type Server struct {
	scores   ScoreStore
	sessions SessionStore
	cfg      config.GameConfig
	log      *zap.Logger
	http     *http.Server
}

func NewServer(cfg *config.Config, scores ScoreStore, sessions SessionStore, log *zap.Logger) *Server {
	s := &Server{
		scores:   scores,
		sessions: sessions,
		cfg:      cfg.Game,
		log:      log,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /", s.handleIndex)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /api/scores", s.handleTopScores)
	mux.HandleFunc("POST /api/scores", s.handleSubmitScore)
	mux.HandleFunc("POST /api/sessions", s.handleStartSession)
	mux.HandleFunc("POST /api/sessions/{id}/end", s.handleEndSession)

	s.http = &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      mux,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	return s
}

// ListenAndServe blocks until the server fails or is shut down.
func (s *Server) ListenAndServe() error {
	s.log.Info("http server listening", zap.String("addr", s.http.Addr))
	err := s.http.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexPage)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

type scoreJSON struct {
	Player     string  `json:"player"`
	Game       string  `json:"game"`
	Altitude   float64 `json:"altitude"`
	Wave       int     `json:"wave,omitempty"`
	Level      int     `json:"level,omitempty"`
	PlayTimeMS int64   `json:"play_time_ms"`
	CreatedAt  string  `json:"created_at,omitempty"`
}

func (s *Server) handleTopScores(w http.ResponseWriter, r *http.Request) {
	game := r.URL.Query().Get("game")
	if game == "" {
		game = defaultGame
	}

	limit := s.cfg.LeaderboardSize
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			httpError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		if n < limit {
			limit = n
		}
	}

	rows, err := s.scores.Top(r.Context(), game, limit)
	if err != nil {
		s.log.Error("list scores", zap.String("game", game), zap.Error(err))
		httpError(w, http.StatusInternalServerError, "storage unavailable")
		return
	}

	out := make([]scoreJSON, 0, len(rows))
	for _, row := range rows {
		out = append(out, scoreJSON{
			Player:     row.Player,
			Game:       row.Game,
			Altitude:   row.Altitude,
			Wave:       row.Wave,
			Level:      row.Level,
			PlayTimeMS: row.PlayTime.Milliseconds(),
			CreatedAt:  row.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleSubmitScore(w http.ResponseWriter, r *http.Request) {
	var in scoreJSON
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if in.Player == "" || len(in.Player) > 32 {
		httpError(w, http.StatusBadRequest, "player name required, at most 32 chars")
		return
	}
	if in.Altitude < 0 || in.PlayTimeMS < 0 || in.Wave < 0 || in.Level < 0 {
		httpError(w, http.StatusBadRequest, "score fields must be non-negative")
		return
	}
	if in.Game == "" {
		in.Game = defaultGame
	}

	id, err := s.scores.Insert(r.Context(), persist.ScoreRow{
		Player:   in.Player,
		Game:     in.Game,
		Altitude: in.Altitude,
		Wave:     in.Wave,
		Level:    in.Level,
		PlayTime: time.Duration(in.PlayTimeMS) * time.Millisecond,
	})
	if err != nil {
		s.log.Error("insert score", zap.String("player", in.Player), zap.Error(err))
		httpError(w, http.StatusInternalServerError, "storage unavailable")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Player string `json:"player"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpError(w, http.StatusBadRequest, "invalid body")
		return
	}

	id, err := s.sessions.Start(r.Context(), in.Player)
	if err != nil {
		s.log.Error("start session", zap.Error(err))
		httpError(w, http.StatusInternalServerError, "storage unavailable")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (s *Server) handleEndSession(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		httpError(w, http.StatusBadRequest, "invalid session id")
		return
	}

	var in struct {
		FinalAltitude float64 `json:"final_altitude"`
		PlayTimeMS    int64   `json:"play_time_ms"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpError(w, http.StatusBadRequest, "invalid body")
		return
	}

	if err := s.sessions.End(r.Context(), id, in.FinalAltitude,
		time.Duration(in.PlayTimeMS)*time.Millisecond); err != nil {
		s.log.Error("end session", zap.Int64("session", id), zap.Error(err))
		httpError(w, http.StatusInternalServerError, "storage unavailable")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func httpError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
