package persist

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/jvesely/arcade/internal/game"
)

const recorderTimeout = 3 * time.Second

// Recorder implements game.Recorder against the sessions and scores tables.
// Failures are logged and swallowed so a flaky database never interrupts a
// run in progress.
type Recorder struct {
	sessions *SessionRepo
	scores   *ScoreRepo
	player   string
	game     string
	log      *zap.Logger
}

func NewRecorder(db *DB, player string, log *zap.Logger) *Recorder {
	return &Recorder{
		sessions: NewSessionRepo(db),
		scores:   NewScoreRepo(db),
		player:   player,
		game:     "rocket",
		log:      log,
	}
}

func (r *Recorder) StartSession(ctx context.Context) (game.SessionHandle, error) {
	ctx, cancel := context.WithTimeout(ctx, recorderTimeout)
	defer cancel()

	id, err := r.sessions.Start(ctx, r.player)
	if err != nil {
		r.log.Warn("start session", zap.String("player", r.player), zap.Error(err))
		return 0, nil
	}
	return game.SessionHandle(id), nil
}

func (r *Recorder) EndSession(ctx context.Context, h game.SessionHandle, finalAltitude float64, playTime time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, recorderTimeout)
	defer cancel()

	if h != 0 {
		if err := r.sessions.End(ctx, int64(h), finalAltitude, playTime); err != nil {
			r.log.Warn("end session", zap.Int64("session", int64(h)), zap.Error(err))
		}
	}
	score := ScoreRow{
		Player:   r.player,
		Game:     r.game,
		Altitude: finalAltitude,
		PlayTime: playTime,
	}
	if _, err := r.scores.Insert(ctx, score); err != nil {
		r.log.Warn("record score", zap.String("player", r.player), zap.Error(err))
	}
	return nil
}
