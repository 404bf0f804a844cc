package persist

import (
	"context"
	"time"
)

// ScoreRow is one leaderboard record. Wave and level are zero for games that
// do not have them (Rocket to Heaven scores purely on altitude).
type ScoreRow struct {
	ID        int64
	Player    string
	Game      string
	Altitude  float64
	Wave      int
	Level     int
	PlayTime  time.Duration
	CreatedAt time.Time
}

type ScoreRepo struct {
	db *DB
}

func NewScoreRepo(db *DB) *ScoreRepo {
	return &ScoreRepo{db: db}
}

// Insert records a finished run and returns its id.
func (r *ScoreRepo) Insert(ctx context.Context, s ScoreRow) (int64, error) {
	var id int64
	err := r.db.Pool.QueryRow(ctx,
		`INSERT INTO scores (player, game, altitude, wave, level, play_time)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		s.Player, s.Game, s.Altitude, s.Wave, s.Level, s.PlayTime.Milliseconds(),
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Top returns the best runs for a game, highest altitude first.
func (r *ScoreRepo) Top(ctx context.Context, game string, limit int) ([]ScoreRow, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT id, player, game, altitude, wave, level, play_time, created_at
		 FROM scores
		 WHERE game = $1
		 ORDER BY altitude DESC, play_time ASC
		 LIMIT $2`,
		game, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ScoreRow
	for rows.Next() {
		var s ScoreRow
		var playMS int64
		if err := rows.Scan(&s.ID, &s.Player, &s.Game, &s.Altitude, &s.Wave, &s.Level, &playMS, &s.CreatedAt); err != nil {
			return nil, err
		}
		s.PlayTime = time.Duration(playMS) * time.Millisecond
		out = append(out, s)
	}
	return out, rows.Err()
}
