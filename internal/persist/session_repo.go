package persist

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
)

type SessionRow struct {
	ID            int64
	Player        string
	StartedAt     time.Time
	EndedAt       *time.Time
	FinalAltitude *float64
	PlayTime      *time.Duration
}

type SessionRepo struct {
	db *DB
}

func NewSessionRepo(db *DB) *SessionRepo {
	return &SessionRepo{db: db}
}

// Start opens a session row and returns its id.
func (r *SessionRepo) Start(ctx context.Context, player string) (int64, error) {
	var id int64
	err := r.db.Pool.QueryRow(ctx,
		`INSERT INTO sessions (player) VALUES ($1) RETURNING id`,
		player,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// End closes a session row. Ending an already ended or unknown session is
// not an error.
func (r *SessionRepo) End(ctx context.Context, id int64, finalAltitude float64, playTime time.Duration) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE sessions
		 SET ended_at = now(), final_altitude = $2, play_time = $3
		 WHERE id = $1 AND ended_at IS NULL`,
		id, finalAltitude, playTime.Milliseconds(),
	)
	return err
}

// Load fetches a session row, or nil when it does not exist.
func (r *SessionRepo) Load(ctx context.Context, id int64) (*SessionRow, error) {
	row := &SessionRow{}
	var playMS *int64
	err := r.db.Pool.QueryRow(ctx,
		`SELECT id, player, started_at, ended_at, final_altitude, play_time
		 FROM sessions WHERE id = $1`, id,
	).Scan(&row.ID, &row.Player, &row.StartedAt, &row.EndedAt, &row.FinalAltitude, &playMS)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if playMS != nil {
		d := time.Duration(*playMS) * time.Millisecond
		row.PlayTime = &d
	}
	return row, nil
}
