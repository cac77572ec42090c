package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fittrackhq/fittrack/internal/telemetry/tracing"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrSessionNotFound = errors.New("session not found")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

// Add stores a session with its workout logs in one transaction. The
// per-log sets go into a jsonb column, they are only ever read back as
// a whole.
func (r *Repo) Add(ctx context.Context, session TrainingSession) (_ *TrainingSession, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "sessionsRepo.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		err = tx.Commit(ctx)
	}()

	err = tx.QueryRow(ctx,
		`INSERT INTO training_session (user_id, session_date, duration_min, total_volume, rating, notes)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id`,
		session.UserID, session.Date, session.DurationMin,
		session.TotalVolume, session.Rating, session.Notes,
	).Scan(&session.ID)
	if err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}

	for i := range session.Logs {
		l := &session.Logs[i]
		setsJSON, mErr := json.Marshal(l.Sets)
		if mErr != nil {
			return nil, fmt.Errorf("marshal sets: %w", mErr)
		}
		err = tx.QueryRow(ctx,
			`INSERT INTO workout_log (session_id, exercise_id, sets, notes)
				VALUES ($1, $2, $3, $4)
				RETURNING id`,
			session.ID, l.ExerciseID, setsJSON, l.Notes,
		).Scan(&l.ID)
		if err != nil {
			return nil, fmt.Errorf("insert workout log: %w", err)
		}
	}

	return &session, nil
}

// Get returns one session with its logs.
func (r *Repo) Get(ctx context.Context, userID, sessionID int) (_ *TrainingSession, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "sessionsRepo.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var s TrainingSession
	err = r.db.QueryRow(ctx,
		`SELECT id, user_id, session_date, duration_min, total_volume, rating, notes
			FROM training_session WHERE id = $1 AND user_id = $2`,
		sessionID, userID,
	).Scan(&s.ID, &s.UserID, &s.Date, &s.DurationMin, &s.TotalVolume, &s.Rating, &s.Notes)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	if s.Logs, err = r.logsForSession(ctx, s.ID); err != nil {
		return nil, err
	}

	return &s, nil
}

// ListSince returns sessions dated at or after since, newest first,
// capped at limit. A limit of zero means no cap.
func (r *Repo) ListSince(ctx context.Context, userID int, since time.Time, limit int) (_ []TrainingSession, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "sessionsRepo.listSince")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	query := `SELECT id, user_id, session_date, duration_min, total_volume, rating, notes
		FROM training_session
		WHERE user_id = $1 AND session_date >= $2
		ORDER BY session_date DESC`
	args := []any{userID, since}
	if limit > 0 {
		query += ` LIMIT $3`
		args = append(args, limit)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []TrainingSession
	for rows.Next() {
		var s TrainingSession
		if err := rows.Scan(
			&s.ID, &s.UserID, &s.Date, &s.DurationMin,
			&s.TotalVolume, &s.Rating, &s.Notes,
		); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range sessions {
		if sessions[i].Logs, err = r.logsForSession(ctx, sessions[i].ID); err != nil {
			return nil, err
		}
	}

	return sessions, nil
}

func (r *Repo) Delete(ctx context.Context, userID, sessionID int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "sessionsRepo.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	// workout_log rows go via ON DELETE CASCADE
	tag, err := r.db.Exec(ctx,
		`DELETE FROM training_session WHERE id = $1 AND user_id = $2`,
		sessionID, userID,
	)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSessionNotFound
	}

	return nil
}

func (r *Repo) logsForSession(ctx context.Context, sessionID int) ([]WorkoutLog, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, exercise_id, sets, notes FROM workout_log WHERE session_id = $1 ORDER BY id`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []WorkoutLog
	for rows.Next() {
		var l WorkoutLog
		var setsJSON []byte
		if err := rows.Scan(&l.ID, &l.ExerciseID, &setsJSON, &l.Notes); err != nil {
			return nil, fmt.Errorf("scan workout log: %w", err)
		}
		if err := json.Unmarshal(setsJSON, &l.Sets); err != nil {
			return nil, fmt.Errorf("unmarshal sets: %w", err)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return logs, nil
}
