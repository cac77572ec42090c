package streak

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fittrackhq/fittrack/internal/telemetry/tracing"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrStreakNotFound = errors.New("streak not found")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

// Get returns the stored streak state for a user, without applying any
// decay. Users with no recorded activity get ErrStreakNotFound.
func (r *Repo) Get(ctx context.Context, userID int) (_ *Streak, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "streakRepo.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var s Streak
	err = r.db.QueryRow(ctx,
		`SELECT user_id, current_streak, longest_streak, last_activity_date
			FROM workout_streak WHERE user_id = $1`,
		userID,
	).Scan(&s.UserID, &s.CurrentStreak, &s.LongestStreak, &s.LastActivityDate)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrStreakNotFound
	}
	if err != nil {
		return nil, err
	}

	return &s, nil
}

// RecordActivity applies one activity date to the user's streak and
// returns the resulting state. The read-compute-write runs in a single
// transaction with the row locked, so concurrent recordings for the
// same user serialize at the database instead of racing.
func (r *Repo) RecordActivity(ctx context.Context, userID int, activityDate time.Time) (_ *Streak, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "streakRepo.recordActivity")
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

	var existing *Streak
	var s Streak
	err = tx.QueryRow(ctx,
		`SELECT user_id, current_streak, longest_streak, last_activity_date
			FROM workout_streak WHERE user_id = $1 FOR UPDATE`,
		userID,
	).Scan(&s.UserID, &s.CurrentStreak, &s.LongestStreak, &s.LastActivityDate)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		existing = nil
	case err != nil:
		return nil, err
	default:
		existing = &s
	}

	next, changed := Advance(existing, userID, activityDate)
	if !changed {
		return &next, nil
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO workout_streak (user_id, current_streak, longest_streak, last_activity_date)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (user_id) DO UPDATE SET
				current_streak = EXCLUDED.current_streak,
				longest_streak = EXCLUDED.longest_streak,
				last_activity_date = EXCLUDED.last_activity_date`,
		next.UserID, next.CurrentStreak, next.LongestStreak, next.LastActivityDate,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert streak: %w", err)
	}

	return &next, nil
}
