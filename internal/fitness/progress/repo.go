package progress

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fittrackhq/fittrack/internal/telemetry/tracing"
	"github.com/fittrackhq/fittrack/pkg"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrEntryNotFound = errors.New("progress entry not found")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

// Upsert writes the entry for its calendar day, replacing any earlier
// entry for the same day. One row per user and day.
func (r *Repo) Upsert(ctx context.Context, entry DailyProgress) (_ *DailyProgress, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "progressRepo.upsert")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	entry.Date = pkg.CalendarDay(entry.Date)
	err = r.db.QueryRow(ctx,
		`INSERT INTO daily_progress
				(user_id, entry_date, weight, sleep_hours, water_intake_ml, calories_consumed, calories_burned, mood, notes)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT (user_id, entry_date) DO UPDATE SET
				weight = EXCLUDED.weight,
				sleep_hours = EXCLUDED.sleep_hours,
				water_intake_ml = EXCLUDED.water_intake_ml,
				calories_consumed = EXCLUDED.calories_consumed,
				calories_burned = EXCLUDED.calories_burned,
				mood = EXCLUDED.mood,
				notes = EXCLUDED.notes
			RETURNING id`,
		entry.UserID, entry.Date, entry.Weight, entry.SleepHours, entry.WaterIntakeML,
		entry.CaloriesConsumed, entry.CaloriesBurned, entry.Mood, entry.Notes,
	).Scan(&entry.ID)
	if err != nil {
		return nil, fmt.Errorf("upsert progress entry: %w", err)
	}

	return &entry, nil
}

// ListRange returns entries with from <= date <= to, newest first.
func (r *Repo) ListRange(ctx context.Context, userID int, from, to time.Time) (_ []DailyProgress, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "progressRepo.listRange")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, entry_date, weight, sleep_hours, water_intake_ml, calories_consumed, calories_burned, mood, notes
			FROM daily_progress
			WHERE user_id = $1 AND entry_date BETWEEN $2 AND $3
			ORDER BY entry_date DESC`,
		userID, pkg.CalendarDay(from), pkg.CalendarDay(to),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []DailyProgress
	for rows.Next() {
		var e DailyProgress
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.Date, &e.Weight, &e.SleepHours, &e.WaterIntakeML,
			&e.CaloriesConsumed, &e.CaloriesBurned, &e.Mood, &e.Notes,
		); err != nil {
			return nil, fmt.Errorf("scan progress entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *Repo) Delete(ctx context.Context, userID int, date time.Time) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "progressRepo.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(ctx,
		`DELETE FROM daily_progress WHERE user_id = $1 AND entry_date = $2`,
		userID, pkg.CalendarDay(date),
	)
	if err != nil {
		return fmt.Errorf("delete progress entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrEntryNotFound
	}

	return nil
}
