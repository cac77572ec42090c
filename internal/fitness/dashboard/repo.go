package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fittrackhq/fittrack/internal/telemetry/tracing"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const summaryWindowDays = 30

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

// Summary computes the dashboard aggregate in a handful of queries.
// Values for users with no data come back as zeros, not errors.
func (r *Repo) Summary(ctx context.Context, userID int, now time.Time) (_ *Summary, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "dashboardRepo.summary")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	since := now.AddDate(0, 0, -summaryWindowDays)
	var s Summary

	err = r.db.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(SUM(total_volume), 0), COALESCE(SUM(duration_min), 0), AVG(rating)
			FROM training_session
			WHERE user_id = $1 AND session_date >= $2`,
		userID, since,
	).Scan(&s.Sessions, &s.TotalVolume, &s.TotalDuration, &s.AvgRating)
	if err != nil {
		return nil, fmt.Errorf("session aggregates: %w", err)
	}

	err = r.db.QueryRow(ctx,
		`SELECT COALESCE(MAX(current_streak), 0), COALESCE(MAX(longest_streak), 0)
			FROM workout_streak WHERE user_id = $1`,
		userID,
	).Scan(&s.CurrentStreak, &s.LongestStreak)
	if err != nil {
		return nil, fmt.Errorf("streak state: %w", err)
	}

	err = r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM goal WHERE user_id = $1 AND achieved = FALSE`,
		userID,
	).Scan(&s.OpenGoals)
	if err != nil {
		return nil, fmt.Errorf("open goals: %w", err)
	}

	err = r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM personal_record WHERE user_id = $1 AND achieved_at >= $2`,
		userID, since,
	).Scan(&s.NewRecords)
	if err != nil {
		return nil, fmt.Errorf("record count: %w", err)
	}

	err = r.db.QueryRow(ctx,
		`SELECT weight FROM daily_progress
			WHERE user_id = $1 AND weight IS NOT NULL
			ORDER BY entry_date DESC LIMIT 1`,
		userID,
	).Scan(&s.LatestWeightKG)
	if errors.Is(err, pgx.ErrNoRows) {
		err = nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest weight: %w", err)
	}

	rows, err := r.db.Query(ctx,
		`SELECT session_date::date, COUNT(*) FROM training_session
			WHERE user_id = $1 AND session_date >= $2
			GROUP BY session_date::date
			ORDER BY session_date::date`,
		userID, since,
	)
	if err != nil {
		return nil, fmt.Errorf("activity calendar: %w", err)
	}
	defer rows.Close()

	s.Calendar = []DayActivity{}
	for rows.Next() {
		var day time.Time
		var d DayActivity
		if err = rows.Scan(&day, &d.Sessions); err != nil {
			return nil, fmt.Errorf("scan calendar day: %w", err)
		}
		d.Date = day.Format("2006-01-02")
		s.Calendar = append(s.Calendar, d)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("calendar rows: %w", err)
	}

	return &s, nil
}
