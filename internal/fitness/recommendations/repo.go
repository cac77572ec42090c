package recommendations

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fittrackhq/fittrack/internal/fitness/exercises"
	"github.com/fittrackhq/fittrack/internal/fitness/goals"
	"github.com/fittrackhq/fittrack/internal/fitness/measurements"
	"github.com/fittrackhq/fittrack/internal/fitness/progress"
	"github.com/fittrackhq/fittrack/internal/fitness/records"
	"github.com/fittrackhq/fittrack/internal/fitness/sessions"
	"github.com/fittrackhq/fittrack/internal/fitness/users"
	"github.com/fittrackhq/fittrack/internal/telemetry/tracing"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrRecommendationNotFound = errors.New("recommendation not found")

const (
	snapshotSessionDays  = 30
	snapshotWellnessDays = 30
	snapshotRecordDays   = 30
	weightReadingCount   = 5
)

// Repo owns the recommendation table and composes the other feature
// repos to gather the engine snapshot.
type Repo struct {
	db           *pgxpool.Pool
	users        *users.Repo
	sessions     *sessions.Repo
	goals        *goals.Repo
	progress     *progress.Repo
	records      *records.Repo
	measurements *measurements.Repo
	exercises    *exercises.Repo
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db:           db,
		users:        users.NewRepo(db),
		sessions:     sessions.NewRepo(db),
		goals:        goals.NewRepo(db),
		progress:     progress.NewRepo(db),
		records:      records.NewRepo(db),
		measurements: measurements.NewRepo(db),
		exercises:    exercises.NewRepo(db),
	}
}

// Snapshot gathers everything the rule sets need in one go.
func (r *Repo) Snapshot(ctx context.Context, userID int, now time.Time) (_ *Snapshot, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "recommendationsRepo.snapshot")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	user, err := r.users.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	trainingSessions, err := r.sessions.ListSince(ctx, userID, now.AddDate(0, 0, -snapshotSessionDays), 0)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	openGoals, err := r.goals.ListOpen(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list open goals: %w", err)
	}

	wellness, err := r.progress.ListRange(ctx, userID, now.AddDate(0, 0, -snapshotWellnessDays), now)
	if err != nil {
		return nil, fmt.Errorf("list wellness entries: %w", err)
	}

	recentRecords, err := r.records.ListSince(ctx, userID, now.AddDate(0, 0, -snapshotRecordDays))
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}

	weights, err := r.weightReadings(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("gather weight readings: %w", err)
	}

	muscleGroups, err := r.exercises.MuscleGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("load muscle groups: %w", err)
	}

	return &Snapshot{
		UserID:        userID,
		FitnessGoal:   user.FitnessGoal,
		Sessions:      trainingSessions,
		OpenGoals:     openGoals,
		Wellness:      wellness,
		Weights:       weights,
		RecentRecords: recentRecords,
		MuscleGroups:  muscleGroups,
		Now:           now,
	}, nil
}

// weightReadings takes the weights of the last few body measurements,
// newest first. No age cutoff, a monthly weigher still gets a trend.
func (r *Repo) weightReadings(ctx context.Context, userID int) ([]WeightReading, error) {
	measured, err := r.measurements.ListLatest(ctx, userID, weightReadingCount)
	if err != nil {
		return nil, err
	}

	var readings []WeightReading
	for _, m := range measured {
		if m.Weight != nil {
			readings = append(readings, WeightReading{Date: m.Date, Value: *m.Weight})
		}
	}
	return readings, nil
}

func (r *Repo) Insert(ctx context.Context, rec Recommendation) (_ *Recommendation, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "recommendationsRepo.insert")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	basedOnJSON, err := json.Marshal(rec.BasedOn)
	if err != nil {
		return nil, fmt.Errorf("marshal basedOn: %w", err)
	}

	err = r.db.QueryRow(ctx,
		`INSERT INTO recommendation
				(user_id, rec_type, title, description, priority, based_on, confidence, status, expires_at, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING id`,
		rec.UserID, rec.Type, rec.Title, rec.Description, rec.Priority,
		basedOnJSON, rec.Confidence, rec.Status, rec.ExpiresAt, rec.CreatedAt,
	).Scan(&rec.ID)
	if err != nil {
		return nil, fmt.Errorf("insert recommendation: %w", err)
	}

	return &rec, nil
}

// List returns recommendations for a user, optionally filtered by
// status, newest first. Expired active ones are skipped.
func (r *Repo) List(ctx context.Context, userID int, status Status, now time.Time) (_ []Recommendation, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "recommendationsRepo.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	query := `SELECT id, user_id, rec_type, title, description, priority, based_on, confidence, status, expires_at, created_at
		FROM recommendation
		WHERE user_id = $1 AND (expires_at IS NULL OR expires_at > $2)`
	args := []any{userID, now}
	if status != "" {
		query += ` AND status = $3`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []Recommendation
	for rows.Next() {
		var rec Recommendation
		var basedOnJSON []byte
		if err := rows.Scan(
			&rec.ID, &rec.UserID, &rec.Type, &rec.Title, &rec.Description, &rec.Priority,
			&basedOnJSON, &rec.Confidence, &rec.Status, &rec.ExpiresAt, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan recommendation: %w", err)
		}
		if len(basedOnJSON) > 0 {
			if err := json.Unmarshal(basedOnJSON, &rec.BasedOn); err != nil {
				return nil, fmt.Errorf("unmarshal basedOn: %w", err)
			}
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return recs, nil
}

func (r *Repo) UpdateStatus(ctx context.Context, userID, recID int, status Status) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "recommendationsRepo.updateStatus")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(ctx,
		`UPDATE recommendation SET status = $1 WHERE id = $2 AND user_id = $3`,
		status, recID, userID,
	)
	if err != nil {
		return fmt.Errorf("update recommendation status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrRecommendationNotFound
	}

	return nil
}
