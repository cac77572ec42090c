package records

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fittrackhq/fittrack/internal/telemetry/tracing"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

// InsertIfBest writes the candidate record in a single conditional
// insert. The WHERE NOT EXISTS guard makes the compare and the write
// one statement, so two concurrent candidates for the same best cannot
// both win.
func (r *Repo) InsertIfBest(ctx context.Context, rec PersonalRecord) (_ *PersonalRecord, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "recordsRepo.insertIfBest")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	err = r.db.QueryRow(ctx,
		`INSERT INTO personal_record (user_id, exercise_id, record_type, value, reps, weight, achieved_at)
			SELECT $1, $2, $3, $4, $5, $6, $7
			WHERE NOT EXISTS (
				SELECT 1 FROM personal_record
				WHERE user_id = $1 AND exercise_id = $2 AND record_type = $3 AND value >= $4
			)
			RETURNING id`,
		rec.UserID, rec.ExerciseID, rec.Type, rec.Value, rec.Reps, rec.Weight, rec.Date,
	).Scan(&rec.ID)
	if errors.Is(err, pgx.ErrNoRows) {
		// stored best is at least as good, not a new record
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("insert record: %w", err)
	}

	return &rec, nil
}

// ListBest returns the current best per exercise and record type for a
// user, newest achievements first.
func (r *Repo) ListBest(ctx context.Context, userID int) (_ []PersonalRecord, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "recordsRepo.listBest")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx,
		`SELECT DISTINCT ON (exercise_id, record_type)
				id, user_id, exercise_id, record_type, value, reps, weight, achieved_at
			FROM personal_record
			WHERE user_id = $1
			ORDER BY exercise_id, record_type, value DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRecords(rows)
}

// ListSince returns every record achieved at or after the given time.
func (r *Repo) ListSince(ctx context.Context, userID int, since time.Time) (_ []PersonalRecord, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "recordsRepo.listSince")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, exercise_id, record_type, value, reps, weight, achieved_at
			FROM personal_record
			WHERE user_id = $1 AND achieved_at >= $2
			ORDER BY achieved_at DESC`,
		userID, since,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRecords(rows)
}

func scanRecords(rows pgx.Rows) ([]PersonalRecord, error) {
	var records []PersonalRecord
	for rows.Next() {
		var rec PersonalRecord
		if err := rows.Scan(
			&rec.ID, &rec.UserID, &rec.ExerciseID, &rec.Type,
			&rec.Value, &rec.Reps, &rec.Weight, &rec.Date,
		); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
