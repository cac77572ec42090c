package measurements

import (
	"context"
	"fmt"

	"github.com/fittrackhq/fittrack/internal/telemetry/tracing"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Add(ctx context.Context, m BodyMeasurement) (_ *BodyMeasurement, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "measurementsRepo.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	err = r.db.QueryRow(ctx,
		`INSERT INTO body_measurement
				(user_id, measured_at, weight, body_fat, chest, waist, hips, biceps, thighs, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING id`,
		m.UserID, m.Date, m.Weight, m.BodyFat, m.Chest,
		m.Waist, m.Hips, m.Biceps, m.Thighs, m.CreatedAt,
	).Scan(&m.ID)
	if err != nil {
		return nil, fmt.Errorf("insert measurement: %w", err)
	}

	return &m, nil
}

// ListLatest returns the most recent measurements, newest first.
func (r *Repo) ListLatest(ctx context.Context, userID, limit int) (_ []BodyMeasurement, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "measurementsRepo.listLatest")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, measured_at, weight, body_fat, chest, waist, hips, biceps, thighs, created_at
			FROM body_measurement
			WHERE user_id = $1
			ORDER BY measured_at DESC
			LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []BodyMeasurement
	for rows.Next() {
		var m BodyMeasurement
		if err := rows.Scan(
			&m.ID, &m.UserID, &m.Date, &m.Weight, &m.BodyFat, &m.Chest,
			&m.Waist, &m.Hips, &m.Biceps, &m.Thighs, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan measurement: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return out, nil
}
