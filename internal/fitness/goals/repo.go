package goals

import (
	"context"
	"errors"
	"fmt"

	"github.com/fittrackhq/fittrack/internal/telemetry/tracing"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrGoalNotFound = errors.New("goal not found")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Add(ctx context.Context, g Goal) (_ *Goal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "goalsRepo.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	err = r.db.QueryRow(ctx,
		`INSERT INTO goal (user_id, goal_type, title, target_value, current_value, unit, deadline, priority, achieved, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING id`,
		g.UserID, g.Type, g.Title, g.TargetValue, g.CurrentValue,
		g.Unit, g.Deadline, g.Priority, g.Achieved, g.CreatedAt,
	).Scan(&g.ID)
	if err != nil {
		return nil, fmt.Errorf("insert goal: %w", err)
	}

	return &g, nil
}

func (r *Repo) Get(ctx context.Context, userID, goalID int) (_ *Goal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "goalsRepo.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var g Goal
	err = r.db.QueryRow(ctx,
		`SELECT id, user_id, goal_type, title, target_value, current_value, unit, deadline, priority, achieved, created_at
			FROM goal WHERE id = $1 AND user_id = $2`,
		goalID, userID,
	).Scan(
		&g.ID, &g.UserID, &g.Type, &g.Title, &g.TargetValue,
		&g.CurrentValue, &g.Unit, &g.Deadline, &g.Priority, &g.Achieved, &g.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrGoalNotFound
	}
	if err != nil {
		return nil, err
	}

	return &g, nil
}

func (r *Repo) List(ctx context.Context, userID int) (_ []Goal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "goalsRepo.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return r.listWhere(ctx, `WHERE user_id = $1`, userID)
}

// ListOpen returns goals not yet marked achieved.
func (r *Repo) ListOpen(ctx context.Context, userID int) (_ []Goal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "goalsRepo.listOpen")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return r.listWhere(ctx, `WHERE user_id = $1 AND achieved = FALSE`, userID)
}

func (r *Repo) listWhere(ctx context.Context, where string, userID int) ([]Goal, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, goal_type, title, target_value, current_value, unit, deadline, priority, achieved, created_at
			FROM goal `+where+` ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []Goal
	for rows.Next() {
		var g Goal
		if err := rows.Scan(
			&g.ID, &g.UserID, &g.Type, &g.Title, &g.TargetValue,
			&g.CurrentValue, &g.Unit, &g.Deadline, &g.Priority, &g.Achieved, &g.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}
		goals = append(goals, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return goals, nil
}

func (r *Repo) Update(ctx context.Context, g Goal) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "goalsRepo.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(ctx,
		`UPDATE goal SET
				goal_type = $1, title = $2, target_value = $3, current_value = $4,
				unit = $5, deadline = $6, priority = $7, achieved = $8
			WHERE id = $9 AND user_id = $10`,
		g.Type, g.Title, g.TargetValue, g.CurrentValue,
		g.Unit, g.Deadline, g.Priority, g.Achieved, g.ID, g.UserID,
	)
	if err != nil {
		return fmt.Errorf("update goal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrGoalNotFound
	}

	return nil
}

func (r *Repo) Delete(ctx context.Context, userID, goalID int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "goalsRepo.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(ctx,
		`DELETE FROM goal WHERE id = $1 AND user_id = $2`,
		goalID, userID,
	)
	if err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrGoalNotFound
	}

	return nil
}
