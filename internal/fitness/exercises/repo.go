package exercises

import (
	"context"
	"errors"
	"fmt"

	"github.com/fittrackhq/fittrack/internal/telemetry/tracing"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrExerciseNotFound = errors.New("exercise not found")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Add(ctx context.Context, e Exercise) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "exercisesRepo.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	err = r.db.QueryRow(ctx,
		`INSERT INTO exercise (name, muscle_group, difficulty, equipment, description)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id`,
		e.Name, e.MuscleGroup, e.Difficulty, e.Equipment, e.Description,
	).Scan(&e.ID)
	if err != nil {
		return nil, fmt.Errorf("insert exercise: %w", err)
	}

	return &e, nil
}

func (r *Repo) Get(ctx context.Context, exerciseID int) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "exercisesRepo.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var e Exercise
	err = r.db.QueryRow(ctx,
		`SELECT id, name, muscle_group, difficulty, equipment, description
			FROM exercise WHERE id = $1`,
		exerciseID,
	).Scan(&e.ID, &e.Name, &e.MuscleGroup, &e.Difficulty, &e.Equipment, &e.Description)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrExerciseNotFound
	}
	if err != nil {
		return nil, err
	}

	return &e, nil
}

func (r *Repo) List(ctx context.Context) (_ []Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "exercisesRepo.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx,
		`SELECT id, name, muscle_group, difficulty, equipment, description
			FROM exercise ORDER BY muscle_group, name`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Exercise
	for rows.Next() {
		var e Exercise
		if err := rows.Scan(&e.ID, &e.Name, &e.MuscleGroup, &e.Difficulty, &e.Equipment, &e.Description); err != nil {
			return nil, fmt.Errorf("scan exercise: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

// MuscleGroups returns the exercise id to muscle group mapping for the
// whole catalog, for the analytics that aggregate per muscle group.
func (r *Repo) MuscleGroups(ctx context.Context) (_ map[int]string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "exercisesRepo.muscleGroups")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `SELECT id, muscle_group FROM exercise`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	groups := make(map[int]string)
	for rows.Next() {
		var id int
		var group string
		if err := rows.Scan(&id, &group); err != nil {
			return nil, fmt.Errorf("scan muscle group: %w", err)
		}
		groups[id] = group
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return groups, nil
}

func (r *Repo) Update(ctx context.Context, e Exercise) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "exercisesRepo.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(ctx,
		`UPDATE exercise SET
				name = $1, muscle_group = $2, difficulty = $3, equipment = $4, description = $5
			WHERE id = $6`,
		e.Name, e.MuscleGroup, e.Difficulty, e.Equipment, e.Description, e.ID,
	)
	if err != nil {
		return fmt.Errorf("update exercise: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrExerciseNotFound
	}

	return nil
}
