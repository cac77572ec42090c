package routines

import (
	"context"
	"errors"
	"fmt"

	"github.com/fittrackhq/fittrack/internal/telemetry/tracing"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrRoutineNotFound = errors.New("routine not found")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Add(ctx context.Context, rt Routine) (_ *Routine, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "routinesRepo.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	err = r.db.QueryRow(ctx,
		`INSERT INTO routine (user_id, name, description, difficulty, is_favorite, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id`,
		rt.UserID, rt.Name, rt.Description, rt.Difficulty, rt.IsFavorite, rt.CreatedAt,
	).Scan(&rt.ID)
	if err != nil {
		return nil, fmt.Errorf("insert routine: %w", err)
	}

	return &rt, nil
}

func (r *Repo) Get(ctx context.Context, userID, routineID int) (_ *Routine, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "routinesRepo.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var rt Routine
	err = r.db.QueryRow(ctx,
		`SELECT id, user_id, name, description, difficulty, is_favorite, created_at
			FROM routine WHERE id = $1 AND user_id = $2`,
		routineID, userID,
	).Scan(&rt.ID, &rt.UserID, &rt.Name, &rt.Description, &rt.Difficulty, &rt.IsFavorite, &rt.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrRoutineNotFound
	}
	if err != nil {
		return nil, err
	}

	rt.Exercises, err = r.exercisesFor(ctx, rt.ID)
	if err != nil {
		return nil, err
	}

	return &rt, nil
}

// List returns the user's routines newest first, each with its ordered
// exercise list.
func (r *Repo) List(ctx context.Context, userID int) (_ []Routine, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "routinesRepo.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, name, description, difficulty, is_favorite, created_at
			FROM routine WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var routines []Routine
	for rows.Next() {
		var rt Routine
		if err := rows.Scan(
			&rt.ID, &rt.UserID, &rt.Name, &rt.Description, &rt.Difficulty, &rt.IsFavorite, &rt.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan routine: %w", err)
		}
		routines = append(routines, rt)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range routines {
		routines[i].Exercises, err = r.exercisesFor(ctx, routines[i].ID)
		if err != nil {
			return nil, err
		}
	}

	return routines, nil
}

func (r *Repo) exercisesFor(ctx context.Context, routineID int) ([]RoutineExercise, error) {
	rows, err := r.db.Query(ctx,
		`SELECT exercise_id, position, target_sets, target_reps, target_weight, rest_sec, notes
			FROM routine_exercise WHERE routine_id = $1 ORDER BY position`,
		routineID,
	)
	if err != nil {
		return nil, fmt.Errorf("list routine exercises: %w", err)
	}
	defer rows.Close()

	exercises := []RoutineExercise{}
	for rows.Next() {
		var e RoutineExercise
		if err := rows.Scan(
			&e.ExerciseID, &e.Position, &e.TargetSets, &e.TargetReps, &e.TargetWeight, &e.RestSec, &e.Notes,
		); err != nil {
			return nil, fmt.Errorf("scan routine exercise: %w", err)
		}
		exercises = append(exercises, e)
	}
	return exercises, rows.Err()
}

func (r *Repo) Update(ctx context.Context, rt Routine) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "routinesRepo.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(ctx,
		`UPDATE routine SET name = $1, description = $2, difficulty = $3, is_favorite = $4
			WHERE id = $5 AND user_id = $6`,
		rt.Name, rt.Description, rt.Difficulty, rt.IsFavorite, rt.ID, rt.UserID,
	)
	if err != nil {
		return fmt.Errorf("update routine: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrRoutineNotFound
	}

	return nil
}

// ReplaceExercises swaps the whole exercise list of a routine for the
// given one. Delete and re-insert run in one transaction, a reorder
// never leaves the routine half-rewritten.
func (r *Repo) ReplaceExercises(ctx context.Context, userID, routineID int, exercises []RoutineExercise) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "routinesRepo.replaceExercises")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		err = tx.Commit(ctx)
	}()

	var routineOwner int
	err = tx.QueryRow(ctx,
		`SELECT user_id FROM routine WHERE id = $1 FOR UPDATE`, routineID,
	).Scan(&routineOwner)
	if errors.Is(err, pgx.ErrNoRows) || (err == nil && routineOwner != userID) {
		return ErrRoutineNotFound
	}
	if err != nil {
		return err
	}

	if _, err = tx.Exec(ctx,
		`DELETE FROM routine_exercise WHERE routine_id = $1`, routineID,
	); err != nil {
		return fmt.Errorf("clear routine exercises: %w", err)
	}

	for _, e := range exercises {
		if _, err = tx.Exec(ctx,
			`INSERT INTO routine_exercise
					(routine_id, exercise_id, position, target_sets, target_reps, target_weight, rest_sec, notes)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			routineID, e.ExerciseID, e.Position, e.TargetSets, e.TargetReps, e.TargetWeight, e.RestSec, e.Notes,
		); err != nil {
			return fmt.Errorf("insert routine exercise %d: %w", e.ExerciseID, err)
		}
	}

	return nil
}

func (r *Repo) AddExercise(ctx context.Context, userID, routineID int, e RoutineExercise) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "routinesRepo.addExercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err = r.checkOwner(ctx, userID, routineID); err != nil {
		return err
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO routine_exercise
				(routine_id, exercise_id, position, target_sets, target_reps, target_weight, rest_sec, notes)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		routineID, e.ExerciseID, e.Position, e.TargetSets, e.TargetReps, e.TargetWeight, e.RestSec, e.Notes,
	)
	if err != nil {
		return fmt.Errorf("insert routine exercise: %w", err)
	}

	return nil
}

func (r *Repo) RemoveExercise(ctx context.Context, userID, routineID, exerciseID int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "routinesRepo.removeExercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err = r.checkOwner(ctx, userID, routineID); err != nil {
		return err
	}

	_, err = r.db.Exec(ctx,
		`DELETE FROM routine_exercise WHERE routine_id = $1 AND exercise_id = $2`,
		routineID, exerciseID,
	)
	if err != nil {
		return fmt.Errorf("delete routine exercise: %w", err)
	}

	return nil
}

// Delete removes the routine, its exercise links go with it via the
// foreign key cascade.
func (r *Repo) Delete(ctx context.Context, userID, routineID int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "routinesRepo.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(ctx,
		`DELETE FROM routine WHERE id = $1 AND user_id = $2`,
		routineID, userID,
	)
	if err != nil {
		return fmt.Errorf("delete routine: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrRoutineNotFound
	}

	return nil
}

func (r *Repo) checkOwner(ctx context.Context, userID, routineID int) error {
	var owner int
	err := r.db.QueryRow(ctx,
		`SELECT user_id FROM routine WHERE id = $1`, routineID,
	).Scan(&owner)
	if errors.Is(err, pgx.ErrNoRows) || (err == nil && owner != userID) {
		return ErrRoutineNotFound
	}
	return err
}
