package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/fittrackhq/fittrack/internal/auth"
	"github.com/fittrackhq/fittrack/internal/telemetry/tracing"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Create(ctx context.Context, u User, passwordHash string) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "usersRepo.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	err = r.db.QueryRow(ctx,
		`INSERT INTO fit_user
				(email, password_hash, name, age, weight_kg, height_cm, activity_level, fitness_goal, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id`,
		u.Email, passwordHash, u.Name, u.Age, u.WeightKG,
		u.HeightCM, u.ActivityLevel, u.FitnessGoal, u.CreatedAt,
	).Scan(&u.ID)
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}

	return &u, nil
}

func (r *Repo) Get(ctx context.Context, userID int) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "usersRepo.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var u User
	err = r.db.QueryRow(ctx,
		`SELECT id, email, name, age, weight_kg, height_cm, activity_level, fitness_goal, created_at
			FROM fit_user WHERE id = $1`,
		userID,
	).Scan(
		&u.ID, &u.Email, &u.Name, &u.Age, &u.WeightKG,
		&u.HeightCM, &u.ActivityLevel, &u.FitnessGoal, &u.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	return &u, nil
}

// GetCredentials is what the login flow needs, nothing more.
func (r *Repo) GetCredentials(ctx context.Context, email string) (userID int, passwordHash string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "usersRepo.getCredentials")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	err = r.db.QueryRow(ctx,
		`SELECT id, password_hash FROM fit_user WHERE email = $1`,
		email,
	).Scan(&userID, &passwordHash)
	if errors.Is(err, pgx.ErrNoRows) {
		// the sentinel the login flow matches on
		return 0, "", auth.ErrUserNotFound
	}
	if err != nil {
		return 0, "", err
	}

	return userID, passwordHash, nil
}

func (r *Repo) UpdateProfile(ctx context.Context, u User) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "usersRepo.updateProfile")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(ctx,
		`UPDATE fit_user SET
				name = $1, age = $2, weight_kg = $3, height_cm = $4,
				activity_level = $5, fitness_goal = $6
			WHERE id = $7`,
		u.Name, u.Age, u.WeightKG, u.HeightCM,
		u.ActivityLevel, u.FitnessGoal, u.ID,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}
