package recommendations

//go:generate mockgen -source=engine.go -destination=engine_mocks_test.go -package=recommendations_test

import (
	"context"
	"fmt"
	"time"

	"github.com/fittrackhq/fittrack/internal/telemetry/metrics"
	"github.com/fittrackhq/fittrack/internal/telemetry/tracing"
	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

type engineStore interface {
	Snapshot(ctx context.Context, userID int, now time.Time) (*Snapshot, error)
	Insert(ctx context.Context, rec Recommendation) (*Recommendation, error)
}

type notifier interface {
	Notify(ctx context.Context, userID int, recs []Recommendation) error
}

// Engine turns a user's training data into rule-based advice. It holds
// no state of its own, every run gathers a fresh snapshot.
type Engine struct {
	store    engineStore
	notifier notifier
	metrics  *metrics.Manager
	now      func() time.Time
}

func NewEngine(store engineStore, notifier notifier, metrics *metrics.Manager) *Engine {
	return &Engine{
		store:    store,
		notifier: notifier,
		metrics:  metrics,
		now:      time.Now,
	}
}

// Evaluate runs every rule set over the snapshot. Pure, the rule sets
// always run in the same order so the output order is stable.
func Evaluate(s *Snapshot) []Recommendation {
	var recs []Recommendation
	recs = append(recs, workoutRules(s)...)
	recs = append(recs, recoveryRules(s)...)
	recs = append(recs, goalRules(s)...)
	recs = append(recs, nutritionRules(s)...)
	recs = append(recs, progressRules(s)...)
	return recs
}

// Generate gathers the snapshot, evaluates all rules and persists what
// came out. A failed insert does not abort the rest, the successfully
// stored recommendations are returned alongside the collected errors.
func (e *Engine) Generate(ctx context.Context, userID int) (_ []Recommendation, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "recommendationsEngine.generate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	snapshot, err := e.store.Snapshot(ctx, userID, e.now())
	if err != nil {
		return nil, fmt.Errorf("gather snapshot: %w", err)
	}

	evaluated := Evaluate(snapshot)

	stored := make([]Recommendation, 0, len(evaluated))
	var errs error
	for _, rec := range evaluated {
		rec.UserID = userID
		rec.Status = StatusPending
		rec.CreatedAt = snapshot.Now

		inserted, insErr := e.store.Insert(ctx, rec)
		if insErr != nil {
			errs = multierr.Append(errs, fmt.Errorf("store %s recommendation: %w", rec.Type, insErr))
			continue
		}
		stored = append(stored, *inserted)
		e.metrics.CounterRecommendations.With(map[string]string{"type": string(rec.Type)}).Inc()
	}

	if len(stored) > 0 {
		if notifyErr := e.notifier.Notify(ctx, userID, stored); notifyErr != nil {
			// advice still stands without the side channel
			log.Warnf("notify recommendations for user %d: %s", userID, notifyErr)
		}
	}

	return stored, errs
}
