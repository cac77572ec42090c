package records

//go:generate mockgen -source=detector.go -destination=detector_mocks_test.go -package=records_test

import (
	"context"
	"fmt"

	"github.com/fittrackhq/fittrack/internal/telemetry/tracing"
	"go.uber.org/multierr"
)

type recordsStore interface {
	// InsertIfBest persists the record only when its value strictly
	// exceeds the stored best for the same user, exercise and type.
	// Returns nil when the candidate did not beat the stored best.
	InsertIfBest(ctx context.Context, rec PersonalRecord) (*PersonalRecord, error)
}

// Detector checks finished workout performances against stored
// personal bests and persists every new record it finds.
type Detector struct {
	store recordsStore
}

func NewDetector(store recordsStore) *Detector {
	return &Detector{store: store}
}

// EvaluateSession runs record detection for every exercise performed in
// a session. A failure on one candidate does not stop the rest, the
// errors are collected and returned alongside the records that did get
// persisted.
func (d *Detector) EvaluateSession(ctx context.Context, userID int, performances []ExercisePerformance) (_ []PersonalRecord, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "recordsDetector.evaluateSession")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var newRecords []PersonalRecord
	var errs error
	for _, perf := range performances {
		c, ok := extractCandidates(perf.Sets)
		if !ok {
			continue
		}

		for _, cand := range d.candidateRecords(userID, perf, c) {
			inserted, insErr := d.store.InsertIfBest(ctx, cand)
			if insErr != nil {
				errs = multierr.Append(errs, fmt.Errorf(
					"check %s record for exercise %d: %w", cand.Type, perf.ExerciseID, insErr,
				))
				continue
			}
			if inserted != nil {
				newRecords = append(newRecords, *inserted)
			}
		}
	}

	return newRecords, errs
}

// candidateRecords builds one candidate per record type, skipping
// types whose value is zero. Bodyweight sets carry weight 0, a zero
// max_weight or max_volume is not a record.
func (d *Detector) candidateRecords(userID int, perf ExercisePerformance, c candidates) []PersonalRecord {
	maxWeightReps := c.maxWeightReps
	maxRepsWeight := c.maxRepsWeight

	var out []PersonalRecord
	if c.maxWeight > 0 {
		out = append(out, PersonalRecord{
			UserID:     userID,
			ExerciseID: perf.ExerciseID,
			Type:       RecordTypeMaxWeight,
			Value:      c.maxWeight,
			Reps:       &maxWeightReps,
			Date:       perf.Date,
		})
	}
	if c.maxReps > 0 {
		out = append(out, PersonalRecord{
			UserID:     userID,
			ExerciseID: perf.ExerciseID,
			Type:       RecordTypeMaxReps,
			Value:      float64(c.maxReps),
			Weight:     &maxRepsWeight,
			Date:       perf.Date,
		})
	}
	if c.totalVolume > 0 {
		out = append(out, PersonalRecord{
			UserID:     userID,
			ExerciseID: perf.ExerciseID,
			Type:       RecordTypeMaxVolume,
			Value:      c.totalVolume,
			Date:       perf.Date,
		})
	}
	return out
}
