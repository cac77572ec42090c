package recommendations_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fittrackhq/fittrack/internal/fitness/progress"
	"github.com/fittrackhq/fittrack/internal/fitness/recommendations"
	"github.com/fittrackhq/fittrack/internal/telemetry/metrics"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func wellnessEntry(daysAgo int, waterML float64) progress.DailyProgress {
	return progress.DailyProgress{
		Date:          rulesNow.AddDate(0, 0, -daysAgo),
		WaterIntakeML: floatPtr(waterML),
	}
}

func TestEngine_Generate(t *testing.T) {
	ctrl := gomock.NewController(t)
	storeMock := NewMockengineStore(ctrl)
	notifierMock := NewMocknotifier(ctrl)
	engine := recommendations.NewEngine(storeMock, notifierMock, metrics.NewTestManager())

	// an empty history fires exactly the frequency rule
	storeMock.EXPECT().
		Snapshot(gomock.Any(), 42, gomock.Any()).
		Return(&recommendations.Snapshot{UserID: 42, Now: rulesNow}, nil)

	storeMock.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rec recommendations.Recommendation) (*recommendations.Recommendation, error) {
			assert.Equal(t, 42, rec.UserID)
			assert.Equal(t, recommendations.StatusPending, rec.Status)
			assert.Equal(t, rulesNow, rec.CreatedAt)
			rec.ID = 1
			return &rec, nil
		})

	notifierMock.EXPECT().
		Notify(gomock.Any(), 42, gomock.Len(1)).
		Return(nil)

	recs, err := engine.Generate(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, 1, recs[0].ID)
	assert.Equal(t, "Increase Training Frequency", recs[0].Title)
}

func TestEngine_Generate_SnapshotFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	storeMock := NewMockengineStore(ctrl)
	engine := recommendations.NewEngine(storeMock, NewMocknotifier(ctrl), metrics.NewTestManager())

	storeMock.EXPECT().
		Snapshot(gomock.Any(), 42, gomock.Any()).
		Return(nil, errors.New("db down"))

	recs, err := engine.Generate(context.Background(), 42)
	require.Error(t, err)
	assert.Nil(t, recs)
}

func TestEngine_Generate_PartialInsertFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	storeMock := NewMockengineStore(ctrl)
	notifierMock := NewMocknotifier(ctrl)
	engine := recommendations.NewEngine(storeMock, notifierMock, metrics.NewTestManager())

	// empty history plus a dehydrated week fires two rules
	snapshot := &recommendations.Snapshot{UserID: 42, Now: rulesNow}
	for i := 1; i <= 3; i++ {
		snapshot.Wellness = append(snapshot.Wellness, wellnessEntry(i, 1000))
	}
	storeMock.EXPECT().
		Snapshot(gomock.Any(), 42, gomock.Any()).
		Return(snapshot, nil)

	insertErr := errors.New("constraint violation")
	first := true
	storeMock.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rec recommendations.Recommendation) (*recommendations.Recommendation, error) {
			if first {
				first = false
				return nil, insertErr
			}
			rec.ID = 2
			return &rec, nil
		}).
		Times(2)

	// only the stored one goes out
	notifierMock.EXPECT().
		Notify(gomock.Any(), 42, gomock.Len(1)).
		Return(nil)

	recs, err := engine.Generate(context.Background(), 42)
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 1)
	assert.ErrorIs(t, err, insertErr)
	require.Len(t, recs, 1)
}

func TestEngine_Generate_NotifierFailureIsNotFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	storeMock := NewMockengineStore(ctrl)
	notifierMock := NewMocknotifier(ctrl)
	engine := recommendations.NewEngine(storeMock, notifierMock, metrics.NewTestManager())

	storeMock.EXPECT().
		Snapshot(gomock.Any(), 42, gomock.Any()).
		Return(&recommendations.Snapshot{UserID: 42, Now: rulesNow}, nil)
	storeMock.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rec recommendations.Recommendation) (*recommendations.Recommendation, error) {
			rec.ID = 1
			return &rec, nil
		})
	notifierMock.EXPECT().
		Notify(gomock.Any(), 42, gomock.Any()).
		Return(errors.New("webhook unreachable"))

	recs, err := engine.Generate(context.Background(), 42)
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}
