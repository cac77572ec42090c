package goals_test

import (
	"testing"
	"time"

	"github.com/fittrackhq/fittrack/internal/fitness/goals"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var evalNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func deadlineIn(days int) *time.Time {
	d := evalNow.AddDate(0, 0, days)
	return &d
}

func TestEvaluateProgress(t *testing.T) {
	testCases := []struct {
		name         string
		goal         goals.Goal
		wantProgress float64
		wantDaysLeft *int
		wantStatus   goals.Status
	}{
		{
			name:         "halfway with a far deadline is on track",
			goal:         goals.Goal{TargetValue: 10, CurrentValue: 5, Deadline: deadlineIn(30)},
			wantProgress: 50,
			wantDaysLeft: intPtr(30),
			wantStatus:   goals.StatusOnTrack,
		},
		{
			name:         "no deadline is never urgent or overdue",
			goal:         goals.Goal{TargetValue: 10, CurrentValue: 1},
			wantProgress: 10,
			wantDaysLeft: nil,
			wantStatus:   goals.StatusOnTrack,
		},
		{
			name:         "target reached means completed",
			goal:         goals.Goal{TargetValue: 10, CurrentValue: 10, Deadline: deadlineIn(30)},
			wantProgress: 100,
			wantDaysLeft: intPtr(30),
			wantStatus:   goals.StatusCompleted,
		},
		{
			name:         "progress is capped at one hundred",
			goal:         goals.Goal{TargetValue: 10, CurrentValue: 25},
			wantProgress: 100,
			wantStatus:   goals.StatusCompleted,
		},
		{
			name:         "achieved flag wins even past the deadline",
			goal:         goals.Goal{TargetValue: 10, CurrentValue: 4, Achieved: true, Deadline: deadlineIn(-5)},
			wantProgress: 40,
			wantDaysLeft: intPtr(-5),
			wantStatus:   goals.StatusCompleted,
		},
		{
			name:         "past deadline unfinished is overdue",
			goal:         goals.Goal{TargetValue: 10, CurrentValue: 4, Deadline: deadlineIn(-3)},
			wantProgress: 40,
			wantDaysLeft: intPtr(-3),
			wantStatus:   goals.StatusOverdue,
		},
		{
			name:         "deadline within a week is urgent",
			goal:         goals.Goal{TargetValue: 10, CurrentValue: 4, Deadline: deadlineIn(7)},
			wantProgress: 40,
			wantDaysLeft: intPtr(7),
			wantStatus:   goals.StatusUrgent,
		},
		{
			name:         "deadline eight days out is still on track",
			goal:         goals.Goal{TargetValue: 10, CurrentValue: 4, Deadline: deadlineIn(8)},
			wantProgress: 40,
			wantDaysLeft: intPtr(8),
			wantStatus:   goals.StatusOnTrack,
		},
		{
			name:         "deadline later today counts as urgent, not overdue",
			goal:         goals.Goal{TargetValue: 10, CurrentValue: 4, Deadline: timePtr(evalNow.Add(6 * time.Hour))},
			wantProgress: 40,
			wantDaysLeft: intPtr(1),
			wantStatus:   goals.StatusUrgent,
		},
		{
			name:         "deadline exactly now counts as urgent",
			goal:         goals.Goal{TargetValue: 10, CurrentValue: 4, Deadline: timePtr(evalNow)},
			wantProgress: 40,
			wantDaysLeft: intPtr(0),
			wantStatus:   goals.StatusUrgent,
		},
		{
			name:         "zero target yields zero progress",
			goal:         goals.Goal{TargetValue: 0, CurrentValue: 4},
			wantProgress: 0,
			wantStatus:   goals.StatusOnTrack,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := goals.EvaluateProgress([]goals.Goal{tc.goal}, evalNow)
			require.Len(t, out, 1)
			p := out[0]
			assert.InDelta(t, tc.wantProgress, p.ProgressPercent, 0.0001)
			assert.Equal(t, tc.wantStatus, p.Status)
			if tc.wantDaysLeft == nil {
				assert.Nil(t, p.DaysLeft)
			} else {
				require.NotNil(t, p.DaysLeft)
				assert.Equal(t, *tc.wantDaysLeft, *p.DaysLeft)
			}
		})
	}
}

func TestEvaluateProgress_EveryGoalGetsAStatus(t *testing.T) {
	allGoals := []goals.Goal{
		{TargetValue: 10, CurrentValue: 5},
		{TargetValue: 10, CurrentValue: 15, Deadline: deadlineIn(-10)},
		{TargetValue: 0, CurrentValue: 0, Deadline: deadlineIn(2)},
		{TargetValue: 5, CurrentValue: 0, Achieved: true},
	}

	out := goals.EvaluateProgress(allGoals, evalNow)
	require.Len(t, out, len(allGoals))
	for _, p := range out {
		assert.NotEmpty(t, p.Status)
	}
}

func TestEvaluateProgress_EmptyInput(t *testing.T) {
	out := goals.EvaluateProgress(nil, evalNow)
	assert.Empty(t, out)
	assert.NotNil(t, out)
}

func intPtr(i int) *int {
	return &i
}

func timePtr(t time.Time) *time.Time {
	return &t
}
