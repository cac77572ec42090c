package streak

import (
	"time"

	"github.com/fittrackhq/fittrack/pkg"
)

// Streak holds the per-user consecutive-activity-day state.
// One row per user; currentStreak never exceeds longestStreak.
type Streak struct {
	UserID           int        `json:"userId"`
	CurrentStreak    int        `json:"currentStreak"`
	LongestStreak    int        `json:"longestStreak"`
	LastActivityDate *time.Time `json:"lastActivityDate,omitempty"`
}

// Advance computes the next streak state for an activity on activityDate.
// The returned bool tells whether the state changed and needs persisting.
//
// Transitions, by calendar days between the last recorded activity and
// the new one:
//   - no previous state: start a fresh streak of 1
//   - 0 days: same-day repeat, no change
//   - 1 day: consecutive day, current +1, longest raised if surpassed
//   - >1 days: gap, current resets to 1, longest untouched
//   - <0 days: backdated activity, no change (see GetStreak docs)
func Advance(existing *Streak, userID int, activityDate time.Time) (Streak, bool) {
	day := pkg.CalendarDay(activityDate)

	if existing == nil {
		return Streak{
			UserID:           userID,
			CurrentStreak:    1,
			LongestStreak:    1,
			LastActivityDate: &day,
		}, true
	}

	if existing.LastActivityDate == nil {
		// row exists but no activity ever recorded, treat as first activity
		next := *existing
		next.CurrentStreak = 1
		next.LongestStreak = max(1, existing.LongestStreak)
		next.LastActivityDate = &day
		return next, true
	}

	switch diffDays := pkg.DaysBetween(*existing.LastActivityDate, day); {
	case diffDays == 0:
		// same-day repeat activity
		return *existing, false
	case diffDays == 1:
		next := *existing
		next.CurrentStreak = existing.CurrentStreak + 1
		next.LongestStreak = max(next.CurrentStreak, existing.LongestStreak)
		next.LastActivityDate = &day
		return next, true
	case diffDays > 1:
		next := *existing
		next.CurrentStreak = 1
		next.LastActivityDate = &day
		return next, true
	default:
		// backdated activity, the forward streak count must not be corrupted
		return *existing, false
	}
}
