package dashboard

// Summary is the landing-page aggregate over the last 30 days plus the
// current streak state.
type Summary struct {
	Sessions       int           `json:"sessions"`
	TotalVolume    float64       `json:"totalVolume"`
	TotalDuration  int           `json:"totalDurationMin"`
	AvgRating      *float64      `json:"avgRating,omitempty"`
	CurrentStreak  int           `json:"currentStreak"`
	LongestStreak  int           `json:"longestStreak"`
	OpenGoals      int           `json:"openGoals"`
	NewRecords     int           `json:"newRecords"`
	LatestWeightKG *float64      `json:"latestWeightKg,omitempty"`
	Calendar       []DayActivity `json:"calendar"`
}

// DayActivity is one cell of the activity calendar. Days without
// sessions are omitted.
type DayActivity struct {
	Date     string `json:"date"`
	Sessions int    `json:"sessions"`
}
