package goals_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fittrackhq/fittrack/internal/fitness/goals"
	"github.com/fittrackhq/fittrack/internal/middleware"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type goalsRepoFake struct {
	nextID int
	goals  map[int]goals.Goal
}

func newGoalsRepoFake() *goalsRepoFake {
	return &goalsRepoFake{
		nextID: 1,
		goals:  make(map[int]goals.Goal),
	}
}

func (f *goalsRepoFake) Add(_ context.Context, g goals.Goal) (*goals.Goal, error) {
	g.ID = f.nextID
	f.nextID++
	f.goals[g.ID] = g
	return &g, nil
}

func (f *goalsRepoFake) Get(_ context.Context, userID, goalID int) (*goals.Goal, error) {
	g, ok := f.goals[goalID]
	if !ok || g.UserID != userID {
		return nil, goals.ErrGoalNotFound
	}
	return &g, nil
}

func (f *goalsRepoFake) List(_ context.Context, userID int) ([]goals.Goal, error) {
	var out []goals.Goal
	for _, g := range f.goals {
		if g.UserID == userID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *goalsRepoFake) Update(_ context.Context, g goals.Goal) error {
	existing, ok := f.goals[g.ID]
	if !ok || existing.UserID != g.UserID {
		return goals.ErrGoalNotFound
	}
	f.goals[g.ID] = g
	return nil
}

func (f *goalsRepoFake) Delete(_ context.Context, userID, goalID int) error {
	g, ok := f.goals[goalID]
	if !ok || g.UserID != userID {
		return goals.ErrGoalNotFound
	}
	delete(f.goals, goalID)
	return nil
}

func authedReq(t *testing.T, method, path string, body []byte, userID int) *http.Request {
	t.Helper()
	req, err := http.NewRequest(method, path, bytes.NewReader(body))
	require.NoError(t, err)
	return req.WithContext(middleware.ContextWithUserID(req.Context(), userID))
}

func TestHandler_HandleAdd(t *testing.T) {
	repo := newGoalsRepoFake()
	h := goals.NewHandler(repo)

	deadline := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	body, err := json.Marshal(goals.Goal{
		Type:        goals.GoalTypeLoseWeight,
		Title:       "summer cut",
		TargetValue: 8,
		Unit:        "kg",
		Deadline:    &deadline,
	})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.HandleAdd(rec, authedReq(t, "POST", "/goals", body, 42))

	require.Equal(t, http.StatusCreated, rec.Code)
	var added goals.Goal
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &added))
	assert.Equal(t, 1, added.ID)
	assert.Equal(t, 42, added.UserID)
	assert.Equal(t, goals.PriorityMedium, added.Priority)
	assert.False(t, added.Achieved)
	assert.Len(t, repo.goals, 1)
}

func TestHandler_HandleAdd_InvalidTarget(t *testing.T) {
	h := goals.NewHandler(newGoalsRepoFake())

	for _, target := range []float64{0, -5} {
		body, err := json.Marshal(goals.Goal{
			Type:        goals.GoalTypeGainMuscle,
			TargetValue: target,
		})
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		h.HandleAdd(rec, authedReq(t, "POST", "/goals", body, 42))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	}
}

func TestHandler_HandleAdd_UnknownType(t *testing.T) {
	h := goals.NewHandler(newGoalsRepoFake())

	body := []byte(`{"type":"become_immortal","targetValue":1}`)
	rec := httptest.NewRecorder()
	h.HandleAdd(rec, authedReq(t, "POST", "/goals", body, 42))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_HandleProgress(t *testing.T) {
	repo := newGoalsRepoFake()
	h := goals.NewHandler(repo)

	_, err := repo.Add(context.Background(), goals.Goal{
		UserID:       42,
		Type:         goals.GoalTypeLoseWeight,
		TargetValue:  10,
		CurrentValue: 5,
	})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.HandleProgress(rec, authedReq(t, "GET", "/goals/progress", nil, 42))

	require.Equal(t, http.StatusOK, rec.Code)
	var out []goals.GoalProgress
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out, 1)
	assert.InDelta(t, 50, out[0].ProgressPercent, 0.0001)
	assert.Equal(t, goals.StatusOnTrack, out[0].Status)
}

func TestHandler_HandleUpdateAndDelete(t *testing.T) {
	repo := newGoalsRepoFake()
	h := goals.NewHandler(repo)

	added, err := repo.Add(context.Background(), goals.Goal{
		UserID:      42,
		Type:        goals.GoalTypeGainMuscle,
		TargetValue: 5,
		Priority:    goals.PriorityHigh,
	})
	require.NoError(t, err)

	body, err := json.Marshal(goals.Goal{
		Type:         goals.GoalTypeGainMuscle,
		TargetValue:  5,
		CurrentValue: 3,
	})
	require.NoError(t, err)

	router := mux.NewRouter()
	router.HandleFunc("/goals/{id}", h.HandleUpdate).Methods("PUT")
	router.HandleFunc("/goals/{id}", h.HandleDelete).Methods("DELETE")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedReq(t, "PUT", "/goals/1", body, 42))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3.0, repo.goals[added.ID].CurrentValue)
	// priority untouched when omitted
	assert.Equal(t, goals.PriorityHigh, repo.goals[added.ID].Priority)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, authedReq(t, "DELETE", "/goals/1", nil, 42))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, repo.goals)

	// deleting again is a 404
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, authedReq(t, "DELETE", "/goals/1", nil, 42))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_OtherUsersGoalIsNotFound(t *testing.T) {
	repo := newGoalsRepoFake()
	h := goals.NewHandler(repo)

	_, err := repo.Add(context.Background(), goals.Goal{
		UserID:      7,
		Type:        goals.GoalTypeGeneral,
		TargetValue: 5,
	})
	require.NoError(t, err)

	router := mux.NewRouter()
	router.HandleFunc("/goals/{id}", h.HandleDelete).Methods("DELETE")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedReq(t, "DELETE", "/goals/1", nil, 42))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
