package routines_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fittrackhq/fittrack/internal/fitness/routines"
	"github.com/fittrackhq/fittrack/internal/middleware"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type routinesRepoFake struct {
	nextID   int
	routines map[int]routines.Routine
}

func newRoutinesRepoFake() *routinesRepoFake {
	return &routinesRepoFake{
		nextID:   1,
		routines: make(map[int]routines.Routine),
	}
}

func (f *routinesRepoFake) Add(_ context.Context, rt routines.Routine) (*routines.Routine, error) {
	rt.ID = f.nextID
	f.nextID++
	f.routines[rt.ID] = rt
	return &rt, nil
}

func (f *routinesRepoFake) Get(_ context.Context, userID, routineID int) (*routines.Routine, error) {
	rt, ok := f.routines[routineID]
	if !ok || rt.UserID != userID {
		return nil, routines.ErrRoutineNotFound
	}
	return &rt, nil
}

func (f *routinesRepoFake) List(_ context.Context, userID int) ([]routines.Routine, error) {
	var out []routines.Routine
	for _, rt := range f.routines {
		if rt.UserID == userID {
			out = append(out, rt)
		}
	}
	return out, nil
}

func (f *routinesRepoFake) Update(_ context.Context, rt routines.Routine) error {
	existing, ok := f.routines[rt.ID]
	if !ok || existing.UserID != rt.UserID {
		return routines.ErrRoutineNotFound
	}
	rt.Exercises = existing.Exercises
	f.routines[rt.ID] = rt
	return nil
}

func (f *routinesRepoFake) ReplaceExercises(_ context.Context, userID, routineID int, exercises []routines.RoutineExercise) error {
	rt, ok := f.routines[routineID]
	if !ok || rt.UserID != userID {
		return routines.ErrRoutineNotFound
	}
	rt.Exercises = exercises
	f.routines[routineID] = rt
	return nil
}

func (f *routinesRepoFake) AddExercise(_ context.Context, userID, routineID int, e routines.RoutineExercise) error {
	rt, ok := f.routines[routineID]
	if !ok || rt.UserID != userID {
		return routines.ErrRoutineNotFound
	}
	rt.Exercises = append(rt.Exercises, e)
	f.routines[routineID] = rt
	return nil
}

func (f *routinesRepoFake) RemoveExercise(_ context.Context, userID, routineID, exerciseID int) error {
	rt, ok := f.routines[routineID]
	if !ok || rt.UserID != userID {
		return routines.ErrRoutineNotFound
	}
	var kept []routines.RoutineExercise
	for _, e := range rt.Exercises {
		if e.ExerciseID != exerciseID {
			kept = append(kept, e)
		}
	}
	rt.Exercises = kept
	f.routines[routineID] = rt
	return nil
}

func (f *routinesRepoFake) Delete(_ context.Context, userID, routineID int) error {
	rt, ok := f.routines[routineID]
	if !ok || rt.UserID != userID {
		return routines.ErrRoutineNotFound
	}
	delete(f.routines, routineID)
	return nil
}

func routinesRouter(h *routines.Handler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/routines", h.HandleAdd).Methods("POST")
	r.HandleFunc("/routines", h.HandleList).Methods("GET")
	r.HandleFunc("/routines/{id}", h.HandleUpdate).Methods("PUT")
	r.HandleFunc("/routines/{id}", h.HandleDelete).Methods("DELETE")
	r.HandleFunc("/routines/{id}/exercises", h.HandleAddExercise).Methods("POST")
	r.HandleFunc("/routines/{id}/exercises/{exerciseId}", h.HandleRemoveExercise).Methods("DELETE")
	return r
}

func routinesAuthedReq(t *testing.T, method, path string, body []byte, userID int) *http.Request {
	t.Helper()
	req, err := http.NewRequest(method, path, bytes.NewReader(body))
	require.NoError(t, err)
	return req.WithContext(middleware.ContextWithUserID(req.Context(), userID))
}

func TestHandler_HandleAdd(t *testing.T) {
	repo := newRoutinesRepoFake()
	router := routinesRouter(routines.NewHandler(repo))

	body := []byte(`{
		"name": "push day",
		"description": "chest and triceps",
		"exercises": [
			{"exerciseId": 7, "position": 1, "targetSets": 4, "targetReps": 8},
			{"exerciseId": 3, "position": 2, "targetSets": 3, "targetReps": 12}
		]
	}`)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, routinesAuthedReq(t, "POST", "/routines", body, 42))

	require.Equal(t, http.StatusCreated, rec.Code)
	var created routines.Routine
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, 1, created.ID)
	assert.Equal(t, 42, created.UserID)
	assert.Equal(t, "push day", created.Name)
	require.Len(t, created.Exercises, 2)
	assert.Equal(t, 7, created.Exercises[0].ExerciseID)
	assert.False(t, created.CreatedAt.IsZero())

	stored := repo.routines[1]
	require.Len(t, stored.Exercises, 2)
}

func TestHandler_HandleAdd_NameRequired(t *testing.T) {
	router := routinesRouter(routines.NewHandler(newRoutinesRepoFake()))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, routinesAuthedReq(t, "POST", "/routines", []byte(`{"description": "no name"}`), 42))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_HandleUpdate_Reorder(t *testing.T) {
	repo := newRoutinesRepoFake()
	router := routinesRouter(routines.NewHandler(repo))

	_, err := repo.Add(context.Background(), routines.Routine{
		UserID: 42,
		Name:   "leg day",
		Exercises: []routines.RoutineExercise{
			{ExerciseID: 1, Position: 1},
			{ExerciseID: 2, Position: 2},
		},
	})
	require.NoError(t, err)

	// flip the order and flag as favorite, name untouched
	body := []byte(`{
		"isFavorite": true,
		"exercises": [
			{"exerciseId": 2, "position": 1},
			{"exerciseId": 1, "position": 2}
		]
	}`)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, routinesAuthedReq(t, "PUT", "/routines/1", body, 42))

	require.Equal(t, http.StatusOK, rec.Code)
	var updated routines.Routine
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "leg day", updated.Name)
	assert.True(t, updated.IsFavorite)
	require.Len(t, updated.Exercises, 2)
	assert.Equal(t, 2, updated.Exercises[0].ExerciseID)

	stored := repo.routines[1]
	assert.Equal(t, 2, stored.Exercises[0].ExerciseID)
}

func TestHandler_HandleUpdate_OtherUsersRoutine(t *testing.T) {
	repo := newRoutinesRepoFake()
	router := routinesRouter(routines.NewHandler(repo))

	_, err := repo.Add(context.Background(), routines.Routine{UserID: 7, Name: "theirs"})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, routinesAuthedReq(t, "PUT", "/routines/1", []byte(`{"name": "mine now"}`), 42))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_ExerciseLinks(t *testing.T) {
	repo := newRoutinesRepoFake()
	router := routinesRouter(routines.NewHandler(repo))

	_, err := repo.Add(context.Background(), routines.Routine{UserID: 42, Name: "pull day"})
	require.NoError(t, err)

	body := []byte(`{"exerciseId": 9, "position": 1, "targetSets": 5, "restSec": 120}`)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, routinesAuthedReq(t, "POST", "/routines/1/exercises", body, 42))
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, repo.routines[1].Exercises, 1)

	// unlink it again
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, routinesAuthedReq(t, "DELETE", "/routines/1/exercises/9", nil, 42))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "removed:9", rec.Body.String())
	assert.Empty(t, repo.routines[1].Exercises)

	// a missing exercise id is rejected before the repo is involved
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, routinesAuthedReq(t, "POST", "/routines/1/exercises", []byte(`{"position": 1}`), 42))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_HandleDelete(t *testing.T) {
	repo := newRoutinesRepoFake()
	router := routinesRouter(routines.NewHandler(repo))

	_, err := repo.Add(context.Background(), routines.Routine{UserID: 42, Name: "old split"})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, routinesAuthedReq(t, "DELETE", "/routines/1", nil, 42))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "deleted:1", rec.Body.String())
	assert.Empty(t, repo.routines)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, routinesAuthedReq(t, "DELETE", "/routines/1", nil, 42))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
