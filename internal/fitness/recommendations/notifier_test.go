package recommendations_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fittrackhq/fittrack/internal/fitness/recommendations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebhookNotifier_Notify(t *testing.T) {
	var received []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var err error
		received, err = io.ReadAll(r.Body)
		require.NoError(t, err)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	notifier := recommendations.NewWebhookNotifier(server.URL)
	recs := []recommendations.Recommendation{
		{ID: 1, UserID: 42, Type: recommendations.RecTypeWorkout, Title: "Increase Training Frequency"},
	}
	require.NoError(t, notifier.Notify(context.Background(), 42, recs))

	var payload struct {
		UserID          int                              `json:"userId"`
		Recommendations []recommendations.Recommendation `json:"recommendations"`
	}
	require.NoError(t, json.Unmarshal(received, &payload))
	assert.Equal(t, 42, payload.UserID)
	require.Len(t, payload.Recommendations, 1)
	assert.Equal(t, "Increase Training Frequency", payload.Recommendations[0].Title)
}

func TestWebhookNotifier_Notify_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	notifier := recommendations.NewWebhookNotifier(server.URL)
	err := notifier.Notify(context.Background(), 42, []recommendations.Recommendation{{ID: 1}})
	assert.ErrorContains(t, err, "status 502")
}

func TestWebhookNotifier_DisabledWithoutURL(t *testing.T) {
	notifier := recommendations.NewWebhookNotifier("")
	assert.NoError(t, notifier.Notify(context.Background(), 42, []recommendations.Recommendation{{ID: 1}}))
}
