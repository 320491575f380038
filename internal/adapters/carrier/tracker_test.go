package carrier

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTrackerValidation(t *testing.T) {
	_, err := NewTracker(Config{StatusExpr: "status"})
	assert.Error(t, err)

	_, err = NewTracker(Config{BaseURL: "http://carrier.test/track"})
	assert.Error(t, err)

	_, err = NewTracker(Config{BaseURL: "http://carrier.test/track", StatusExpr: "not a [valid expr"})
	assert.Error(t, err)
}

func TestTracker_Track(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "TRK123", r.URL.Query().Get("tracking_number"))
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"shipment":{"current_status":"In Transit"}}`))
	}))
	defer srv.Close()

	tracker, err := NewTracker(Config{
		BaseURL:    srv.URL,
		APIKey:     "test-key",
		StatusExpr: "shipment.current_status",
		StatusMap:  map[string]string{"in transit": "shipped"},
	})
	require.NoError(t, err)

	status, err := tracker.Track(context.Background(), "TRK123")
	require.NoError(t, err)
	assert.Equal(t, "shipped", status, "carrier status should be lowered and mapped")
}

func TestTracker_TrackUnmappedPassesThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status":"delivered"}`))
	}))
	defer srv.Close()

	tracker, err := NewTracker(Config{BaseURL: srv.URL, StatusExpr: "status"})
	require.NoError(t, err)

	status, err := tracker.Track(context.Background(), "TRK123")
	require.NoError(t, err)
	assert.Equal(t, "delivered", status)
}

func TestTracker_TrackErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("tracking_number") {
		case "boom":
			w.WriteHeader(http.StatusBadGateway)
		case "nostatus":
			_, _ = w.Write([]byte(`{"shipment":{}}`))
		default:
			_, _ = w.Write([]byte(`not json`))
		}
	}))
	defer srv.Close()

	tracker, err := NewTracker(Config{BaseURL: srv.URL, StatusExpr: "shipment.current_status"})
	require.NoError(t, err)

	_, err = tracker.Track(context.Background(), "boom")
	assert.ErrorContains(t, err, "502")

	_, err = tracker.Track(context.Background(), "nostatus")
	assert.ErrorContains(t, err, "no status")

	_, err = tracker.Track(context.Background(), "badjson")
	assert.ErrorContains(t, err, "decode")

	_, err = tracker.Track(context.Background(), "")
	assert.Error(t, err)
}
