package modelserver

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/couchcryptid/thermal-comfort-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	contentTypeJSON   = "application/json"
	headerContentType = "Content-Type"
)

func testClient(baseURL string, timeout time.Duration) *Client {
	return NewClient(baseURL, timeout, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestClient_Predict_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/predict", r.URL.Path)
		assert.Equal(t, contentTypeJSON, r.Header.Get(headerContentType))

		var req request
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []float64{25, 50, 1.0, 0.61}, req.Features)

		w.Header().Set(headerContentType, contentTypeJSON)
		_, _ = w.Write([]byte(`{"pmv": -0.0865}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL, 5*time.Second)
	got, err := c.Predict(context.Background(), domain.FeatureVector{Temperature: 25, Humidity: 50, MET: 1.0, CLO: 0.61})
	require.NoError(t, err)
	assert.InDelta(t, -0.0865, got, 1e-12)
}

func TestClient_Predict_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("model warming up\n"))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL, 5*time.Second).Predict(context.Background(), vec(25))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
	assert.Contains(t, err.Error(), "model warming up")
}

func TestClient_Predict_MissingPMV(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(headerContentType, contentTypeJSON)
		_, _ = w.Write([]byte(`{"prediction": 1.2}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL, 5*time.Second).Predict(context.Background(), vec(25))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing pmv")
}

func TestClient_Predict_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL, 5*time.Second).Predict(context.Background(), vec(25))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}

func TestClient_Predict_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL, 50*time.Millisecond).Predict(context.Background(), vec(25))
	require.Error(t, err)
}

func TestClient_Predict_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := testClient(srv.URL, 5*time.Second).Predict(ctx, vec(25))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
