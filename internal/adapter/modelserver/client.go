package modelserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/thermal-comfort-service/internal/domain"
)

// Client implements domain.Predictor against a remote model server exposing
// POST /predict.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewClient creates a model server client rooted at baseURL.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		logger:  logger,
	}
}

// Predict sends the feature vector in column order and returns the reported PMV.
func (c *Client) Predict(ctx context.Context, features domain.FeatureVector) (float64, error) {
	values := features.Values()
	body, err := json.Marshal(request{Features: values[:]})
	if err != nil {
		return 0, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("predict request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return 0, fmt.Errorf("model server error: status %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}

	var out response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("decode response: %w", err)
	}
	if out.PMV == nil {
		return 0, fmt.Errorf("decode response: missing pmv")
	}

	c.logger.Debug("remote prediction", "features", values, "pmv", *out.PMV)
	return *out.PMV, nil
}

// Model server wire types.

type request struct {
	Features []float64 `json:"features"`
}

type response struct {
	PMV *float64 `json:"pmv"`
}
