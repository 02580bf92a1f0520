// Package client is a small Go client for the doodle recognition API.
package client

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

type Prediction struct {
	Class      string  `json:"class"`
	Confidence float64 `json:"confidence"`
}

type PredictionResponse struct {
	Prediction string       `json:"prediction"`
	Confidence float64      `json:"confidence"`
	Top5       []Prediction `json:"top_5"`
}

// APIError is a non-2xx reply from the server.
type APIError struct {
	StatusCode int
	Detail     string `json:"detail"`
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("server returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("server returned status %d: %s", e.StatusCode, e.Detail)
}

type Client struct {
	baseURL string
	http    *resty.Client
}

// New creates a client for the server at baseURL, e.g. http://localhost:8000.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    resty.New().SetTimeout(timeout),
	}
}

// Status returns the message served at GET /.
func (c *Client) Status(ctx context.Context) (string, error) {
	var result struct {
		Message string `json:"message"`
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&result).
		Get(c.baseURL + "/")
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	if resp.IsError() {
		return "", &APIError{StatusCode: resp.StatusCode()}
	}

	return result.Message, nil
}

// Predict uploads an image and returns the ranked predictions.
func (c *Client) Predict(ctx context.Context, filename string, image io.Reader) (*PredictionResponse, error) {
	var result PredictionResponse
	apiErr := &APIError{}

	resp, err := c.http.R().
		SetContext(ctx).
		SetFileReader("file", filename, image).
		SetResult(&result).
		SetError(apiErr).
		Post(c.baseURL + "/predict/")
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	if resp.IsError() {
		apiErr.StatusCode = resp.StatusCode()
		return nil, apiErr
	}

	return &result, nil
}
