package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Status(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, err := w.Write([]byte(`{"message": "Doodle Recognition API is running"}`))
		require.NoError(t, err)
	}))
	defer server.Close()

	c := New(server.URL+"/", 5*time.Second)
	msg, err := c.Status(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Doodle Recognition API is running", msg)
}

func TestClient_Predict(t *testing.T) {
	t.Run("successful prediction", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/predict/", r.URL.Path)
			assert.Equal(t, http.MethodPost, r.Method)

			file, header, err := r.FormFile("file")
			require.NoError(t, err)
			defer file.Close()
			data, err := io.ReadAll(file)
			require.NoError(t, err)
			assert.Equal(t, "cat.png", header.Filename)
			assert.Equal(t, "fake png bytes", string(data))

			w.Header().Set("Content-Type", "application/json")
			err = json.NewEncoder(w).Encode(PredictionResponse{
				Prediction: "cat",
				Confidence: 91.5,
				Top5:       []Prediction{{Class: "cat", Confidence: 91.5}, {Class: "bear", Confidence: 4.2}},
			})
			require.NoError(t, err)
		}))
		defer server.Close()

		c := New(server.URL, 5*time.Second)
		result, err := c.Predict(context.Background(), "cat.png", strings.NewReader("fake png bytes"))

		require.NoError(t, err)
		assert.Equal(t, "cat", result.Prediction)
		assert.Equal(t, 91.5, result.Confidence)
		assert.Len(t, result.Top5, 2)
	})

	t.Run("server error carries the detail", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_, err := w.Write([]byte(`{"detail": "Model not loaded"}`))
			require.NoError(t, err)
		}))
		defer server.Close()

		c := New(server.URL, 5*time.Second)
		_, err := c.Predict(context.Background(), "cat.png", strings.NewReader("x"))

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
		assert.Equal(t, "Model not loaded", apiErr.Detail)
		assert.EqualError(t, err, "server returned status 500: Model not loaded")
	})

	t.Run("connection refused", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		url := server.URL
		server.Close()

		c := New(url, time.Second)
		_, err := c.Predict(context.Background(), "cat.png", strings.NewReader("x"))

		assert.Error(t, err)
	})
}
