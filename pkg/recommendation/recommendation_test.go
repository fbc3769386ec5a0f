package recommendation

import (
	"FeastForBeasts/domain"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var request = domain.RecommendationRequest{
	DonationType:   domain.DonationTypeCannedGoods,
	Quantity:       10,
	ExpiryDate:     "2025-01-01",
	PickupLocation: "X",
}

const scenarioB = `[
  {"name": "Food Bank ABC", "suitabilityScore": 0.9, "urgencyScore": 0.8, "address": "123 Main St", "contactNumber": "555-1234"},
  {"name": "Kitchen XYZ", "suitabilityScore": 0.7, "urgencyScore": 0.6, "address": "456 Elm St", "contactNumber": "555-5678", "notes": "Canned goods"}
]`

func TestHTTPClient_Recommend(t *testing.T) {
	var got domain.RecommendationRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(scenarioB))
	}))
	defer srv.Close()

	ngos, err := NewHTTPClient(srv.URL, time.Second).Recommend(context.Background(), request)
	require.NoError(t, err)

	assert.Equal(t, request, got)
	require.Len(t, ngos, 2)
	assert.Equal(t, "Food Bank ABC", ngos[0].Name)
	require.NotNil(t, ngos[0].SuitabilityScore)
	assert.Equal(t, 0.9, *ngos[0].SuitabilityScore)
	assert.Equal(t, "Kitchen XYZ", ngos[1].Name)
	assert.Equal(t, "Canned goods", ngos[1].Notes)
}

func TestHTTPClient_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server_error", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "overloaded", http.StatusServiceUnavailable)
		}},
		{"not_json", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html>oops</html>"))
		}},
		{"wrong_shape", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"result": "ok"}`))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			ngos, err := NewHTTPClient(srv.URL, time.Second).Recommend(context.Background(), request)
			assert.Error(t, err)
			assert.Nil(t, ngos)
		})
	}

	_, err := NewHTTPClient("", time.Second).Recommend(context.Background(), request)
	assert.Error(t, err)
}

func TestHTTPClient_ContextCancel(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := NewHTTPClient(srv.URL, 0).Recommend(ctx, request)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestOllamaClient_Recommend(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama3.1", req.Model)
		assert.Equal(t, "json", req.Format)
		assert.False(t, req.Stream)
		assert.Contains(t, req.Prompt, "Donation Type: canned_goods")
		assert.Contains(t, req.Prompt, "Quantity: 10")
		assert.Contains(t, req.Prompt, "Expiry Date: 2025-01-01")

		_ = json.NewEncoder(w).Encode(generateResponse{
			Response: `{"ngos": ` + scenarioB + `}`,
			Done:     true,
		})
	}))
	defer srv.Close()

	ngos, err := NewOllamaClient(srv.URL+"/", "").Recommend(context.Background(), request)
	require.NoError(t, err)
	require.Len(t, ngos, 2)
	assert.Equal(t, "Food Bank ABC", ngos[0].Name)
	assert.Equal(t, "Kitchen XYZ", ngos[1].Name)
}

func TestOllamaClient_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewOllamaClient(srv.URL, "missing-model").Recommend(context.Background(), request)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "404"))
}

func TestDecodeNGOs(t *testing.T) {
	ngos, err := decodeNGOs([]byte(`  {"ngos": []} `))
	require.NoError(t, err)
	assert.Empty(t, ngos)

	_, err = decodeNGOs([]byte(``))
	assert.Error(t, err)
}
