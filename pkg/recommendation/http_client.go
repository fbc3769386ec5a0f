// Package recommendation holds clients for the external NGO recommendation service.
package recommendation

import (
	"FeastForBeasts/domain"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPClient posts the donation attributes as JSON and expects a JSON array of NGOs back.
type HTTPClient struct {
	URL        string
	HTTPClient *http.Client
}

func NewHTTPClient(url string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		URL:        url,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) Recommend(ctx context.Context, in domain.RecommendationRequest) ([]domain.RecommendedNGO, error) {
	if c.URL == "" {
		return nil, fmt.Errorf("recommender url not configured")
	}

	jsonData, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client().Do(req)
	if err != nil {
		return nil, fmt.Errorf("recommender request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("recommender returned status %d: %s", resp.StatusCode, bytes.TrimSpace(snippet))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return decodeNGOs(body)
}

func (c *HTTPClient) client() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

// decodeNGOs accepts either a bare array or an object wrapping it under "ngos".
func decodeNGOs(body []byte) ([]domain.RecommendedNGO, error) {
	body = bytes.TrimSpace(body)

	var ngos []domain.RecommendedNGO
	if len(body) > 0 && body[0] == '[' {
		if err := json.Unmarshal(body, &ngos); err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}
		return ngos, nil
	}

	var wrapped struct {
		NGOs *[]domain.RecommendedNGO `json:"ngos"`
	}
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if wrapped.NGOs == nil {
		return nil, fmt.Errorf("failed to decode response: no ngo list")
	}
	return *wrapped.NGOs, nil
}
