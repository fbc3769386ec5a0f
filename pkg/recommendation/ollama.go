package recommendation

import (
	"FeastForBeasts/domain"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

const recommendPrompt = `You are an assistant helping donors find the most suitable NGOs for their food donations.

Given the following donation details, recommend NGOs that are nearby and match the donation type and urgency. Use the expiry date to judge urgency.

Donation Type: %s
Quantity: %s
Expiry Date: %s (YYYY-MM-DD)
Pickup Location: %s

Respond with a JSON object of the form {"ngos": [...]} where each NGO has:
- name: the name of the NGO
- suitabilityScore: number from 0 to 1, how well the NGO matches the donation type, urgency and location (travel distance included)
- urgencyScore: number from 0 to 1, how urgently the donation is needed; closer to 1 when the expiry date is near
- address: the address of the NGO
- contactNumber: the contact number of the NGO
- notes: any additional notes about the NGO

Order the list from most to least suitable.`

// OllamaClient asks a local model for recommendations in JSON mode.
type OllamaClient struct {
	BaseURL    string
	Model      string
	HTTPClient *http.Client
}

func NewOllamaClient(baseURL, model string) *OllamaClient {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if model == "" {
		model = "llama3.1"
	}
	return &OllamaClient{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Model:      model,
		HTTPClient: &http.Client{},
	}
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Format string `json:"format,omitempty"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

func (c *OllamaClient) Recommend(ctx context.Context, in domain.RecommendationRequest) ([]domain.RecommendedNGO, error) {
	prompt := fmt.Sprintf(recommendPrompt,
		in.DonationType,
		strconv.FormatFloat(in.Quantity, 'f', -1, 64),
		in.ExpiryDate,
		in.PickupLocation,
	)

	completion, err := c.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return decodeNGOs([]byte(completion))
}

func (c *OllamaClient) generate(ctx context.Context, prompt string) (string, error) {
	reqBody := generateRequest{
		Model:  c.Model,
		Prompt: prompt,
		Format: "json",
		Stream: false,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/generate", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ollama request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama returned status: %d", resp.StatusCode)
	}

	var parsedResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsedResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	return parsedResp.Response, nil
}
