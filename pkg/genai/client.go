package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mchmarny/modelscore/pkg/net"
)

const (
	requestTimeout = 25 * time.Second

	licensePromptHeader = "You are a helpful assistant that classifies software licenses and " +
		"assesses their compatibility for reuse (including commercial use and modification). " +
		"Given the following license or README text, respond ONLY with a single valid JSON " +
		"object containing the fields: " +
		"license_spdx (string or 'UNKNOWN'), " +
		"category (one of 'permissive','weak-copyleft','strong-copyleft','proprietary','unknown'), " +
		"compatibility_score (number between 0.0 and 1.0), " +
		"compatibility_with_commercial_use (true/false), " +
		"explanation (short string). " +
		"Here is the text to analyze:\n\n"

	licensePromptFooter = "\n\nReturn only the JSON object and nothing else."
)

// ErrUnavailable indicates the inference endpoint could not be used:
// network failure, non-2xx response, or timeout. Callers fall back to
// heuristic scoring, the failure never reaches the metric result.
var ErrUnavailable = errors.New("inference endpoint unavailable")

// LicenseVerdict is the intermediate result of license classification,
// always normalized into a metric result before being returned.
type LicenseVerdict struct {
	CompatibilityScore float64
	SPDX               string
	Category           string
	Rationale          string
}

// Client calls an OpenAI-compatible chat-completions endpoint. Build it
// only when an API key is configured; a nil *Client is how callers model
// the absent capability.
type Client struct {
	Endpoint string
	Model    string
	APIKey   string
	HTTP     *http.Client
}

// New returns a chat-completions client, or nil when no API key is
// configured. Absence is a routing decision, not an error.
func New(endpoint, model, apiKey string) *Client {
	if apiKey == "" {
		return nil
	}
	return &Client{
		Endpoint: endpoint,
		Model:    model,
		APIKey:   apiKey,
		HTTP: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
}

type chatChoice struct {
	Message chatMessage `json:"message"`
	Text    string      `json:"text"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
}

// Complete sends a single user prompt and returns the raw assistant text.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:    c.Model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
		Stream:   false,
	})
	if err != nil {
		return "", fmt.Errorf("error encoding chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("error creating chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	net.WithBearer(c.APIKey)(req)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		slog.Debug("chat completion request failed", "error", err)
		return "", ErrUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Debug("chat completion non-200", "status", resp.StatusCode)
		return "", ErrUnavailable
	}

	var cr chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		slog.Debug("error decoding chat response", "error", err)
		return "", ErrUnavailable
	}

	if len(cr.Choices) == 0 {
		return "", ErrUnavailable
	}

	// new-style chat message first, older text completion as fallback
	if content := cr.Choices[0].Message.Content; content != "" {
		return content, nil
	}
	if cr.Choices[0].Text != "" {
		return cr.Choices[0].Text, nil
	}
	return "", ErrUnavailable
}

// ClassifyLicense asks the model to classify the given license or README
// text and parses the JSON verdict out of the assistant output.
func (c *Client) ClassifyLicense(ctx context.Context, text string) (*LicenseVerdict, error) {
	if text == "" {
		text = "No license text found."
	}

	raw, err := c.Complete(ctx, licensePromptHeader+text+licensePromptFooter)
	if err != nil {
		return nil, err
	}

	obj, err := ExtractJSONObject(raw)
	if err != nil {
		return nil, err
	}

	score, ok := obj["compatibility_score"].(float64)
	if !ok {
		return nil, ErrNoJSON
	}
	if score < 0.0 {
		score = 0.0
	}
	if score > 1.0 {
		score = 1.0
	}

	v := &LicenseVerdict{CompatibilityScore: score}
	if s, ok := obj["license_spdx"].(string); ok {
		v.SPDX = s
	}
	if s, ok := obj["category"].(string); ok {
		v.Category = s
	}
	if s, ok := obj["explanation"].(string); ok {
		v.Rationale = s
	}

	return v, nil
}
