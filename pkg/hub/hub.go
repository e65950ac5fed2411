package hub

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mchmarny/modelscore/pkg/net"
)

const defaultBaseURL = "https://huggingface.co"

// ErrNotFound covers every failure mode of the registry: HTTP error,
// timeout, malformed JSON, or missing resource. Per the metric contract
// the caller degrades, it never sees an uncaught fault.
var ErrNotFound = net.ErrNotFound

// Model is the subset of the hub model metadata used by metrics.
type Model struct {
	ID          string         `json:"id"`
	Downloads   int            `json:"downloads"`
	Likes       int            `json:"likes"`
	PipelineTag string         `json:"pipeline_tag"`
	Tags        []string       `json:"tags"`
	CardData    map[string]any `json:"cardData"`
	Siblings    []Sibling      `json:"siblings"`
}

// Sibling is a file entry in a hub repository.
type Sibling struct {
	Name string `json:"rfilename"`
}

// Dataset is the subset of the hub dataset metadata used by metrics.
type Dataset struct {
	ID        string         `json:"id"`
	Downloads int            `json:"downloads"`
	Likes     int            `json:"likes"`
	CardData  map[string]any `json:"cardData"`
}

// Client is a read-only Hugging Face metadata API client.
type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

// New returns a hub client. Token is optional, used only to lift
// anonymous rate limits.
func New(token string) *Client {
	return &Client{
		BaseURL: defaultBaseURL,
		Token:   token,
		HTTP:    net.GetHTTPClient(),
	}
}

// GetModel fetches model metadata for an id like "owner/repo".
// Every failure is reported as ErrNotFound.
func (c *Client) GetModel(ctx context.Context, id string) (*Model, error) {
	id = normalizeID(id)
	if id == "" {
		return nil, ErrNotFound
	}

	var m Model
	url := fmt.Sprintf("%s/api/models/%s", c.BaseURL, id)
	if err := net.GetJSON(ctx, c.HTTP, url, &m, net.WithBearer(c.Token)); err != nil {
		slog.Debug("hub model lookup failed", "id", id, "error", err)
		return nil, ErrNotFound
	}
	return &m, nil
}

// GetDataset fetches dataset metadata for an id like "owner/name" or "name".
// Every failure is reported as ErrNotFound.
func (c *Client) GetDataset(ctx context.Context, id string) (*Dataset, error) {
	id = strings.TrimPrefix(normalizeID(id), "datasets/")
	if id == "" {
		return nil, ErrNotFound
	}

	var d Dataset
	url := fmt.Sprintf("%s/api/datasets/%s", c.BaseURL, id)
	if err := net.GetJSON(ctx, c.HTTP, url, &d, net.WithBearer(c.Token)); err != nil {
		slog.Debug("hub dataset lookup failed", "id", id, "error", err)
		return nil, ErrNotFound
	}
	return &d, nil
}

// normalizeID accepts either a bare id or a full hub URL.
func normalizeID(id string) string {
	id = strings.TrimSpace(strings.Trim(id, "/"))
	if strings.HasPrefix(id, "http") {
		if idx := strings.Index(id, "huggingface.co/"); idx >= 0 {
			id = strings.Trim(id[idx+len("huggingface.co/"):], "/")
		}
	}
	return id
}
