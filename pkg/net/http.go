package net

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	maxIdleConns     = 10
	timeoutInSeconds = 20
	clientAgent      = "modelscore/1.0"
)

var (
	// ErrNotFound indicates the remote resource does not exist (HTTP 404).
	ErrNotFound = errors.New("resource not found")

	reqTransport = &http.Transport{
		MaxIdleConns:          maxIdleConns,
		IdleConnTimeout:       timeoutInSeconds * time.Second,
		DisableCompression:    true,
		DisableKeepAlives:     false,
		ResponseHeaderTimeout: time.Duration(timeoutInSeconds) * time.Second,
	}
)

// RequestOption mutates the outbound request before it is sent.
type RequestOption func(*http.Request)

// WithBearer sets the Authorization header on the request.
func WithBearer(token string) RequestOption {
	return func(r *http.Request) {
		if token != "" {
			r.Header.Set("Authorization", "Bearer "+token)
		}
	}
}

// GetHTTPClient returns an HTTP client with bounded timeouts
// backed by the shared transport.
func GetHTTPClient() *http.Client {
	return &http.Client{
		Timeout:   time.Duration(timeoutInSeconds) * time.Second,
		Transport: reqTransport,
	}
}

func getResp(ctx context.Context, client *http.Client, url string, opts ...RequestOption) (*http.Response, error) {
	if client == nil {
		client = GetHTTPClient()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating HTTP Get request: %w", err)
	}

	req.Header.Set("User-Agent", clientAgent)
	for _, opt := range opts {
		opt(req)
	}

	return client.Do(req)
}

// GetJSON retrieves the HTTP content and decodes it into the passed target.
// Returns ErrNotFound on 404 and an error on any other non-200 status.
func GetJSON[T any](ctx context.Context, client *http.Client, url string, target *T, opts ...RequestOption) error {
	resp, err := getResp(ctx, client, url, opts...)
	if err != nil {
		return fmt.Errorf("error executing HTTP Get request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status getting %s: %d - %s", url, resp.StatusCode, resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("error decoding content: %w", err)
	}
	return nil
}

// GetText retrieves the HTTP content as a string.
// Returns ErrNotFound on 404 and an error on any other non-200 status.
func GetText(ctx context.Context, client *http.Client, url string, opts ...RequestOption) (string, error) {
	resp, err := getResp(ctx, client, url, opts...)
	if err != nil {
		return "", fmt.Errorf("error executing HTTP Get request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status getting %s: %d - %s", url, resp.StatusCode, resp.Status)
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading content: %w", err)
	}

	// Malformed encoding is never fatal, invalid bytes are replaced.
	return strings.ToValidUTF8(string(b), "�"), nil
}
