package net

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHTTPClient(t *testing.T) {
	client := GetHTTPClient()
	require.NotNil(t, client)
	assert.NotZero(t, client.Timeout)
}

func TestGetOAuthClient(t *testing.T) {
	ctx := context.Background()
	client := GetOAuthClient(ctx, "test-token")
	assert.NotNil(t, client)
}

func TestGetJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"downloads": 42}`))
	}))
	defer ts.Close()

	var target struct {
		Downloads int `json:"downloads"`
	}
	err := GetJSON(context.Background(), ts.Client(), ts.URL, &target)
	require.NoError(t, err)
	assert.Equal(t, 42, target.Downloads)
}

func TestGetJSON_NotFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	var target map[string]any
	err := GetJSON(context.Background(), ts.Client(), ts.URL, &target)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetText(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("# README\nhello"))
	}))
	defer ts.Close()

	text, err := GetText(context.Background(), ts.Client(), ts.URL)
	require.NoError(t, err)
	assert.Contains(t, text, "hello")
}

func TestGetText_ReplacesInvalidUTF8(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte{'o', 'k', 0xff, 0xfe})
	}))
	defer ts.Close()

	text, err := GetText(context.Background(), ts.Client(), ts.URL)
	require.NoError(t, err)
	assert.Contains(t, text, "ok")
	assert.True(t, len(text) > 2)
}

func TestGetText_ServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	_, err := GetText(context.Background(), ts.Client(), ts.URL)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestWithBearer(t *testing.T) {
	var got string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		_, _ = w.Write([]byte("ok"))
	}))
	defer ts.Close()

	_, err := GetText(context.Background(), ts.Client(), ts.URL, WithBearer("secret"))
	require.NoError(t, err)
	assert.Equal(t, "Bearer secret", got)
}
