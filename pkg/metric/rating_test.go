package metric

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mchmarny/modelscore/pkg/evidence"
	"github.com/mchmarny/modelscore/pkg/resource"
)

func TestRate(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	dir := t.TempDir()
	readme := strings.Repeat("word ", 600) + "\n## Installation\npip install demo\n```\nimport demo\n```\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte(readme), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "LICENSE"), []byte("MIT License"), 0600))

	s := &Scorer{
		Evidence: &evidence.Locator{},
		Hub:      testHubClient(srv),
	}

	d := resource.Parse("https://huggingface.co/org/model")
	d.LocalDir = dir

	r := s.Rate(context.Background(), d)

	assert.Equal(t, "org/model", r.Name)
	assert.Equal(t, "MODEL", r.Category)
	assert.Equal(t, 1.0, r.RampUp)
	assert.Equal(t, 1.0, r.License)
	assert.Equal(t, 0.0, r.PerformanceClaims)
	assert.Equal(t, 0.0, r.BusFactor)
	assert.Equal(t, sizeBuckets["base"], r.Size)

	assert.GreaterOrEqual(t, r.NetScore, 0.0)
	assert.LessOrEqual(t, r.NetScore, 1.0)
	assert.GreaterOrEqual(t, r.NetScoreLatency, r.RampUpLatency)
}

func TestRatingJSONShape(t *testing.T) {
	r := &Rating{Name: "org/model", Category: "MODEL"}

	b, err := json.Marshal(r)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))

	for _, key := range []string{
		"name", "category", "net_score", "net_score_latency",
		"ramp_up_time", "ramp_up_time_latency",
		"bus_factor", "bus_factor_latency",
		"performance_claims", "performance_claims_latency",
		"license", "license_latency",
		"size_score", "size_score_latency",
		"dataset_and_code_score", "dataset_and_code_score_latency",
		"dataset_quality", "dataset_quality_latency",
		"code_quality", "code_quality_latency",
	} {
		assert.Contains(t, m, key)
	}

	size, ok := m["size_score"].(map[string]any)
	require.True(t, ok)
	for _, key := range []string{"raspberry_pi", "jetson_nano", "desktop_pc", "aws_server"} {
		assert.Contains(t, size, key)
	}
}
