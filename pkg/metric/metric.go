package metric

import (
	"context"
	"math"
	"net/http"
	"time"

	"github.com/google/go-github/v83/github"
	"github.com/mchmarny/modelscore/pkg/config"
	"github.com/mchmarny/modelscore/pkg/evidence"
	"github.com/mchmarny/modelscore/pkg/genai"
	"github.com/mchmarny/modelscore/pkg/hub"
	"github.com/mchmarny/modelscore/pkg/net"
)

// Result is the only externally visible output shape of a metric:
// a score in [0.0, 1.0] rounded to 4 decimals plus the measured
// latency rounded to the nearest millisecond.
type Result struct {
	Score   float64 `json:"score" yaml:"score"`
	Latency int64   `json:"latency_ms" yaml:"latencyMs"`
}

// Scorer holds the injected collaborators shared by all metrics.
// Optional capabilities (remote fetch, LLM inference) are modeled as
// nullable fields checked at routing time, never probed at runtime.
type Scorer struct {
	Evidence *evidence.Locator
	Hub      *hub.Client
	GenAI    *genai.Client // nil when no API key is configured
	GitHub   *github.Client
}

// NewScorer wires a scorer from the process config.
func NewScorer(ctx context.Context, cfg *config.Config) *Scorer {
	var ghHTTP *http.Client
	if cfg.GitHubToken != "" {
		ghHTTP = net.GetOAuthClient(ctx, cfg.GitHubToken)
	}

	return &Scorer{
		Evidence: &evidence.Locator{Client: net.GetHTTPClient()},
		Hub:      hub.New(cfg.HubToken),
		GenAI:    genai.New(cfg.GenAIEndpoint, cfg.GenAIModel, cfg.GenAIKey),
		GitHub:   github.NewClient(ghHTTP),
	}
}

// run times the metric body, clamps the score to [0,1], and rounds
// score and latency. Every metric goes through here so no failure
// path can escape the (score, latency) contract.
func run(fn func() float64) Result {
	start := time.Now()
	score := clamp01(fn())
	return Result{
		Score:   round4(score),
		Latency: latencyMS(start),
	}
}

func latencyMS(start time.Time) int64 {
	ms := time.Since(start).Round(time.Millisecond).Milliseconds()
	if ms < 0 {
		return 0
	}
	return ms
}

func clamp01(v float64) float64 {
	if v < 0.0 || math.IsNaN(v) {
		return 0.0
	}
	if v > 1.0 {
		return 1.0
	}
	return v
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
