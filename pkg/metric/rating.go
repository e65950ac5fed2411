package metric

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/mchmarny/modelscore/pkg/resource"
)

// Rating is the full scorecard for a single resource, flattened for
// NDJSON output: each metric carries its own latency alongside the score.
type Rating struct {
	Name     string `json:"name" yaml:"name"`
	Category string `json:"category" yaml:"category"`
	URL      string `json:"url" yaml:"url"`

	NetScore        float64 `json:"net_score" yaml:"netScore"`
	NetScoreLatency int64   `json:"net_score_latency" yaml:"netScoreLatency"`

	RampUp        float64 `json:"ramp_up_time" yaml:"rampUpTime"`
	RampUpLatency int64   `json:"ramp_up_time_latency" yaml:"rampUpTimeLatency"`

	BusFactor        float64 `json:"bus_factor" yaml:"busFactor"`
	BusFactorLatency int64   `json:"bus_factor_latency" yaml:"busFactorLatency"`

	PerformanceClaims        float64 `json:"performance_claims" yaml:"performanceClaims"`
	PerformanceClaimsLatency int64   `json:"performance_claims_latency" yaml:"performanceClaimsLatency"`

	License        float64 `json:"license" yaml:"license"`
	LicenseLatency int64   `json:"license_latency" yaml:"licenseLatency"`

	Size        SizeScore `json:"size_score" yaml:"sizeScore"`
	SizeLatency int64     `json:"size_score_latency" yaml:"sizeScoreLatency"`

	DatasetAndCode        float64 `json:"dataset_and_code_score" yaml:"datasetAndCodeScore"`
	DatasetAndCodeLatency int64   `json:"dataset_and_code_score_latency" yaml:"datasetAndCodeScoreLatency"`

	DatasetQuality        float64 `json:"dataset_quality" yaml:"datasetQuality"`
	DatasetQualityLatency int64   `json:"dataset_quality_latency" yaml:"datasetQualityLatency"`

	CodeQuality        float64 `json:"code_quality" yaml:"codeQuality"`
	CodeQualityLatency int64   `json:"code_quality_latency" yaml:"codeQualityLatency"`
}

// Rate runs every metric for the resource concurrently and blends the
// results into the net score. Each goroutine writes only its own fields
// of the rating, so no locking is needed.
func (s *Scorer) Rate(ctx context.Context, d *resource.Descriptor) *Rating {
	r := &Rating{
		Name:     d.Name,
		Category: string(d.Category),
		URL:      d.URL,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		res := s.RampUp(ctx, d)
		r.RampUp, r.RampUpLatency = res.Score, res.Latency
		return nil
	})
	g.Go(func() error {
		res := s.BusFactor(ctx, d)
		r.BusFactor, r.BusFactorLatency = res.Score, res.Latency
		return nil
	})
	g.Go(func() error {
		res := s.PerformanceClaims(ctx, d)
		r.PerformanceClaims, r.PerformanceClaimsLatency = res.Score, res.Latency
		return nil
	})
	g.Go(func() error {
		res := s.License(ctx, d)
		r.License, r.LicenseLatency = res.Score, res.Latency
		return nil
	})
	g.Go(func() error {
		r.Size, r.SizeLatency = s.Size(d)
		return nil
	})
	g.Go(func() error {
		res := s.DatasetAndCode(ctx, d)
		r.DatasetAndCode, r.DatasetAndCodeLatency = res.Score, res.Latency
		return nil
	})
	g.Go(func() error {
		res := s.DatasetQuality(ctx, d)
		r.DatasetQuality, r.DatasetQualityLatency = res.Score, res.Latency
		return nil
	})
	g.Go(func() error {
		res := s.CodeQuality(ctx, d)
		r.CodeQuality, r.CodeQualityLatency = res.Score, res.Latency
		return nil
	})

	// metric bodies never return errors
	_ = g.Wait()

	r.NetScore = NetScore(map[string]float64{
		"ramp_up_time":           r.RampUp,
		"bus_factor":             r.BusFactor,
		"license":                r.License,
		"dataset_and_code_score": r.DatasetAndCode,
		"dataset_quality":        r.DatasetQuality,
		"code_quality":           r.CodeQuality,
		"performance_claims":     r.PerformanceClaims,
	})
	r.NetScoreLatency = r.RampUpLatency + r.BusFactorLatency + r.PerformanceClaimsLatency +
		r.LicenseLatency + r.SizeLatency + r.DatasetAndCodeLatency +
		r.DatasetQualityLatency + r.CodeQualityLatency

	return r
}
