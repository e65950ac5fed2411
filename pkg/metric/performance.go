package metric

import (
	"context"
	"log/slog"

	"github.com/mchmarny/modelscore/pkg/resource"
)

// downloadTiers maps raw hub download counts to a fixed score.
// Ordered by descending exclusive lower bound, first match wins.
// The table is monotonic and exhaustive: every non-negative count maps
// to exactly one tier, zero and NotFound both score 0.0.
var downloadTiers = []struct {
	moreThan int
	score    float64
}{
	{1_000_000, 1.0},
	{100_000, 0.8},
	{10_000, 0.6},
	{1_000, 0.4},
	{100, 0.2},
	{0, 0.1},
}

// PerformanceClaims scores resource popularity/validation from hub
// download counts. A missing model or any registry failure yields 0.0.
func (s *Scorer) PerformanceClaims(ctx context.Context, d *resource.Descriptor) Result {
	return run(func() float64 {
		m, err := s.Hub.GetModel(ctx, d.Name)
		if err != nil {
			slog.Debug("model not found on hub", "name", d.Name)
			return 0.0
		}
		slog.Debug("hub model info", "name", d.Name, "downloads", m.Downloads)
		return downloadScore(m.Downloads)
	})
}

func downloadScore(downloads int) float64 {
	for _, t := range downloadTiers {
		if downloads > t.moreThan {
			return t.score
		}
	}
	return 0.0
}
