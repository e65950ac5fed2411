package metric

import (
	"context"
	"log/slog"
	"strings"

	"github.com/mchmarny/modelscore/pkg/evidence"
	"github.com/mchmarny/modelscore/pkg/resource"
)

// licenseKeywords is the heuristic fallback table: priority ordered,
// first case-insensitive substring match wins. The lesser/LGPL entries
// sit above the GPL ones so the weaker copyleft is not shadowed.
var licenseKeywords = []struct {
	keyword string
	label   string
	score   float64
}{
	{"mit", "MIT", 1.0},
	{"apache", "Apache-2.0", 0.95},
	{"bsd", "BSD", 0.9},
	{"lesser general public license", "LGPL", 0.6},
	{"lgpl", "LGPL", 0.6},
	{"general public license", "GPL", 0.4},
	{"gpl", "GPL", 0.4},
	{"mozilla", "MPL", 0.8},
	{"proprietary", "Proprietary", 0.0},
}

// License scores how permissively the resource's license can be reused.
// Evidence preference: LICENSE file, then README. The LLM classifier is
// consulted only when configured; any failure there falls back to the
// keyword heuristic.
func (s *Scorer) License(ctx context.Context, d *resource.Descriptor) Result {
	return run(func() float64 {
		ev := s.Evidence.Locate(ctx, d, evidence.LicenseNames)
		if ev.Empty() {
			ev = s.Evidence.Locate(ctx, d, evidence.ReadmeNames)
		}

		if s.GenAI != nil {
			v, err := s.GenAI.ClassifyLicense(ctx, ev.Text)
			if err == nil {
				slog.Debug("license classified by model", "score", v.CompatibilityScore, "spdx", v.SPDX)
				return v.CompatibilityScore
			}
			slog.Debug("license classification unavailable, using heuristic", "error", err)
		}

		score, label := heuristicLicenseScore(ev.Text)
		slog.Debug("license heuristic", "label", label, "score", score)
		return score
	})
}

// heuristicLicenseScore maps license text to a fixed compatibility score.
// Unknown license is a conservative 0.0, never random.
func heuristicLicenseScore(text string) (float64, string) {
	if strings.TrimSpace(text) == "" {
		return 0.0, "NO_LICENSE_DETECTED"
	}

	low := strings.ToLower(text)
	for _, k := range licenseKeywords {
		if strings.Contains(low, k.keyword) {
			return k.score, k.label
		}
	}

	if strings.Contains(low, "all rights reserved") || strings.Contains(low, "copyright") {
		return 0.0, "PROPRIETARY-LIKE"
	}

	return 0.0, "UNKNOWN"
}
