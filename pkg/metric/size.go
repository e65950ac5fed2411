package metric

import (
	"strings"
	"time"

	"github.com/mchmarny/modelscore/pkg/resource"
)

// SizeScore estimates model deployability per hardware target.
type SizeScore struct {
	RaspberryPi float64 `json:"raspberry_pi" yaml:"raspberryPi"`
	JetsonNano  float64 `json:"jetson_nano" yaml:"jetsonNano"`
	DesktopPC   float64 `json:"desktop_pc" yaml:"desktopPc"`
	AWSServer   float64 `json:"aws_server" yaml:"awsServer"`
}

// name-pattern size buckets, checked huge -> large -> tiny -> default
var (
	hugePatterns  = []string{"70b", "175b", "llama-2-70", "falcon-40", "gpt-j", "gpt-neo"}
	largePatterns = []string{"large", "xl", "xxl", "7b", "13b"}
	tinyPatterns  = []string{"tiny", "mini", "small", "distil", "mobile", "lite"}
)

var sizeBuckets = map[string]SizeScore{
	"huge":  {RaspberryPi: 0.0, JetsonNano: 0.0, DesktopPC: 0.2, AWSServer: 0.5},
	"large": {RaspberryPi: 0.0, JetsonNano: 0.1, DesktopPC: 0.5, AWSServer: 0.8},
	"tiny":  {RaspberryPi: 0.8, JetsonNano: 0.9, DesktopPC: 1.0, AWSServer: 1.0},
	"base":  {RaspberryPi: 0.1, JetsonNano: 0.4, DesktopPC: 0.8, AWSServer: 0.9},
}

// Size estimates per-hardware deployability from model-name patterns.
// Non-MODEL resources get all zeros.
func (s *Scorer) Size(d *resource.Descriptor) (SizeScore, int64) {
	start := time.Now()
	score := sizeScore(d)
	return score, latencyMS(start)
}

func sizeScore(d *resource.Descriptor) SizeScore {
	if d.Category != resource.CategoryModel {
		return SizeScore{}
	}

	combined := strings.ToLower(d.Name + " " + d.URL)
	switch {
	case containsAny(combined, hugePatterns):
		return sizeBuckets["huge"]
	case containsAny(combined, largePatterns):
		return sizeBuckets["large"]
	case containsAny(combined, tinyPatterns):
		return sizeBuckets["tiny"]
	default:
		// covers bert-base, gpt2, and similar mid-sized models
		return sizeBuckets["base"]
	}
}

func containsAny(s string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}
