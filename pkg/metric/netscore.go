package metric

// netWeights is the weighted blend of individual metrics into the
// overall rating. Weights sum to 1.0.
var netWeights = map[string]float64{
	"ramp_up_time":           0.15,
	"bus_factor":             0.15,
	"license":                0.15,
	"dataset_and_code_score": 0.20,
	"dataset_quality":        0.15,
	"code_quality":           0.10,
	"performance_claims":     0.10,
}

// NetScore blends the given metric scores by their configured weights.
// Metrics absent from the map are ignored and the remaining weights are
// renormalized, so a partial score set still lands in [0,1].
func NetScore(scores map[string]float64) float64 {
	weighted := 0.0
	total := 0.0
	for name, weight := range netWeights {
		score, ok := scores[name]
		if !ok {
			continue
		}
		weighted += clamp01(score) * weight
		total += weight
	}
	if total == 0 {
		return 0.0
	}
	return round4(weighted / total)
}
