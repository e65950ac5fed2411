package metric

import (
	"context"
	"regexp"
	"strings"

	"github.com/mchmarny/modelscore/pkg/evidence"
	"github.com/mchmarny/modelscore/pkg/resource"
)

// Ramp-up scoring weights (total = 1.0):
// README length up to 0.40, installation section 0.35, code snippets 0.25.
const (
	installBonus = 0.35
	codeBonus    = 0.25
)

// lengthTiers maps word counts to the length sub-score. Ordered by
// descending threshold, first match wins; monotonic non-decreasing
// in word count.
var lengthTiers = []struct {
	minWords int
	score    float64
}{
	{500, 0.4},
	{200, 0.25},
	{50, 0.1},
	{0, 0.0},
}

var (
	installHeadingRE = regexp.MustCompile(`(?mi)^\s*(?:#{1,6}\s*)?(?:installation|install|setup|getting started|quickstart|usage)\b`)

	installPhrases = []string{
		"pip install",
		"conda install",
		"docker",
		"docker-compose",
		"requirements.txt",
		"setup.py",
		"poetry add",
	}

	codeFence      = "```"
	indentedCodeRE = regexp.MustCompile(`(?m)^( {4}|\t).+`)

	wordRE = regexp.MustCompile(`\w+`)
)

// RampUp estimates how quickly a newcomer could use a resource,
// derived from README quality signals.
func (s *Scorer) RampUp(ctx context.Context, d *resource.Descriptor) Result {
	return run(func() float64 {
		ev := s.Evidence.Locate(ctx, d, evidence.ReadmeNames)
		return rampUpScore(ev)
	})
}

func rampUpScore(ev evidence.Evidence) float64 {
	if ev.Empty() {
		return 0.0
	}

	total := lengthScore(wordCount(ev.Text))
	if hasInstallSection(ev.Text) {
		total += installBonus
	}
	if hasCodeSnippet(ev.Text) {
		total += codeBonus
	}

	if total > 1.0 {
		total = 1.0
	}
	return total
}

func wordCount(text string) int {
	return len(wordRE.FindAllString(text, -1))
}

func lengthScore(words int) float64 {
	for _, t := range lengthTiers {
		if words >= t.minWords {
			return t.score
		}
	}
	return 0.0
}

func hasInstallSection(text string) bool {
	if installHeadingRE.MatchString(text) {
		return true
	}
	low := strings.ToLower(text)
	for _, phrase := range installPhrases {
		if strings.Contains(low, phrase) {
			return true
		}
	}
	return false
}

func hasCodeSnippet(text string) bool {
	return strings.Contains(text, codeFence) || indentedCodeRE.MatchString(text)
}
