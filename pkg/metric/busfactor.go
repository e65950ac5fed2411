package metric

import (
	"context"
	"log/slog"
	"math"

	"github.com/google/go-github/v83/github"
	"github.com/mchmarny/modelscore/pkg/evidence"
	"github.com/mchmarny/modelscore/pkg/resource"
)

const contributorPageSize = 100

// BusFactor scores how evenly maintenance is spread over contributors:
// the normalized entropy of the contribution distribution. A single
// contributor (or no discoverable repo) scores 0.0.
func (s *Scorer) BusFactor(ctx context.Context, d *resource.Descriptor) Result {
	return run(func() float64 {
		owner, repo, ok := s.codeRepo(ctx, d)
		if !ok {
			slog.Debug("no code repository discoverable", "name", d.Name)
			return 0.0
		}

		opt := &github.ListContributorsOptions{
			ListOptions: github.ListOptions{PerPage: contributorPageSize},
		}
		contributors, _, err := s.GitHub.Repositories.ListContributors(ctx, owner, repo, opt)
		if err != nil {
			slog.Debug("error listing contributors", "owner", owner, "repo", repo, "error", err)
			return 0.0
		}

		counts := make([]int, 0, len(contributors))
		for _, c := range contributors {
			counts = append(counts, c.GetContributions())
		}
		return contributorEntropy(counts)
	})
}

// contributorEntropy returns the Shannon entropy of the contribution
// distribution normalized by the maximum possible entropy, in [0,1].
func contributorEntropy(counts []int) float64 {
	total := 0
	for _, c := range counts {
		total += c
	}
	if len(counts) <= 1 || total == 0 {
		return 0.0
	}

	entropy := 0.0
	for _, c := range counts {
		if c <= 0 {
			continue
		}
		p := float64(c) / float64(total)
		entropy -= p * math.Log2(p)
	}

	return entropy / math.Log2(float64(len(counts)))
}

// codeRepo resolves the GitHub owner/repo backing the resource: the
// resource itself for GitHub URLs, otherwise the first github.com link
// in the README evidence.
func (s *Scorer) codeRepo(ctx context.Context, d *resource.Descriptor) (owner, repo string, ok bool) {
	if d.Host == resource.HostGitHub {
		return d.OwnerRepo()
	}

	ev := s.Evidence.Locate(ctx, d, evidence.ReadmeNames)
	if ev.Empty() {
		return "", "", false
	}
	return findGitHubLink(ev.Text)
}
