package metric

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/mchmarny/modelscore/pkg/evidence"
	"github.com/mchmarny/modelscore/pkg/resource"
)

// dataset quality sub-score weights
const (
	datasetCardWeight      = 0.5
	datasetDownloadsWeight = 0.3
	datasetLikesWeight     = 0.2

	datasetDownloadsFloor = 1000
	datasetLikesFloor     = 10
)

var (
	githubLinkRE  = regexp.MustCompile(`github\.com/([A-Za-z0-9_.-]+)/([A-Za-z0-9_.-]+)`)
	datasetLinkRE = regexp.MustCompile(`huggingface\.co/datasets/([A-Za-z0-9_.-]+(?:/[A-Za-z0-9_.-]+)?)`)

	datasetTagPrefix = "dataset:"

	// wellKnownDatasets are commonly used training sets matched by name
	// against the resource name, URL, and README text.
	wellKnownDatasets = []string{
		"glue", "squad", "squad_v2", "wikitext", "wikipedia", "bookcorpus",
		"imagenet", "coco", "mnist", "cifar10", "cifar100",
		"imdb", "sst2", "mrpc", "qqp", "mnli", "qnli", "rte", "wnli",
		"conll2003", "wmt14", "wmt16", "common_voice", "librispeech",
	}
)

// DatasetAndCode scores the discoverability of both a training dataset
// and a code repository from the model's card: 1.0 when both are found,
// 0.5 for one, 0.0 for none. Only meaningful for hub-hosted models.
func (s *Scorer) DatasetAndCode(ctx context.Context, d *resource.Descriptor) Result {
	return run(func() float64 {
		if d.Host != resource.HostHuggingFace {
			return 0.0
		}

		ev := s.Evidence.Locate(ctx, d, evidence.ReadmeNames)

		hasDataset := len(s.datasetRefs(ctx, d, ev.Text)) > 0
		_, _, hasCode := findGitHubLink(ev.Text)

		switch {
		case hasDataset && hasCode:
			return 1.0
		case hasDataset || hasCode:
			return 0.5
		default:
			return 0.0
		}
	})
}

// DatasetQuality scores the best referenced dataset: card presence,
// download volume, and likes. CODE resources score 0.0, they do not
// reference training datasets.
func (s *Scorer) DatasetQuality(ctx context.Context, d *resource.Descriptor) Result {
	return run(func() float64 {
		if d.Category == resource.CategoryCode {
			return 0.0
		}

		if d.Category == resource.CategoryDataset {
			return s.datasetScore(ctx, d.Name)
		}

		ev := s.Evidence.Locate(ctx, d, evidence.ReadmeNames)
		refs := s.datasetRefs(ctx, d, ev.Text)
		if len(refs) == 0 {
			return 0.0
		}

		// best-case quality over all referenced datasets
		best := 0.0
		for _, ref := range refs {
			if score := s.datasetScore(ctx, ref); score > best {
				best = score
			}
		}
		return best
	})
}

func (s *Scorer) datasetScore(ctx context.Context, id string) float64 {
	ds, err := s.Hub.GetDataset(ctx, id)
	if err != nil {
		slog.Debug("dataset lookup failed", "id", id)
		return 0.0
	}

	score := 0.0
	if len(ds.CardData) > 0 {
		score += datasetCardWeight
	}
	if ds.Downloads > datasetDownloadsFloor {
		score += datasetDownloadsWeight
	}
	if ds.Likes > datasetLikesFloor {
		score += datasetLikesWeight
	}
	return score
}

// datasetRefs collects dataset references for a model: hub card tags,
// explicit dataset links in the README, and well-known dataset names
// mentioned in the name/URL/README.
func (s *Scorer) datasetRefs(ctx context.Context, d *resource.Descriptor, readme string) []string {
	seen := make(map[string]bool)
	refs := make([]string, 0)

	add := func(ref string) {
		ref = strings.TrimSpace(ref)
		if ref != "" && !seen[ref] {
			seen[ref] = true
			refs = append(refs, ref)
		}
	}

	if m, err := s.Hub.GetModel(ctx, d.Name); err == nil {
		for _, tag := range m.Tags {
			if strings.HasPrefix(tag, datasetTagPrefix) {
				add(strings.TrimPrefix(tag, datasetTagPrefix))
			}
		}
	}

	for _, match := range datasetLinkRE.FindAllStringSubmatch(readme, -1) {
		add(match[1])
	}

	haystack := strings.ToLower(d.Name + " " + d.URL + " " + readme)
	for _, name := range wellKnownDatasets {
		if strings.Contains(haystack, name) {
			add(name)
		}
	}

	return refs
}

// findGitHubLink returns the owner/repo of the first github.com link
// in the given text.
func findGitHubLink(text string) (owner, repo string, ok bool) {
	m := githubLinkRE.FindStringSubmatch(text)
	if m == nil {
		return "", "", false
	}
	return m[1], strings.TrimSuffix(m[2], ".git"), true
}
