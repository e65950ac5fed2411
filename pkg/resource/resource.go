package resource

import "strings"

// Category classifies a resource URL.
type Category string

const (
	CategoryModel   Category = "MODEL"
	CategoryDataset Category = "DATASET"
	CategoryCode    Category = "CODE"
)

// Host identifies the hosting platform of a resource.
type Host string

const (
	HostGitHub      Host = "github"
	HostHuggingFace Host = "huggingface"
	HostGeneric     Host = "generic"
)

// Descriptor identifies a scoring target. It is an immutable input
// to every metric: built once per URL, never mutated by metrics.
type Descriptor struct {
	URL      string   `json:"url" yaml:"url"`
	Name     string   `json:"name" yaml:"name"`
	Category Category `json:"category" yaml:"category"`
	Host     Host     `json:"host" yaml:"host"`
	LocalDir string   `json:"local_dir,omitempty" yaml:"localDir,omitempty"`
}

// Parse builds a Descriptor from a resource URL.
//
// Classification rules:
//   - Hugging Face dataset pages -> DATASET
//   - other Hugging Face pages -> MODEL
//   - git hosts (GitHub/GitLab/Bitbucket) and everything else -> CODE
func Parse(rawURL string) *Descriptor {
	u := strings.TrimSpace(rawURL)
	d := &Descriptor{
		URL:      u,
		Category: CategoryCode,
		Host:     HostGeneric,
	}

	low := strings.ToLower(u)

	switch {
	case strings.Contains(low, "huggingface.co"):
		d.Host = HostHuggingFace
		d.Category = CategoryModel
		if strings.Contains(low, "/datasets/") {
			d.Category = CategoryDataset
		}
		d.Name = strings.Trim(after(u, "huggingface.co/"), "/")
	case strings.Contains(low, "github.com"):
		d.Host = HostGitHub
		d.Name = lastTwoSegments(u)
	case strings.Contains(low, "gitlab.com") || strings.Contains(low, "bitbucket.org"):
		d.Name = lastTwoSegments(u)
	default:
		d.Name = strings.Trim(u, "/")
	}

	return d
}

// OwnerRepo splits the descriptor name into owner and repo parts.
func (d *Descriptor) OwnerRepo() (owner, repo string, ok bool) {
	name := strings.TrimPrefix(d.Name, "datasets/")
	parts := strings.Split(name, "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], strings.TrimSuffix(parts[1], ".git"), true
}

func after(s, marker string) string {
	idx := strings.Index(strings.ToLower(s), marker)
	if idx < 0 {
		return ""
	}
	return s[idx+len(marker):]
}

func lastTwoSegments(u string) string {
	parts := strings.Split(strings.Trim(u, "/"), "/")
	if len(parts) < 2 {
		return strings.Trim(u, "/")
	}
	owner := parts[len(parts)-2]
	repo := strings.TrimSuffix(parts[len(parts)-1], ".git")
	return owner + "/" + repo
}
