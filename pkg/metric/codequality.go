package metric

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mchmarny/modelscore/pkg/resource"
)

// CodeQuality scores the presence of key engineering artifacts:
// dependency manifest, tests directory, CI config, and containerization.
// The score is the fraction of checks that pass. Local directory checks
// are preferred; without one the GitHub root listing is consulted.
func (s *Scorer) CodeQuality(ctx context.Context, d *resource.Descriptor) Result {
	return run(func() float64 {
		if d.LocalDir != "" {
			return localQualityScore(d.LocalDir)
		}

		owner, repo, ok := s.codeRepo(ctx, d)
		if !ok {
			return 0.0
		}

		_, entries, _, err := s.GitHub.Repositories.GetContents(ctx, owner, repo, "", nil)
		if err != nil {
			slog.Debug("error listing repo contents", "owner", owner, "repo", repo, "error", err)
			return 0.0
		}

		files := make(map[string]bool, len(entries))
		dirs := make(map[string]bool, len(entries))
		for _, e := range entries {
			if e.GetType() == "dir" {
				dirs[e.GetName()] = true
			} else {
				files[e.GetName()] = true
			}
		}

		checks := []bool{
			files["requirements.txt"] || files["pyproject.toml"],
			dirs["tests"],
			dirs[".github"] || files[".gitlab-ci.yml"],
			files["Dockerfile"],
		}
		return fractionTrue(checks)
	})
}

func localQualityScore(dir string) float64 {
	checks := []bool{
		fileExists(filepath.Join(dir, "requirements.txt")) || fileExists(filepath.Join(dir, "pyproject.toml")),
		dirExists(filepath.Join(dir, "tests")),
		dirExists(filepath.Join(dir, ".github")) || fileExists(filepath.Join(dir, ".gitlab-ci.yml")),
		fileExists(filepath.Join(dir, "Dockerfile")),
	}
	return fractionTrue(checks)
}

func fractionTrue(checks []bool) float64 {
	hits := 0
	for _, ok := range checks {
		if ok {
			hits++
		}
	}
	return float64(hits) / float64(len(checks))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
