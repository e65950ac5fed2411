package evidence

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/mchmarny/modelscore/pkg/net"
	"github.com/mchmarny/modelscore/pkg/resource"
)

// Source identifies where a piece of evidence came from.
type Source string

const (
	SourceLocal  Source = "local-file"
	SourceRemote Source = "remote-fetch"
	SourceNone   Source = "none"
)

var (
	// ReadmeNames are the recognized README filenames in priority order.
	ReadmeNames = []string{"README.md", "README.rst", "README.txt", "README"}

	// LicenseNames are the recognized LICENSE filenames in priority order.
	// A LICENSE file is authoritative over README for license evidence.
	LicenseNames = []string{"LICENSE", "LICENSE.txt", "LICENSE.md", "LICENSE.rst"}

	branches = []string{"main", "master"}
)

// Evidence is a text blob (README or LICENSE content) plus its provenance.
// Text is always valid UTF-8; invalid bytes are replaced on read.
type Evidence struct {
	Text   string
	Source Source
}

// Empty reports whether the evidence carries no usable text.
func (e Evidence) Empty() bool {
	return e.Source == SourceNone || strings.TrimSpace(e.Text) == ""
}

// None is the "no evidence found" value. Callers treat it as a
// defined degraded state, never as an error.
func None() Evidence {
	return Evidence{Source: SourceNone}
}

// Locator finds candidate text evidence for a resource: local disk first,
// then optional remote fetch. A nil Client means the remote-fetch
// capability is absent, which is a skip, not an error.
type Locator struct {
	Client *http.Client
}

// Locate checks local candidate filenames in priority order, then falls
// back to host-specific raw-content URLs. Returns None() when nothing
// was found anywhere.
func (l *Locator) Locate(ctx context.Context, d *resource.Descriptor, filenames []string) Evidence {
	if d == nil || len(filenames) == 0 {
		return None()
	}

	if d.LocalDir != "" {
		if ev, ok := readLocal(d.LocalDir, filenames); ok {
			return ev
		}
	}

	if l.Client == nil || d.URL == "" {
		return None()
	}

	for _, url := range candidateURLs(d, filenames) {
		text, err := net.GetText(ctx, l.Client, url)
		if err != nil {
			if !errors.Is(err, net.ErrNotFound) {
				slog.Debug("remote evidence fetch failed", "url", url, "error", err)
			}
			continue
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		slog.Debug("remote evidence found", "url", url)
		return Evidence{Text: text, Source: SourceRemote}
	}

	return None()
}

func readLocal(dir string, filenames []string) (Evidence, bool) {
	for _, name := range filenames {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		b, err := os.ReadFile(path)
		if err != nil {
			// reading error, skip to next candidate
			slog.Debug("error reading local evidence", "path", path, "error", err)
			continue
		}
		text := strings.ToValidUTF8(string(b), "�")
		return Evidence{Text: text, Source: SourceLocal}, true
	}
	return Evidence{}, false
}

// candidateURLs builds the ordered list of raw-content URLs to try for
// the descriptor: host-specific templates first, generic patterns last.
func candidateURLs(d *resource.Descriptor, filenames []string) []string {
	base := strings.TrimRight(d.URL, "/")
	urls := make([]string, 0, len(branches)*len(filenames)+len(filenames))

	switch d.Host {
	case resource.HostGitHub:
		if owner, repo, ok := d.OwnerRepo(); ok {
			for _, branch := range branches {
				for _, name := range filenames {
					urls = append(urls, fmt.Sprintf("https://raw.githubusercontent.com/%s/%s/%s/%s", owner, repo, branch, name))
				}
			}
		}
	case resource.HostHuggingFace:
		if d.Name != "" {
			for _, branch := range branches {
				for _, name := range filenames {
					urls = append(urls, fmt.Sprintf("https://huggingface.co/%s/raw/%s/%s", d.Name, branch, name))
				}
			}
		}
	}

	// generic fallback patterns
	for _, branch := range branches {
		urls = append(urls, fmt.Sprintf("%s/raw/%s/%s", base, branch, filenames[0]))
	}
	urls = append(urls, fmt.Sprintf("%s/%s", base, filenames[0]))

	return urls
}
