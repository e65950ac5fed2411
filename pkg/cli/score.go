package cli

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	urfave "github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/mchmarny/modelscore/pkg/metric"
	"github.com/mchmarny/modelscore/pkg/resource"
	"github.com/mchmarny/modelscore/pkg/store"
)

const maxScoreParallelism = 8

var (
	urlFlag = &urfave.StringSliceFlag{
		Name:    "url",
		Aliases: []string{"u"},
		Usage:   "Resource URL to score (repeatable)",
	}

	fileFlag = &urfave.StringFlag{
		Name:    "file",
		Aliases: []string{"f"},
		Usage:   "Path to a file with one resource URL per line",
	}

	localDirFlag = &urfave.StringFlag{
		Name:  "local",
		Usage: "Local checkout of the resource, used before any remote fetch",
	}

	allCategoriesFlag = &urfave.BoolFlag{
		Name:  "all",
		Usage: "Score every URL, not just models",
	}

	noCacheFlag = &urfave.BoolFlag{
		Name:  "no-cache",
		Usage: "Skip the rating cache and re-score",
	}

	scoreCmd = &urfave.Command{
		Name:            "score",
		HideHelpCommand: true,
		Usage:           "Score one or more resource URLs and print one rating per line",
		Action:          cmdScore,
		Flags: []urfave.Flag{
			urlFlag,
			fileFlag,
			localDirFlag,
			allCategoriesFlag,
			noCacheFlag,
		},
	}
)

func cmdScore(c *urfave.Context) error {
	urls := c.StringSlice(urlFlag.Name)

	if path := c.String(fileFlag.Name); path != "" {
		fromFile, err := readURLFile(path)
		if err != nil {
			return err
		}
		urls = append(urls, fromFile...)
	}

	if len(urls) == 0 {
		return fmt.Errorf("nothing to score, provide --%s or --%s", urlFlag.Name, fileFlag.Name)
	}

	app := getAppConfig(c)
	scorer := metric.NewScorer(c.Context, app.Config)

	localDir := c.String(localDirFlag.Name)
	if localDir != "" && len(urls) > 1 {
		return fmt.Errorf("--%s applies to a single URL only", localDirFlag.Name)
	}

	all := c.Bool(allCategoriesFlag.Name)
	useCache := !c.Bool(noCacheFlag.Name)

	ratings := make([]*metric.Rating, len(urls))
	g, ctx := errgroup.WithContext(c.Context)
	g.SetLimit(scoreParallelism())

	for i, url := range urls {
		g.Go(func() error {
			d := resource.Parse(url)
			d.LocalDir = localDir

			if d.Category != resource.CategoryModel && !all {
				slog.Debug("skipping non-model resource", "url", url, "category", d.Category)
				return nil
			}

			if useCache {
				if cached, err := app.Store.GetFresh(url, store.DefaultMaxAge); err == nil && cached != nil {
					slog.Debug("rating cache hit", "url", url)
					ratings[i] = cached
					return nil
				}
			}

			r := scorer.Rate(ctx, d)
			ratings[i] = r

			if useCache {
				if err := app.Store.Save(url, r); err != nil {
					slog.Debug("error caching rating", "url", url, "error", err)
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	for _, r := range ratings {
		if r == nil {
			continue
		}
		if err := encode(os.Stdout, r); err != nil {
			return fmt.Errorf("encoding rating for %s: %w", r.URL, err)
		}
	}
	return nil
}

func readURLFile(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading url file %s: %w", path, err)
	}

	urls := make([]string, 0)
	for _, line := range strings.Split(string(b), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	return urls, nil
}

func scoreParallelism() int {
	if n := runtime.NumCPU(); n < maxScoreParallelism {
		return n
	}
	return maxScoreParallelism
}
