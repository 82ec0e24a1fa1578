package source

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lite-lake/ipsync/internal/domain"
	"github.com/lite-lake/ipsync/internal/domain/contract"
	"github.com/lite-lake/ipsync/internal/domain/entity"
	"github.com/lite-lake/ipsync/internal/domain/retry"
	"github.com/lite-lake/ipsync/internal/domain/valueobject"
	"github.com/lite-lake/ipsync/internal/infrastructure/logger"
	"github.com/lite-lake/ipsync/internal/infrastructure/prober"
)

type Config struct {
	Fetcher  contract.Fetcher
	Prober   contract.ProberRunner
	WorkDir  string
	Attempts int
	Delay    time.Duration
	Sleep    retry.SleepFunc
}

// Resolver produces the ranked candidates of one family, either by a fresh
// measurement or from the result file a previous measurement left behind.
type Resolver struct {
	fetcher  contract.Fetcher
	prober   contract.ProberRunner
	workDir  string
	attempts int
	delay    time.Duration
	sleep    retry.SleepFunc
}

func NewResolver(cfg *Config) *Resolver {
	r := &Resolver{
		fetcher:  cfg.Fetcher,
		prober:   cfg.Prober,
		workDir:  cfg.WorkDir,
		attempts: cfg.Attempts,
		delay:    cfg.Delay,
		sleep:    cfg.Sleep,
	}
	if r.fetcher == nil {
		r.fetcher = prober.NewHTTPFetcher(nil, domain.DownloadTimeout)
	}
	if r.attempts <= 0 {
		r.attempts = domain.DownloadMaxAttempts
	}
	if r.delay <= 0 {
		r.delay = domain.DownloadRetryDelay
	}
	if r.sleep == nil {
		r.sleep = retry.ContextSleep
	}
	return r
}

// Acquire measures family for a group with quota n > 0.
func (r *Resolver) Acquire(ctx context.Context, g *entity.ResolveGroup, family valueobject.Family) (valueobject.Candidates, error) {
	n := g.Quota(family)
	log := logger.FromContext(ctx).With("family", family.String(), "quota", n)

	args, err := prober.ParseArgs(g.ProberArgs)
	if err != nil {
		return valueobject.Candidates{}, err
	}

	if url := g.SourceURL(family); url != "" {
		if input, ok := args.InputFile(); ok {
			if err := r.download(ctx, url, r.path(input), family, n); err != nil {
				return valueobject.Candidates{}, err
			}
		} else {
			log.Warn("source url set but prober args name no input file, skipping download", "url", url)
		}
	}

	if err := r.prober.Run(ctx, args.WithQuota(n)); err != nil {
		if !errors.Is(err, domain.ErrProberFailed) {
			err = fmt.Errorf("%w: %v", domain.ErrProberFailed, err)
		}
		return valueobject.Candidates{}, err
	}

	return r.read(ctx, args.ResultFile(), family, n), nil
}

// ReadExisting returns every row of family from the last result file without
// running the prober.
func (r *Resolver) ReadExisting(ctx context.Context, g *entity.ResolveGroup, family valueobject.Family) (valueobject.Candidates, error) {
	args, err := prober.ParseArgs(g.ProberArgs)
	if err != nil {
		return valueobject.Candidates{}, err
	}
	return r.read(ctx, args.ResultFile(), family, 0), nil
}

func (r *Resolver) read(ctx context.Context, file string, family valueobject.Family, limit int) valueobject.Candidates {
	log := logger.FromContext(ctx).With("family", family.String())
	path := r.path(file)

	rows, found, err := prober.ReadResult(path, family, limit)
	switch {
	case err != nil:
		log.Warn("unreadable result file, treating as empty", "path", path, "error", err)
		rows = nil
	case !found:
		log.Warn("result file not found, treating as empty", "path", path)
	default:
		log.Info("candidates loaded", "path", path, "count", len(rows))
	}
	return valueobject.Candidates{Family: family, Rows: rows}
}

func (r *Resolver) download(ctx context.Context, url, dest string, family valueobject.Family, n int) error {
	log := logger.FromContext(ctx).With("url", url)

	body, err := retry.DoWithResult(ctx, func() (string, error) {
		return r.fetcher.Fetch(ctx, url)
	},
		retry.WithMaxAttempts(r.attempts),
		retry.WithFixedDelay(r.delay),
		retry.WithSleep(r.sleep),
		retry.WithOnRetry(func(attempt int, delay time.Duration, err error) {
			log.Warn("download failed, retrying", "attempt", attempt, "delay", delay, "error", err)
		}),
	)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrDownloadFailed, url, err)
	}

	lines := FilterList(body, family, n)
	if err := os.WriteFile(dest, []byte(strings.Join(lines, "\n")), 0644); err != nil {
		return fmt.Errorf("%w: write %s: %v", domain.ErrDownloadFailed, dest, err)
	}
	log.Info("candidate list downloaded", "path", dest, "count", len(lines))
	return nil
}

func (r *Resolver) path(name string) string {
	if filepath.IsAbs(name) || r.workDir == "" {
		return name
	}
	return filepath.Join(r.workDir, name)
}

// FilterList keeps the first n non-empty lines of body that belong to family.
func FilterList(body string, family valueobject.Family, n int) []string {
	var out []string
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !family.Matches(line) {
			continue
		}
		out = append(out, line)
		if n > 0 && len(out) == n {
			break
		}
	}
	return out
}
