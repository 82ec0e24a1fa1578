package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/lite-lake/ipsync/internal/application/notify"
	"github.com/lite-lake/ipsync/internal/application/reconcile"
	"github.com/lite-lake/ipsync/internal/domain"
	"github.com/lite-lake/ipsync/internal/domain/entity"
	"github.com/lite-lake/ipsync/internal/domain/repository"
	"github.com/lite-lake/ipsync/internal/domain/service"
	"github.com/lite-lake/ipsync/internal/domain/valueobject"
	"github.com/lite-lake/ipsync/internal/infrastructure/logger"
)

const metricsPushTimeout = 10 * time.Second

type CandidateSource interface {
	Acquire(ctx context.Context, g *entity.ResolveGroup, family valueobject.Family) (valueobject.Candidates, error)
	ReadExisting(ctx context.Context, g *entity.ResolveGroup, family valueobject.Family) (valueobject.Candidates, error)
}

type PluginGuard interface {
	Stop(ctx context.Context, g *entity.ResolveGroup) bool
	Restart(ctx context.Context)
	Finish(ctx context.Context)
}

type RecordReconciler interface {
	Reconcile(ctx context.Context, hostnames []string, c valueobject.Candidates) (*reconcile.Result, error)
}

// ReconcilerFactory binds a reconciler to an account's provider.
type ReconcilerFactory func(account *entity.Account) (RecordReconciler, error)

type Notifier interface {
	Dispatch(ctx context.Context, g *entity.ResolveGroup, msg notify.Message) notify.Outcome
}

type Verifier interface {
	Missing(ctx context.Context, name string, recordType valueobject.RecordType, want []string) ([]string, error)
}

type MetricsSink interface {
	SetCandidates(family string, n int)
	SetRecords(created, deleted, failed int)
	Finish(at time.Time, err error)
	Push(ctx context.Context, url, job, group string) error
}

type RunnerConfig struct {
	Config      *entity.Config
	Lock        repository.RunLock
	Source      CandidateSource
	Plugin      PluginGuard
	Reconcilers ReconcilerFactory
	Notifier    Notifier
	Verifier    Verifier
	Metrics     MetricsSink
}

// Runner executes one resolve group end to end. Families are processed one
// after the other and a stopped plugin is always started again before Run
// returns.
type Runner struct {
	cfg         *entity.Config
	lock        repository.RunLock
	source      CandidateSource
	plugin      PluginGuard
	reconcilers ReconcilerFactory
	notifier    Notifier
	verifier    Verifier
	metrics     MetricsSink
}

func NewRunner(cfg *RunnerConfig) *Runner {
	return &Runner{
		cfg:         cfg.Config,
		lock:        cfg.Lock,
		source:      cfg.Source,
		plugin:      cfg.Plugin,
		reconcilers: cfg.Reconcilers,
		notifier:    cfg.Notifier,
		verifier:    cfg.Verifier,
		metrics:     cfg.Metrics,
	}
}

func (r *Runner) Run(ctx context.Context, groupName string) (report *Report, err error) {
	ctx, traceID := logger.WithTraceID(ctx, "")
	ctx = logger.WithOperation(ctx, "run")
	log := logger.FromContext(ctx).With("group", groupName)

	start := time.Now()
	report = &Report{Group: groupName, TraceID: traceID}
	defer func() {
		report.Duration = time.Since(start)
		r.finishMetrics(ctx, report, err)
	}()

	if r.lock != nil {
		release, err := r.lock.TryLock()
		if err != nil {
			return report, err
		}
		defer func() {
			if err := release(); err != nil {
				log.Warn("failed to release run lock", "error", err)
			}
		}()
	}

	g, err := r.cfg.FindResolve(groupName)
	if err != nil {
		return report, err
	}
	account, err := r.cfg.FindAccount(g.Account)
	if err != nil {
		return report, err
	}

	var rec RecordReconciler
	if account != nil {
		if rec, err = r.reconcilers(account); err != nil {
			return report, err
		}
	}

	hostnames := g.Hostnames()
	report.Passthrough = g.IsPassthrough()
	log.Info("run started", "account", g.Account, "hostnames", len(hostnames), "passthrough", report.Passthrough)

	report.PluginStopped = r.plugin.Stop(ctx, g)
	defer r.plugin.Finish(context.WithoutCancel(ctx))

	for _, family := range valueobject.Families {
		fr, err := r.runFamily(ctx, g, family, hostnames, rec)
		report.Families = append(report.Families, fr)
		if err != nil {
			log.Error("run aborted", "family", family.String(), "error", err)
			return report, err
		}
	}

	log.Info("run finished", "duration", time.Since(start))
	return report, nil
}

func (r *Runner) runFamily(ctx context.Context, g *entity.ResolveGroup, family valueobject.Family, hostnames []string, rec RecordReconciler) (FamilyReport, error) {
	log := logger.FromContext(ctx).With("family", family.String())
	fr := FamilyReport{Family: family, Quota: g.Quota(family)}

	var c valueobject.Candidates
	var err error
	if g.IsPassthrough() {
		c, err = r.source.ReadExisting(ctx, g, family)
	} else {
		if fr.Quota == 0 {
			log.Info("quota is 0, skipping family")
			fr.Skipped = "quota 0"
			return fr, nil
		}
		err = logger.TimedOperation(ctx, "acquire_"+family.Key(), func() error {
			c, err = r.source.Acquire(ctx, g, family)
			return err
		})
	}
	if err != nil {
		return fr, domain.NewOpError("acquire "+family.String(), err)
	}

	fr.Candidates = len(c.Rows)
	if r.metrics != nil {
		r.metrics.SetCandidates(family.String(), fr.Candidates)
	}
	if c.Empty() {
		log.Warn("no candidates, skipping family")
		fr.Skipped = "no candidates"
		return fr, nil
	}

	r.plugin.Restart(ctx)

	var assignments []valueobject.Assignment
	if rec != nil && !g.IsPassthrough() {
		var res *reconcile.Result
		err := logger.TimedOperation(ctx, "reconcile_"+family.Key(), func() error {
			var err error
			res, err = rec.Reconcile(ctx, hostnames, c)
			return err
		})
		if err != nil {
			return fr, domain.NewOpError("reconcile "+family.String(), err)
		}
		fr.Created = res.Created
		fr.Deleted = len(res.Deleted)
		fr.Failed = res.Failed
		assignments = res.Assignments
		fr.Unverified = r.verify(ctx, family, res.Created)
	} else {
		assignments = service.Assign(hostnames, c.Addresses())
	}

	fr.Assignments = len(assignments)

	// Channel failures are counted in the report and never abort the run.
	_ = logger.TimedOperation(ctx, "dispatch_"+family.Key(), func() error {
		out := r.notifier.Dispatch(ctx, g, notify.Message{
			Family:      family,
			Rows:        c.Rows,
			Hostnames:   hostnames,
			Assignments: assignments,
		})
		fr.Notified = out.Sent + out.Published
		fr.NotifyFailed = out.Failed
		if out.Failed > 0 {
			return fmt.Errorf("%w: %d of %d channels failed", domain.ErrChannelRejected, out.Failed, out.Sent+out.Published+out.Failed)
		}
		return nil
	})
	return fr, nil
}

// verify counts created addresses the nameserver does not return yet.
func (r *Runner) verify(ctx context.Context, family valueobject.Family, created map[string][]string) int {
	if r.verifier == nil {
		return 0
	}
	log := logger.FromContext(ctx)

	unverified := 0
	for host, addrs := range created {
		missing, err := r.verifier.Missing(ctx, host, family.RecordType(), addrs)
		if err != nil {
			log.Warn("verification query failed", "hostname", host, "error", err)
			continue
		}
		if len(missing) > 0 {
			log.Warn("records not visible yet", "hostname", host, "missing", missing)
			unverified += len(missing)
		}
	}
	return unverified
}

func (r *Runner) finishMetrics(ctx context.Context, report *Report, runErr error) {
	if r.metrics == nil {
		return
	}
	created, deleted, failed := report.Totals()
	r.metrics.SetRecords(created, deleted, failed)
	r.metrics.Finish(time.Now(), runErr)

	if !r.cfg.Metrics.Enabled() {
		return
	}
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), metricsPushTimeout)
	defer cancel()
	if err := r.metrics.Push(pctx, r.cfg.Metrics.Pushgateway, r.cfg.Metrics.JobName(), report.Group); err != nil {
		logger.FromContext(ctx).Warn("failed to push metrics", "error", err)
	}
}
