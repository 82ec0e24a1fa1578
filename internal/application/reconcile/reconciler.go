package reconcile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lite-lake/ipsync/internal/domain"
	"github.com/lite-lake/ipsync/internal/domain/contract"
	"github.com/lite-lake/ipsync/internal/domain/retry"
	"github.com/lite-lake/ipsync/internal/domain/service"
	"github.com/lite-lake/ipsync/internal/domain/valueobject"
	"github.com/lite-lake/ipsync/internal/infrastructure/logger"
)

type Config struct {
	Provider contract.DNSProvider
	Attempts int
	Delay    time.Duration
	Sleep    retry.SleepFunc
}

// Reconciler makes the records of each hostname equal to a family's
// candidate set.
type Reconciler struct {
	provider contract.DNSProvider
	attempts int
	delay    time.Duration
	sleep    retry.SleepFunc
}

func NewReconciler(cfg *Config) *Reconciler {
	r := &Reconciler{
		provider: cfg.Provider,
		attempts: cfg.Attempts,
		delay:    cfg.Delay,
		sleep:    cfg.Sleep,
	}
	if r.attempts <= 0 {
		r.attempts = domain.CredentialMaxAttempts
	}
	if r.delay <= 0 {
		r.delay = domain.CredentialRetryDelay
	}
	if r.sleep == nil {
		r.sleep = retry.ContextSleep
	}
	return r
}

type Result struct {
	Family      valueobject.Family
	Assignments []valueobject.Assignment
	Created     map[string][]string
	Existing    int
	Deleted     []valueobject.Record
	Failed      int
}

func (r *Result) CreatedCount() int {
	n := 0
	for _, addrs := range r.Created {
		n += len(addrs)
	}
	return n
}

// VerifyCredentials fetches zone metadata until it succeeds or the attempts
// run out.
func (r *Reconciler) VerifyCredentials(ctx context.Context) error {
	log := logger.FromContext(ctx).With("provider", r.provider.Name())

	attempt := 0
	err := retry.Do(ctx, func() error {
		attempt++
		log.Info("verifying DNS credentials", "attempt", attempt)
		return r.provider.VerifyZone(ctx)
	},
		retry.WithMaxAttempts(r.attempts),
		retry.WithFixedDelay(r.delay),
		retry.WithSleep(r.sleep),
		retry.WithOnRetry(func(attempt int, delay time.Duration, err error) {
			log.Warn("credential check failed, retrying", "attempt", attempt, "delay", delay, "error", err)
		}),
	)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrCredentialCheck, r.provider.Name(), err)
	}
	log.Info("DNS credentials verified")
	return nil
}

// Reconcile replaces the family's records on every hostname with the
// candidates, deleting stale records before any create. Only the credential
// check can fail the call; per-record errors are logged and counted.
func (r *Reconciler) Reconcile(ctx context.Context, hostnames []string, c valueobject.Candidates) (*Result, error) {
	recordType := c.Family.RecordType()
	log := logger.FromContext(ctx).With("family", c.Family.String(), "type", string(recordType))

	if err := r.VerifyCredentials(ctx); err != nil {
		return nil, err
	}

	res := &Result{Family: c.Family, Created: make(map[string][]string)}

	var existing []valueobject.Record
	for _, host := range hostnames {
		records, err := r.provider.ListRecords(ctx, host, recordType)
		if err != nil {
			log.Error("failed to list records", "hostname", host, "error", err)
			res.Failed++
			continue
		}
		existing = append(existing, records...)
	}
	res.Existing = len(existing)

	res.Assignments = service.Assign(hostnames, c.Addresses())
	plan := service.PlanRecords(existing, res.Assignments, recordType)

	for _, ch := range plan.FilterByType(valueobject.ChangeTypeDelete) {
		rec := ch.Record
		if err := r.provider.DeleteRecord(ctx, rec); err != nil {
			log.Error("failed to delete stale record", "hostname", rec.Name, "content", rec.Content, "error", err)
			res.Failed++
			continue
		}
		log.Info("deleted stale record", "hostname", rec.Name, "content", rec.Content)
		res.Deleted = append(res.Deleted, rec)
	}

	for _, ch := range plan.FilterByType(valueobject.ChangeTypeCreate) {
		rec := ch.Record
		err := r.provider.CreateRecord(ctx, rec)
		switch {
		case errors.Is(err, domain.ErrRecordExists):
			log.Info("record already present", "hostname", rec.Name, "content", rec.Content)
		case err != nil:
			log.Error("failed to create record", "hostname", rec.Name, "content", rec.Content, "error", err)
			res.Failed++
		default:
			log.Info("created record", "hostname", rec.Name, "content", rec.Content)
			res.Created[rec.Name] = append(res.Created[rec.Name], rec.Content)
		}
	}
	return res, nil
}
