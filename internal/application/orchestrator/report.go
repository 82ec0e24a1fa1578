package orchestrator

import (
	"time"

	"github.com/lite-lake/ipsync/internal/domain/valueobject"
)

type Report struct {
	Group         string
	TraceID       string
	Passthrough   bool
	PluginStopped bool
	Families      []FamilyReport
	Duration      time.Duration
}

type FamilyReport struct {
	Family       valueobject.Family
	Quota        int
	Candidates   int
	Assignments  int
	Created      map[string][]string
	Deleted      int
	Failed       int
	Unverified   int
	Notified     int
	NotifyFailed int
	Skipped      string
}

func (f FamilyReport) CreatedCount() int {
	n := 0
	for _, addrs := range f.Created {
		n += len(addrs)
	}
	return n
}

// Totals sums record changes across families.
func (r *Report) Totals() (created, deleted, failed int) {
	for _, f := range r.Families {
		created += f.CreatedCount()
		deleted += f.Deleted
		failed += f.Failed
	}
	return created, deleted, failed
}
