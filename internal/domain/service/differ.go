package service

import (
	"github.com/lite-lake/ipsync/internal/domain/valueobject"
)

// PlanRecords builds the change set for one family. Existing records whose
// content is not a candidate are deleted. Every assignment becomes a create;
// creates of records that already exist are absorbed by the provider's
// duplicate response.
func PlanRecords(existing []valueobject.Record, assignments []valueobject.Assignment, recordType valueobject.RecordType) *valueobject.Plan {
	plan := valueobject.NewPlan()

	desired := make(map[string]bool, len(assignments))
	for _, a := range assignments {
		desired[a.Address] = true
	}

	for _, r := range existing {
		if desired[r.Content] {
			plan.Add(valueobject.Change{Type: valueobject.ChangeTypeNoop, Record: r})
			continue
		}
		plan.Add(valueobject.Change{Type: valueobject.ChangeTypeDelete, Record: r})
	}

	for _, a := range assignments {
		plan.Add(valueobject.Change{
			Type: valueobject.ChangeTypeCreate,
			Record: valueobject.Record{
				Type:    recordType,
				Name:    a.Hostname,
				Content: a.Address,
			},
		})
	}
	return plan
}
