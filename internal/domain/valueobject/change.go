package valueobject

type ChangeType int

const (
	ChangeTypeNoop ChangeType = iota
	ChangeTypeCreate
	ChangeTypeDelete
)

func (ct ChangeType) String() string {
	switch ct {
	case ChangeTypeNoop:
		return "NOOP"
	case ChangeTypeCreate:
		return "CREATE"
	case ChangeTypeDelete:
		return "DELETE"
	default:
		return "UNKNOWN"
	}
}

// Change is one planned record mutation. Deletes carry the observed record
// (with its provider ID), creates carry the desired one.
type Change struct {
	Type   ChangeType
	Record Record
}

// Plan is the ordered set of changes for one family.
type Plan struct {
	changes []Change
}

func NewPlan() *Plan {
	return &Plan{changes: make([]Change, 0)}
}

func (p *Plan) Add(ch Change) {
	p.changes = append(p.changes, ch)
}

func (p *Plan) Changes() []Change { return p.changes }

func (p *Plan) FilterByType(changeType ChangeType) []Change {
	var result []Change
	for _, c := range p.changes {
		if c.Type == changeType {
			result = append(result, c)
		}
	}
	return result
}

func (p *Plan) HasChanges() bool {
	for _, c := range p.changes {
		if c.Type != ChangeTypeNoop {
			return true
		}
	}
	return false
}
