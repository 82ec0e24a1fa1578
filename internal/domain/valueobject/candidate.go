package valueobject

// ProbeRow is one ranked row of the prober result file.
type ProbeRow struct {
	Address    string
	Latency    string
	Speed      string
	Datacenter string
	Complete   bool
}

// Candidates is an ordered candidate list for one family, best first.
type Candidates struct {
	Family Family
	Rows   []ProbeRow
}

func (c Candidates) Addresses() []string {
	out := make([]string, 0, len(c.Rows))
	for _, r := range c.Rows {
		out = append(out, r.Address)
	}
	return out
}

func (c Candidates) Empty() bool { return len(c.Rows) == 0 }

// Assignment pairs one hostname with one address.
type Assignment struct {
	Hostname string
	Address  string
}

// Record is a provider-side DNS record as observed during one run.
type Record struct {
	ID      string
	Type    RecordType
	Name    string
	Content string
}
