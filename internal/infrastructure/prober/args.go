package prober

import (
	"fmt"
	"strconv"

	"github.com/google/shlex"

	"github.com/lite-lake/ipsync/internal/domain"
)

// Args is the parsed prober argument list of a resolve group.
type Args struct {
	raw []string
}

func ParseArgs(line string) (Args, error) {
	fields, err := shlex.Split(line)
	if err != nil {
		return Args{}, fmt.Errorf("%w: prober args %q: %v", domain.ErrProberFailed, line, err)
	}
	return Args{raw: fields}, nil
}

func (a Args) flag(name string) (string, bool) {
	for i := 0; i < len(a.raw)-1; i++ {
		if a.raw[i] == name {
			return a.raw[i+1], true
		}
	}
	return "", false
}

// InputFile is the candidate list the prober reads, if designated.
func (a Args) InputFile() (string, bool) {
	return a.flag(domain.ProberInputFlag)
}

// ResultFile is the CSV the prober writes.
func (a Args) ResultFile() string {
	if out, ok := a.flag(domain.ProberOutputFlag); ok && out != "" {
		return out
	}
	return domain.DefaultResultFile
}

// WithQuota appends the result count and sample size for a quota of n.
func (a Args) WithQuota(n int) []string {
	out := append([]string(nil), a.raw...)
	if n > 0 {
		s := strconv.Itoa(n)
		out = append(out, domain.ProberCountFlag, s, domain.ProberSampleFlag, s)
	}
	return out
}
