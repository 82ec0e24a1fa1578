package service

import (
	"fmt"
	"strings"

	"github.com/lite-lake/ipsync/internal/domain/entity"
	"github.com/lite-lake/ipsync/internal/domain/valueobject"
)

// RenderListLines formats assignments as list entries tagged for pub.
// Entries keep assignment order and are deduplicated.
func RenderListLines(assignments []valueobject.Assignment, pub *entity.ListPublisher) []string {
	seen := make(map[string]bool)
	var lines []string
	for _, a := range assignments {
		line := listEntry(a.Address, pub)
		if seen[line] {
			continue
		}
		seen[line] = true
		lines = append(lines, line)
	}
	return lines
}

func listEntry(addr string, pub *entity.ListPublisher) string {
	if valueobject.FamilyOf(addr) == valueobject.FamilyIPv4 {
		if pub.Remark != "" {
			return fmt.Sprintf("%s:%d#%s", addr, pub.Port, pub.Remark)
		}
		return addr
	}
	if pub.Remark6 != "" {
		return fmt.Sprintf("[%s]:%d#%s", addr, pub.Port, pub.Remark6)
	}
	return "[" + addr + "]"
}

// OwnsLine reports whether line carries pub's tag. Untagged configurations
// own nothing.
func OwnsLine(line string, pub *entity.ListPublisher) bool {
	if strings.Contains(line, ".") {
		return pub.Remark != "" && strings.HasSuffix(line, fmt.Sprintf(":%d#%s", pub.Port, pub.Remark))
	}
	return strings.HasPrefix(line, "[") && pub.Remark6 != "" &&
		strings.Contains(line, fmt.Sprintf("]:%d#%s", pub.Port, pub.Remark6))
}

// MergeList replaces pub's tagged lines in current with lines. Blank lines
// are dropped; every other foreign line is kept verbatim and in order.
func MergeList(current string, lines []string, pub *entity.ListPublisher) string {
	var out []string
	for _, line := range strings.Split(current, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || OwnsLine(trimmed, pub) {
			continue
		}
		out = append(out, line)
	}
	out = append(out, lines...)
	if len(out) == 0 {
		return ""
	}
	return strings.Join(out, "\n") + "\n"
}
