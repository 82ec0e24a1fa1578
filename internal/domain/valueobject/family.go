package valueobject

import "strings"

// Family is an IP address family. The zero value is not a valid family.
type Family int

const (
	FamilyIPv4 Family = iota + 1
	FamilyIPv6
)

// Families lists the families in processing order.
var Families = []Family{FamilyIPv4, FamilyIPv6}

func (f Family) String() string {
	switch f {
	case FamilyIPv4:
		return "IPv4"
	case FamilyIPv6:
		return "IPv6"
	default:
		return "unknown"
	}
}

// Key is the short lowercase form used in operation names and flags.
func (f Family) Key() string {
	if f == FamilyIPv6 {
		return "v6"
	}
	return "v4"
}

func (f Family) RecordType() RecordType {
	switch f {
	case FamilyIPv6:
		return RecordTypeAAAA
	default:
		return RecordTypeA
	}
}

// FamilyOf classifies an address the way the prober output is classified:
// anything containing a dot is IPv4.
func FamilyOf(address string) Family {
	if strings.Contains(address, ".") {
		return FamilyIPv4
	}
	return FamilyIPv6
}

func (f Family) Matches(address string) bool {
	return FamilyOf(address) == f
}

type RecordType string

const (
	RecordTypeA    RecordType = "A"
	RecordTypeAAAA RecordType = "AAAA"
)

func (t RecordType) Family() Family {
	if t == RecordTypeAAAA {
		return FamilyIPv6
	}
	return FamilyIPv4
}
