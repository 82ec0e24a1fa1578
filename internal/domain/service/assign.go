package service

import "github.com/lite-lake/ipsync/internal/domain/valueobject"

// Assign spreads ranked addresses over hostnames round-robin:
// address i goes to hostnames[i mod len(hostnames)]. Without hostnames every
// address is paired with an empty hostname.
func Assign(hostnames, addresses []string) []valueobject.Assignment {
	out := make([]valueobject.Assignment, 0, len(addresses))
	for i, addr := range addresses {
		host := ""
		if len(hostnames) > 0 {
			host = hostnames[i%len(hostnames)]
		}
		out = append(out, valueobject.Assignment{Hostname: host, Address: addr})
	}
	return out
}
