package dns

import (
	"strings"

	domainerr "github.com/lite-lake/ipsync/internal/domain"
	"github.com/lite-lake/ipsync/internal/domain/contract"
)

type Provider = contract.DNSProvider

// GetSubDomain converts a full hostname to the record label used by
// zone-relative APIs.
func GetSubDomain(fullDomain, zone string) string {
	if fullDomain == zone {
		return "@"
	}
	suffix := "." + zone
	if strings.HasSuffix(fullDomain, suffix) {
		return strings.TrimSuffix(fullDomain, suffix)
	}
	return fullDomain
}

func GetFullDomain(subDomain, zone string) string {
	if subDomain == "@" || subDomain == "" {
		return zone
	}
	return subDomain + "." + zone
}

func requireCredential(creds map[string]string, key string) (string, error) {
	v, ok := creds[key]
	if !ok || v == "" {
		return "", domainerr.WrapOp("resolve "+key, domainerr.ErrMissingCredential)
	}
	return v, nil
}
