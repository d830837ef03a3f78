package canonical

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for hashes. The version suffix leaves room to change the
// encoding without colliding with old fingerprints.
const (
	DomainSetting = "lorenz/setting/v1"
	DomainTrace   = "lorenz/trace/v1"
)

// HashWithDomain returns hex(SHA256(domain || 0x00 || data)).
// The null separator keeps domain and data from running into each other.
func HashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Hash marshals v canonically and hashes it under domain.
func Hash(domain string, v any) (string, error) {
	data, err := Marshal(v)
	if err != nil {
		return "", fmt.Errorf("hash %s: %w", domain, err)
	}
	return HashWithDomain(domain, data), nil
}
