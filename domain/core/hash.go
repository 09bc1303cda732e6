package core

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Equals checks if two hashes are equal
func (h Hash) Equals(other Hash) bool {
	return h == other
}

// EnvelopeHash identifies a request envelope for audit-log deduplication
// without storing the envelope itself.
type EnvelopeHash Hash

func (h EnvelopeHash) String() string { return Hash(h).String() }

// ComputeEnvelopeHash hashes the variation names (sorted, so their input
// order does not affect the hash) and row counts of
// a request envelope, so repeated identical requests can be recognized in the
// audit trail without persisting any business data.
func ComputeEnvelopeHash(variations []string, overallRows, transactionRows int) EnvelopeHash {
	sorted := make([]string, len(variations))
	copy(sorted, variations)
	sort.Strings(sorted)

	var data strings.Builder
	for _, v := range sorted {
		data.WriteString(v)
	}
	data.WriteString(fmt.Sprintf("|%d|%d", overallRows, transactionRows))

	return EnvelopeHash(NewHash([]byte(data.String())))
}
