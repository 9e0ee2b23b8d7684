package core

import (
	"crypto/sha256"
	"encoding/hex"
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

// Short returns the first 12 hex characters, for log lines.
func (h Hash) Short() string {
	if len(h) <= 12 {
		return string(h)
	}
	return string(h[:12])
}

// ComputePromptHash hashes a prompt together with its schema tables so that
// equal requests map to the same cache key regardless of map ordering.
func ComputePromptHash(prompt string, schema map[string][]string) Hash {
	keys := make([]string, 0, len(schema))
	for k := range schema {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var data strings.Builder
	data.WriteString(prompt)
	for _, key := range keys {
		data.WriteString("\x00")
		data.WriteString(key)
		for _, col := range schema[key] {
			data.WriteString("\x01")
			data.WriteString(col)
		}
	}
	return NewHash([]byte(data.String()))
}
