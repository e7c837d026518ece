package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// NewID32 returns exactly 32 hex characters (no separators/prefixes).
func NewID32() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// NewLoanCode formats the human-readable code, e.g. HD-2026-001 for seq 1.
func NewLoanCode(year int, seq int64) string {
	return fmt.Sprintf("HD-%d-%03d", year, seq)
}
