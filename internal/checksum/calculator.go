package checksum

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/vvka-141/memvfs/pkg/vfs"
)

// Calculator is an interface for computing file checksums.
// This abstraction allows for different checksum strategies and algorithms.
type Calculator interface {
	// Name identifies the algorithm, as accepted by ForName.
	Name() string

	// CalculateRaw computes a checksum of the raw, unmodified content.
	CalculateRaw(content []byte) string

	// CalculateNormalized computes a checksum of normalized text content.
	// Normalization makes checksums resilient to line ending and trailing
	// whitespace differences.
	CalculateNormalized(content []byte) string
}

// SHA256 implements checksum calculation using SHA-256.
//
// SHA256 is a zero-size type and is safe for concurrent use by multiple goroutines.
// Using value semantics (pass by value) eliminates heap allocations.
type SHA256 struct{}

// New creates a new SHA-256 based calculator.
// Returns by value to avoid heap allocation (SHA256 is a zero-size type).
func New() SHA256 {
	return SHA256{}
}

func (c SHA256) Name() string { return "sha256" }

// CalculateRaw computes SHA-256 of raw content.
func (c SHA256) CalculateRaw(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// CalculateNormalized computes SHA-256 of normalized content.
func (c SHA256) CalculateNormalized(content []byte) string {
	return c.CalculateRaw(Normalize(content))
}

// XXHash implements checksum calculation using 64-bit xxHash. It is much
// faster than SHA256 and suited to change detection, not integrity.
type XXHash struct{}

func (c XXHash) Name() string { return "xxhash" }

// CalculateRaw computes xxHash64 of raw content as 16 hex digits.
func (c XXHash) CalculateRaw(content []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(content))
}

// CalculateNormalized computes xxHash64 of normalized content.
func (c XXHash) CalculateNormalized(content []byte) string {
	return c.CalculateRaw(Normalize(content))
}

// ForName returns the calculator for an algorithm name.
func ForName(name string) (Calculator, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "sha256":
		return SHA256{}, nil
	case "xxhash", "xxh64":
		return XXHash{}, nil
	}
	return nil, fmt.Errorf("unknown checksum algorithm %s: %w", strconv.Quote(name), vfs.ErrInvalidConfig)
}

// Normalize rewrites text content for CalculateNormalized:
//  1. CRLF and lone CR line endings become LF
//  2. Trailing spaces and tabs are removed from every line
//  3. Trailing empty lines are dropped
func Normalize(content []byte) []byte {
	content = bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
	content = bytes.ReplaceAll(content, []byte("\r"), []byte("\n"))

	lines := bytes.Split(content, []byte("\n"))
	for i, line := range lines {
		lines[i] = bytes.TrimRight(line, " \t")
	}
	for len(lines) > 0 && len(lines[len(lines)-1]) == 0 {
		lines = lines[:len(lines)-1]
	}
	return bytes.Join(lines, []byte("\n"))
}

var (
	_ Calculator = SHA256{}
	_ Calculator = XXHash{}
)
