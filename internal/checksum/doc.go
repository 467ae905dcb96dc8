// Package checksum provides file content hashing with normalization support.
//
// Every Calculator offers two checksums:
//
//   - Raw checksum: Hash of the exact file content (detects all changes)
//   - Normalized checksum: Hash after normalizing line endings and trailing
//     whitespace (identifies text that only differs in editor artifacts)
//
// Two algorithms are available: SHA256 (the default) and XXHash.
//
// # Example Usage
//
//	calculator, err := checksum.ForName("xxhash")
//	rawChecksum := calculator.CalculateRaw(fileContent)
//	normalizedChecksum := calculator.CalculateNormalized(fileContent)
//
// # Thread Safety
//
// All calculators are safe for concurrent use by multiple goroutines.
package checksum
