// Package scanner walks a vfs.FileSystem and extracts per-file metadata.
//
// The scanner package is responsible for:
//   - Walking a directory subtree depth-first in a deterministic order
//   - Extracting file metadata (path, size, timestamps, checksums)
//
// Walking goes through the vfs.FileSystem capability surface only, so the
// same code scans an in-memory filesystem, a loaded archive or a disk root.
package scanner
