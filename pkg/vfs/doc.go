// Package vfs defines the public contracts shared by every memvfs backend:
// the FileSystem capability surface, the Channel random access view, the
// policy enums injected at construction, and the sentinel errors callers
// match with errors.Is.
//
// Backends:
//   - internal/memfs: the in-memory engine (hash or tree directory index)
//   - internal/files/archive: archives loaded into the in-memory engine
//   - internal/files/disk: the physical disk
package vfs
