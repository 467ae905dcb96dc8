// Package files groups the filesystem backends and the tooling that runs on
// top of any vfs.FileSystem.
//
// Sub-packages:
//   - archive: loads zip and tar archives, or any fs.FS, into an in-memory filesystem
//   - disk: vfs.FileSystem over a directory of the OS filesystem
//   - scanner: deterministic walks and per-file metadata with checksums
//
// # Usage
//
//	import (
//	    "github.com/vvka-141/memvfs/internal/files/archive"
//	    "github.com/vvka-141/memvfs/internal/files/scanner"
//	)
//
//	fsys, err := archive.Open("./bundle.tar.zst", archive.Options{})
//	files, err := scanner.New(checksum.New()).Scan(fsys, vpath.Root())
package files
