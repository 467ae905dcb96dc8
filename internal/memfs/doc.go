// Package memfs provides an in-memory implementation of vfs.FileSystem.
//
// An FS composes a directory index (hash or tree strategy) with a content
// factory and adds nothing but glue: every precondition failure comes from
// the index unchanged. Overwriting a file replaces its content record, while
// appending extends the existing buffer and bumps the last-modified time
// once per opened writer.
//
// Basic usage:
//
//	fsys := memfs.Default()
//	_ = fsys.CreateDir(vpath.MustParse("/tmp"))
//	_ = fsys.WriteFile(vpath.MustParse("/tmp/one.txt"), []byte("abc"), vfs.WriteOverwrite)
package memfs
