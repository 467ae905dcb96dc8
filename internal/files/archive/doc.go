// Package archive loads archive files into the in-memory engine.
//
// Supported containers are zip, tar, gzip compressed tar and zstd
// compressed tar. Any fs.FS (an embed.FS, os.DirFS) can be loaded the same
// way through LoadFS. Every entry lands under "/" of a fresh memfs.FS;
// directories implied by entry names are created, file modification times
// are kept, and names that climb above the archive root are rejected.
//
// With Options.EnumerateOnly the loader records names and times but no
// payloads, using a content factory that starves buffer growth.
package archive
