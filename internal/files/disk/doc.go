// Package disk provides the physical-disk implementation of vfs.FileSystem.
//
// It is a thin wrapper over package os that maps path values onto a root
// directory and reports the same error kinds as the in-memory engine. Its
// channels are the only ones able to hand out memory mappings.
package disk
