// Package content provides the byte storage behind in-memory files.
//
// ByteBuffer is an append-friendly growable buffer with bounded copy-out.
// FileContent pairs one buffer with a last-modified time and hands out
// streams over it. Factory is the pluggable policy that decides the initial
// capacity and growth increment of new buffers.
//
// Nothing in this package is safe for concurrent use.
package content
