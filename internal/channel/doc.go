// Package channel provides random access channel views over in-memory
// content buffers.
//
// Reader is the read-only flavor: positional and cursor reads with clamped
// bounds, transfer into a sink, and precise failures for every mutating
// operation. Appender is the write-only flavor used to capture streamed
// output; everything but Write is a no-op.
//
// Channels borrow their buffer. A channel kept after its file is deleted
// keeps reading the orphaned buffer; that is a caller error, not a crash.
package channel
