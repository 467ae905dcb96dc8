package content

import (
	"time"

	"github.com/vvka-141/memvfs/pkg/vfs"
)

// Factory creates the content record for a new file entry.
type Factory interface {
	NewContent() *FileContent
}

// BufferFactory builds records backed by a ByteBuffer with fixed tuning.
type BufferFactory struct {
	InitialCapacity int
	GrowthIncrement int
	FlushThreshold  int

	// Now supplies timestamps. Nil uses time.Now.
	Now func() time.Time
}

// DefaultFactory returns the tuning used when nothing else is configured.
func DefaultFactory() BufferFactory {
	return BufferFactory{
		InitialCapacity: vfs.DefaultInitialCapacity,
		GrowthIncrement: vfs.DefaultGrowthIncrement,
		FlushThreshold:  vfs.DefaultFlushThreshold,
	}
}

// EnumerationFactory starves buffer growth. It suits indexes that only
// enumerate entry names and hold no payloads.
func EnumerationFactory() BufferFactory {
	return BufferFactory{
		InitialCapacity: 0,
		GrowthIncrement: 1,
		FlushThreshold:  0,
	}
}

// NewContent implements Factory.
func (f BufferFactory) NewContent() *FileContent {
	return NewFileContent(NewByteBuffer(f.InitialCapacity, f.GrowthIncrement, f.FlushThreshold), f.Now)
}

var _ Factory = BufferFactory{}
