package disk

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/edsrzf/mmap-go"

	"github.com/vvka-141/memvfs/pkg/vfs"
)

// Channel is a random access channel over an open OS file. Read-only
// channels reject every mutation with vfs.ErrNonWritable.
type Channel struct {
	f        *os.File
	writable bool
}

func (c *Channel) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	return c.f.Read(p)
}

func (c *Channel) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, fmt.Errorf("%w: negative offset %d", vfs.ErrInvalidArgument, off)
	}
	return c.f.ReadAt(p, off)
}

func (c *Channel) Write(p []byte) (int, error) {
	if !c.writable {
		return 0, vfs.ErrNonWritable
	}
	return c.f.Write(p)
}

func (c *Channel) Close() error { return c.f.Close() }

// Position returns the cursor, or -1 if the file cannot report it.
func (c *Channel) Position() int64 {
	pos, err := c.f.Seek(0, io.SeekCurrent)
	if err != nil {
		return -1
	}
	return pos
}

func (c *Channel) SetPosition(pos int64) error {
	if pos < 0 {
		return fmt.Errorf("%w: negative position %d", vfs.ErrInvalidArgument, pos)
	}
	_, err := c.f.Seek(pos, io.SeekStart)
	return err
}

// Size returns the file size, or -1 if the file cannot be stat'ed.
func (c *Channel) Size() int64 {
	info, err := c.f.Stat()
	if err != nil {
		return -1
	}
	return info.Size()
}

func (c *Channel) Truncate(size int64) error {
	if !c.writable {
		return vfs.ErrNonWritable
	}
	return c.f.Truncate(size)
}

// ReadBuffers fills each buffer in turn from the cursor, stopping at the end
// of data.
func (c *Channel) ReadBuffers(bufs [][]byte) (int64, error) {
	var total int64
	for _, b := range bufs {
		if len(b) == 0 {
			continue
		}
		n, err := io.ReadFull(c.f, b)
		total += int64(n)
		switch {
		case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
			if total == 0 {
				return 0, io.EOF
			}
			return total, nil
		case err != nil:
			return total, err
		}
	}
	return total, nil
}

func (c *Channel) TransferTo(pos, count int64, w io.Writer) (int64, error) {
	if pos < 0 || count < 0 {
		return 0, fmt.Errorf("%w: transfer of %d bytes at %d", vfs.ErrInvalidArgument, count, pos)
	}
	return io.Copy(w, io.NewSectionReader(c.f, pos, count))
}

func (c *Channel) TransferFrom(r io.Reader, pos, count int64) (int64, error) {
	if !c.writable {
		return 0, vfs.ErrNonWritable
	}
	if pos < 0 || count < 0 {
		return 0, fmt.Errorf("%w: transfer of %d bytes at %d", vfs.ErrInvalidArgument, count, pos)
	}
	return io.Copy(io.NewOffsetWriter(c.f, pos), io.LimitReader(r, count))
}

// Map maps size bytes of the file starting at pos. Writable modes need a
// writable channel. The mapping stays valid after the channel is closed
// until it is released.
func (c *Channel) Map(mode vfs.MapMode, pos, size int64) (vfs.Mapping, error) {
	var prot int
	switch mode {
	case vfs.MapReadOnly:
		prot = mmap.RDONLY
	case vfs.MapReadWrite:
		prot = mmap.RDWR
	case vfs.MapPrivate:
		prot = mmap.COPY
	default:
		return nil, fmt.Errorf("%w: map mode %d", vfs.ErrInvalidArgument, mode)
	}
	if mode != vfs.MapReadOnly && !c.writable {
		return nil, vfs.ErrNonWritable
	}
	if pos < 0 || size <= 0 {
		return nil, fmt.Errorf("%w: mapping of %d bytes at %d", vfs.ErrInvalidArgument, size, pos)
	}

	// offsets handed to mmap must be page aligned
	page := int64(os.Getpagesize())
	aligned := pos - pos%page
	m, err := mmap.MapRegion(c.f, int(size+pos-aligned), prot, 0, aligned)
	if err != nil {
		return nil, fmt.Errorf("failed to map %d bytes at %d: %w", size, pos, err)
	}
	return &mapping{m: m, skip: int(pos - aligned)}, nil
}

// Lock is unsupported: the OS backend does not implement byte range locks.
func (c *Channel) Lock(_, _ int64, _ bool) (io.Closer, error) {
	return nil, vfs.ErrUnsupported
}

type mapping struct {
	m    mmap.MMap
	skip int
}

func (m *mapping) Bytes() []byte { return m.m[m.skip:] }

// Release flushes writable mappings and unmaps the region.
func (m *mapping) Release() error {
	if m.m == nil {
		return vfs.ErrClosed
	}
	err := m.m.Unmap()
	m.m = nil
	return err
}

var _ vfs.Channel = (*Channel)(nil)
