package channel

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/memvfs/internal/content"
	"github.com/vvka-141/memvfs/pkg/vfs"
)

func newThreeByteReader(t *testing.T) *Reader {
	t.Helper()
	buf := content.NewByteBuffer(8, 0, 2)
	_, err := buf.Write([]byte("abc"))
	require.NoError(t, err)
	return NewReader(buf)
}

func TestReader_EOFBoundary(t *testing.T) {
	r := newThreeByteReader(t)

	for _, pos := range []int64{0, 2, 3, 10} {
		require.NoError(t, r.SetPosition(pos))
		n, err := r.Read([]byte{})
		assert.NoError(t, err, "empty read at %d", pos)
		assert.Zero(t, n, "empty read at %d", pos)
	}

	require.NoError(t, r.SetPosition(3))
	n, err := r.Read(make([]byte, 4))
	assert.ErrorIs(t, err, io.EOF)
	assert.Zero(t, n)
	assert.Equal(t, int64(3), r.Position(), "EOF must not move the cursor")

	require.NoError(t, r.SetPosition(4))
	_, err = r.Read(make([]byte, 4))
	assert.ErrorIs(t, err, io.EOF)
}

func TestReader_ReadAdvancesCursor(t *testing.T) {
	r := newThreeByteReader(t)

	dst := make([]byte, 2)
	n, err := r.Read(dst)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "ab", string(dst))
	assert.Equal(t, int64(2), r.Position())

	n, err = r.Read(dst)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "c", string(dst[:n]))
	assert.Equal(t, int64(3), r.Position())
}

func TestReader_ReadAtLeavesCursor(t *testing.T) {
	r := newThreeByteReader(t)

	dst := make([]byte, 2)
	n, err := r.ReadAt(dst, 1)
	require.NoError(t, err)
	assert.Equal(t, "bc", string(dst[:n]))
	assert.Zero(t, r.Position())

	n, err = r.ReadAt(make([]byte, 5), 2)
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, 1, n)

	n, err = r.ReadAt(make([]byte, 5), 3)
	assert.ErrorIs(t, err, io.EOF)
	assert.Zero(t, n)

	_, err = r.ReadAt(dst, -1)
	assert.ErrorIs(t, err, vfs.ErrInvalidArgument)
}

func TestReader_ReadBuffers(t *testing.T) {
	r := newThreeByteReader(t)

	a, b, c := make([]byte, 2), make([]byte, 2), make([]byte, 2)
	n, err := r.ReadBuffers([][]byte{a, b, c})
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.Equal(t, "ab", string(a))
	assert.Equal(t, "c", string(b[:1]))

	_, err = r.ReadBuffers([][]byte{a})
	assert.ErrorIs(t, err, io.EOF)

	n, err = r.ReadBuffers([][]byte{{}})
	assert.NoError(t, err)
	assert.Zero(t, n)

	require.NoError(t, r.SetPosition(1))
	n, err = r.ReadBuffers([][]byte{make([]byte, 5), {}, make([]byte, 1)})
	require.NoError(t, err, "reaching the end mid-list is not an error")
	assert.Equal(t, int64(2), n)

	require.NoError(t, r.Close())
	_, err = r.ReadBuffers([][]byte{a})
	assert.ErrorIs(t, err, vfs.ErrClosed)
}

func TestReader_TransferTo(t *testing.T) {
	r := newThreeByteReader(t)

	var out bytes.Buffer
	n, err := r.TransferTo(1, 10, &out)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.Equal(t, "bc", out.String())
	assert.Zero(t, r.Position())

	n, err = r.TransferTo(3, 10, &out)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestReader_MutationsFail(t *testing.T) {
	r := newThreeByteReader(t)

	_, err := r.Write([]byte("x"))
	assert.ErrorIs(t, err, vfs.ErrNonWritable)
	assert.ErrorIs(t, r.Truncate(0), vfs.ErrNonWritable)
	_, err = r.TransferFrom(bytes.NewReader([]byte("x")), 0, 1)
	assert.ErrorIs(t, err, vfs.ErrNonWritable)

	_, err = r.Map(vfs.MapReadWrite, 0, 3)
	assert.ErrorIs(t, err, vfs.ErrNonWritable)
	_, err = r.Map(vfs.MapPrivate, 0, 3)
	assert.ErrorIs(t, err, vfs.ErrNonWritable)
	_, err = r.Map(vfs.MapReadOnly, 0, 3)
	assert.ErrorIs(t, err, vfs.ErrUnsupported)

	_, err = r.Lock(0, 3, false)
	assert.ErrorIs(t, err, vfs.ErrNonWritable)
	l, err := r.Lock(0, 3, true)
	require.NoError(t, err)
	assert.NoError(t, l.Close())
}

func TestReader_SeesAppendsAndSurvivesOrphaning(t *testing.T) {
	buf := content.NewByteBuffer(0, 0, 0)
	r := NewReader(buf)
	assert.Zero(t, r.Size())

	_, _ = buf.Write([]byte("late"))
	assert.Equal(t, int64(4), r.Size())

	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "late", string(data))
}

func TestReader_Closed(t *testing.T) {
	r := newThreeByteReader(t)
	require.NoError(t, r.Close())

	_, err := r.Read(make([]byte, 1))
	assert.ErrorIs(t, err, vfs.ErrClosed)
	assert.ErrorIs(t, r.SetPosition(0), vfs.ErrClosed)
	assert.NoError(t, r.Close())
}

func TestAppender(t *testing.T) {
	buf := content.NewByteBuffer(0, 0, 4)
	_, _ = buf.Write([]byte("head:"))
	a := NewAppender(buf)

	n, err := a.Write([]byte("tail"))
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, "head:tail", string(buf.Bytes()))

	n, err = a.Read(make([]byte, 4))
	assert.NoError(t, err)
	assert.Zero(t, n)
	assert.Zero(t, a.Position())
	assert.Zero(t, a.Size())
	assert.NoError(t, a.SetPosition(10))
	assert.NoError(t, a.Truncate(0))
	m, err := a.Map(vfs.MapReadOnly, 0, 1)
	assert.NoError(t, err)
	assert.Nil(t, m)
	l, err := a.Lock(0, 1, false)
	assert.NoError(t, err)
	assert.Nil(t, l)
	assert.Equal(t, "head:tail", string(buf.Bytes()), "no-ops must not touch the buffer")

	require.NoError(t, a.Close())
	_, err = a.Write([]byte("x"))
	assert.ErrorIs(t, err, vfs.ErrClosed)
}
