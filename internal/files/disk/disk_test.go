package disk

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/memvfs/pkg/vfs"
	"github.com/vvka-141/memvfs/pkg/vpath"
)

func newFS(t *testing.T) (*FS, string) {
	t.Helper()
	dir := t.TempDir()
	d, err := New(dir, Options{Order: vfs.OrderAscending})
	require.NoError(t, err)
	return d, dir
}

func p(s string) *vpath.Path { return vpath.MustParse(s) }

func TestNew(t *testing.T) {
	dir := t.TempDir()
	d, err := New(dir, Options{})
	require.NoError(t, err)
	abs, _ := filepath.Abs(dir)
	assert.Equal(t, abs, d.Root())

	_, err = New(filepath.Join(dir, "missing"), Options{})
	assert.Error(t, err)

	file := filepath.Join(dir, "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	_, err = New(file, Options{})
	assert.Error(t, err)
}

func TestFS_CreateAndList(t *testing.T) {
	d, dir := newFS(t)

	require.NoError(t, d.CreateDir(p("/a/b")))
	assert.DirExists(t, filepath.Join(dir, "a", "b"))
	assert.ErrorIs(t, d.CreateDir(p("/a")), vfs.ErrDuplicate)

	assert.ErrorIs(t, d.CreateFile(p("/missing/f")), vfs.ErrParentMissing)
	require.NoError(t, d.CreateFile(p("/a/z.txt")))
	require.NoError(t, d.CreateFile(p("./a/y.txt")))
	assert.True(t, d.FileExists(p("/a/y.txt")), `"." and "/" share the root`)

	err := d.CreateDir(p("/a/z.txt/sub"))
	var conflict *vfs.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, vfs.KindFile, conflict.Found)
	assert.ErrorIs(t, d.CreateFile(p("/a/b")), vfs.ErrAlreadyExists)

	l, err := d.List(p("/a"))
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, l.Dirs)
	assert.Equal(t, []string{"y.txt", "z.txt"}, l.Files)

	_, err = d.List(p("/nope"))
	assert.ErrorIs(t, err, vfs.ErrNotFound)
}

func TestFS_RejectsForeignPaths(t *testing.T) {
	d, _ := newFS(t)

	for _, s := range []string{"C:/x", "//host/share", "../up"} {
		assert.ErrorIs(t, d.CreateDir(p(s)), vfs.ErrInvalidArgument, s)
		assert.False(t, d.DirExists(p(s)), s)
	}
}

func TestFS_Delete(t *testing.T) {
	d, _ := newFS(t)
	require.NoError(t, d.CreateDir(p("/tmp/dir")))

	assert.ErrorIs(t, d.DeleteDir(p("/tmp")), vfs.ErrNotEmpty)
	assert.ErrorIs(t, d.DeleteDir(vpath.Root()), vfs.ErrInvalidArgument)
	assert.ErrorIs(t, d.DeleteFile(p("/tmp/dir")), vfs.ErrNotFound)
	require.NoError(t, d.DeleteDir(p("/tmp/dir")))
	require.NoError(t, d.DeleteDir(p("/tmp")))
	assert.False(t, d.DirExists(p("/tmp")))
}

func TestFS_ReadWrite(t *testing.T) {
	d, _ := newFS(t)

	w, err := d.OpenWrite(p("/f.txt"), vfs.WriteOverwrite)
	require.NoError(t, err)
	_, _ = io.WriteString(w, "abc")
	require.NoError(t, w.Close())

	w, err = d.OpenWrite(p("/f.txt"), vfs.WriteAppend)
	require.NoError(t, err)
	_, _ = io.WriteString(w, "def")
	require.NoError(t, w.Close())

	r, err := d.OpenRead(p("/f.txt"))
	require.NoError(t, err)
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())
	assert.Equal(t, "abcdef", string(data))

	size, err := d.FileLength(p("/f.txt"))
	require.NoError(t, err)
	assert.Equal(t, int64(6), size)
	_, err = d.LastModified(p("/f.txt"))
	require.NoError(t, err)

	_, err = d.OpenRead(p("/missing"))
	assert.ErrorIs(t, err, vfs.ErrNotFound)
	_, err = d.OpenWrite(p("/none/f"), vfs.WriteOverwrite)
	assert.ErrorIs(t, err, vfs.ErrParentMissing)
	_, err = d.OpenWrite(p("/f.txt"), vfs.WriteMode(3))
	assert.ErrorIs(t, err, vfs.ErrInvalidArgument)
}

func TestFS_Move(t *testing.T) {
	d, _ := newFS(t)
	require.NoError(t, d.CreateDir(p("/src/inner")))
	require.NoError(t, d.CreateFile(p("/src/inner/f")))
	require.NoError(t, d.CreateDir(p("/other")))

	assert.ErrorIs(t, d.MoveDir(p("/src"), p("/src/inner/x")), vfs.ErrInvalidArgument)
	assert.ErrorIs(t, d.MoveDir(p("/src"), p("/other")), vfs.ErrDuplicate)
	assert.ErrorIs(t, d.MoveDir(p("/src"), p("/nope/x")), vfs.ErrParentMissing)
	assert.ErrorIs(t, d.MoveDir(p("/nope"), p("/x")), vfs.ErrNotFound)
	assert.NoError(t, d.MoveDir(p("/src"), p("/src")))

	require.NoError(t, d.MoveDir(p("/src"), p("/other/dst")))
	assert.True(t, d.FileExists(p("/other/dst/inner/f")))
	assert.False(t, d.DirExists(p("/src")))

	assert.ErrorIs(t, d.MoveFile(p("/other/dst/inner/f"), p("/other")), vfs.ErrAlreadyExists)
	require.NoError(t, d.MoveFile(p("/other/dst/inner/f"), p("/f")))
	assert.True(t, d.FileExists(p("/f")))
	assert.ErrorIs(t, d.MoveFile(p("/other/dst/inner/f"), p("/g")), vfs.ErrNotFound)
}

func TestChannel_ReadOnly(t *testing.T) {
	d, dir := newFS(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "three"), []byte("abc"), 0o644))

	ch, err := d.OpenReadChannel(p("/three"))
	require.NoError(t, err)
	defer ch.Close()

	assert.Equal(t, int64(3), ch.Size())

	n, err := ch.Read(nil)
	assert.NoError(t, err)
	assert.Zero(t, n)

	require.NoError(t, ch.SetPosition(3))
	_, err = ch.Read(make([]byte, 1))
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, int64(3), ch.Position())

	buf := make([]byte, 2)
	n, err = ch.ReadAt(buf, 1)
	require.NoError(t, err)
	assert.Equal(t, "bc", string(buf[:n]))

	var out bytes.Buffer
	copied, err := ch.TransferTo(1, 10, &out)
	require.NoError(t, err)
	assert.Equal(t, int64(2), copied)
	assert.Equal(t, "bc", out.String())

	require.NoError(t, ch.SetPosition(0))
	a, b := make([]byte, 2), make([]byte, 2)
	total, err := ch.ReadBuffers([][]byte{a, b})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	_, err = ch.ReadBuffers([][]byte{a})
	assert.ErrorIs(t, err, io.EOF)

	_, err = ch.Write([]byte("x"))
	assert.ErrorIs(t, err, vfs.ErrNonWritable)
	assert.ErrorIs(t, ch.Truncate(0), vfs.ErrNonWritable)
	_, err = ch.TransferFrom(strings.NewReader("x"), 0, 1)
	assert.ErrorIs(t, err, vfs.ErrNonWritable)
	_, err = ch.Map(vfs.MapReadWrite, 0, 3)
	assert.ErrorIs(t, err, vfs.ErrNonWritable)
	_, err = ch.Lock(0, 3, true)
	assert.ErrorIs(t, err, vfs.ErrUnsupported)
}

func TestChannel_MapReadOnly(t *testing.T) {
	d, dir := newFS(t)
	payload := bytes.Repeat([]byte("0123456789"), 1000)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "big"), payload, 0o644))

	ch, err := d.OpenReadChannel(p("/big"))
	require.NoError(t, err)
	defer ch.Close()

	m, err := ch.Map(vfs.MapReadOnly, 4099, 5)
	require.NoError(t, err)
	assert.Equal(t, payload[4099:4104], m.Bytes()[:5])
	require.NoError(t, m.Release())
	assert.ErrorIs(t, m.Release(), vfs.ErrClosed)

	_, err = ch.Map(vfs.MapReadOnly, 0, 0)
	assert.ErrorIs(t, err, vfs.ErrInvalidArgument)
}

func TestChannel_WritableMapAndTransfer(t *testing.T) {
	d, _ := newFS(t)

	ch, err := d.OpenWriteChannel(p("/out"), vfs.WriteOverwrite)
	require.NoError(t, err)
	_, err = ch.Write([]byte("hello world"))
	require.NoError(t, err)

	n, err := ch.TransferFrom(strings.NewReader("WORLD!!"), 6, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)

	m, err := ch.Map(vfs.MapReadWrite, 0, 5)
	require.NoError(t, err)
	copy(m.Bytes(), "HELLO")
	require.NoError(t, m.Release())

	require.NoError(t, ch.Truncate(8))
	require.NoError(t, ch.Close())

	data, err := os.ReadFile(filepath.Join(d.Root(), "out"))
	require.NoError(t, err)
	assert.Equal(t, "HELLO WO", string(data))
}
