package cli

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/klauspost/compress/zip"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/memvfs/internal/config"
	"github.com/vvka-141/memvfs/internal/tui"
	"github.com/vvka-141/memvfs/pkg/vfs"
)

var projectFiles = map[string]string{
	"docs/readme.md": "# hello",
	"src/main.go":    "package main",
	"top.txt":        "top",
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// clearEnv keeps the caller's MEMVFS_* variables out of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{config.EnvIndex, config.EnvListingOrder, config.EnvShuffleSeed, config.EnvFoldCase, config.EnvSeparator} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	t.Setenv("MEMVFS_NON_INTERACTIVE", "1")
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(append([]string{"--config", t.TempDir()}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func writeProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range projectFiles {
		full := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte(body), 0644))
	}
	return dir
}

func writeZip(t *testing.T) string {
	t.Helper()
	name := filepath.Join(t.TempDir(), "bundle.zip")
	f, err := os.Create(name)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for _, entry := range []string{"docs/readme.md", "src/main.go", "top.txt"} {
		w, err := zw.CreateHeader(&zip.FileHeader{Name: entry, Method: zip.Deflate, Modified: time.Now()})
		require.NoError(t, err)
		_, err = io.WriteString(w, projectFiles[entry])
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return name
}

func TestLs_Sources(t *testing.T) {
	clearEnv(t)
	dir := writeProject(t)

	tests := []struct {
		name string
		args []string
	}{
		{"directory", []string{dir}},
		{"direct", []string{"--direct", dir}},
		{"zip", []string{writeZip(t)}},
		{"tree index", []string{"--index", "tree", dir}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCLI(t, append([]string{"ls", "--order", "ascending"}, tt.args...)...)
			require.NoError(t, err)
			assert.Equal(t, "docs/\nsrc/\ntop.txt\n", out)
		})
	}
}

func TestLs_Long(t *testing.T) {
	clearEnv(t)
	out, err := runCLI(t, "ls", "-l", writeProject(t), "docs")
	require.NoError(t, err)
	assert.Contains(t, out, "7 B")
	assert.True(t, strings.HasSuffix(out, "readme.md\n"), out)
}

func TestLs_OrderSources(t *testing.T) {
	clearEnv(t)
	dir := writeProject(t)

	cfgDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, config.ConfigFileName), []byte("listing_order: descending\n"), 0644))

	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs([]string{"ls", "--config", cfgDir, dir})
	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "src/\ndocs/\ntop.txt\n", out.String(), "memvfs.yaml sets the order")

	t.Setenv(config.EnvListingOrder, "ascending")
	got, err := runCLI(t, "ls", dir)
	require.NoError(t, err)
	assert.Equal(t, "docs/\nsrc/\ntop.txt\n", got, "environment sets the order")

	got, err = runCLI(t, "ls", "--order", "descending", dir)
	require.NoError(t, err)
	assert.Equal(t, "src/\ndocs/\ntop.txt\n", got, "flags win over the environment")
}

func TestCat(t *testing.T) {
	clearEnv(t)
	dir := writeProject(t)

	out, err := runCLI(t, "cat", dir, "/docs/readme.md", "top.txt")
	require.NoError(t, err)
	assert.Equal(t, "# hellotop", out)

	_, err = runCLI(t, "cat", dir, "/missing")
	assert.Equal(t, vfs.ExitNotFound, vfs.ExitCodeForError(err))
}

func TestStat(t *testing.T) {
	clearEnv(t)
	dir := writeProject(t)

	out, err := runCLI(t, "stat", dir, "/docs/readme.md")
	require.NoError(t, err)
	assert.Contains(t, out, "Kind:     file")
	assert.Contains(t, out, "(7 bytes)")

	out, err = runCLI(t, "stat", dir, "/docs")
	require.NoError(t, err)
	assert.Contains(t, out, "Entries:  0 directories, 1 files")

	_, err = runCLI(t, "stat", dir, "/nope")
	assert.ErrorIs(t, err, vfs.ErrNotFound)
}

func TestTree(t *testing.T) {
	clearEnv(t)
	out, err := runCLI(t, "tree", writeProject(t))
	require.NoError(t, err)
	assert.Equal(t, "/\ndocs/\n  readme.md\nsrc/\n  main.go\ntop.txt\n\n2 directories, 3 files\n", out)
}

func TestSum(t *testing.T) {
	clearEnv(t)
	dir := writeProject(t)

	out, err := runCLI(t, "sum", dir)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)

	digest := sha256.Sum256([]byte("# hello"))
	assert.Equal(t, hex.EncodeToString(digest[:])+"  ./docs/readme.md", lines[0])
	assert.True(t, strings.HasSuffix(lines[2], "  ./top.txt"))

	out, err = runCLI(t, "sum", "--algo", "xxhash", "--normalized", dir, "/src")
	require.NoError(t, err)
	assert.Regexp(t, `^[0-9a-f]{16}  \./main\.go\n$`, out)

	_, err = runCLI(t, "sum", "--algo", "md5", dir)
	assert.Equal(t, vfs.ExitConfigError, vfs.ExitCodeForError(err))
}

func TestExtract(t *testing.T) {
	clearEnv(t)
	dest := filepath.Join(t.TempDir(), "out")

	out, err := runCLI(t, "extract", writeZip(t), dest)
	require.NoError(t, err)
	assert.Contains(t, out, "extracted 2 directories and 3 files")

	for name, body := range projectFiles {
		data, err := os.ReadFile(filepath.Join(dest, filepath.FromSlash(name)))
		require.NoError(t, err)
		assert.Equal(t, body, string(data))
	}

	_, err = runCLI(t, "extract", writeZip(t), dest)
	require.NoError(t, err, "extracting again overwrites")
}

func TestCommands_UsageErrors(t *testing.T) {
	clearEnv(t)
	dir := writeProject(t)

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"missing source", []string{"ls"}, vfs.ExitUsageError},
		{"too many", []string{"ls", dir, "/", "extra"}, vfs.ExitUsageError},
		{"unknown flag", []string{"ls", "--nope", dir}, vfs.ExitUsageError},
		{"bad order", []string{"ls", "--order", "sideways", dir}, vfs.ExitConfigError},
		{"bad path", []string{"ls", dir, "/../x"}, vfs.ExitInvalidPath},
		{"missing source path", []string{"ls", filepath.Join(dir, "gone")}, vfs.ExitNotFound},
		{"not an archive", []string{"ls", filepath.Join(dir, "top.txt")}, vfs.ExitUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.want, vfs.ExitCodeForError(err), "error: %v", err)
		})
	}
}

func TestBrowse_RequiresTerminal(t *testing.T) {
	clearEnv(t)
	_, err := runCLI(t, "browse", writeProject(t))
	assert.True(t, errors.Is(err, tui.ErrNotInteractive), "got %v", err)
}

func TestVersionCmd(t *testing.T) {
	clearEnv(t)
	out, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "memvfs "), out)
}
