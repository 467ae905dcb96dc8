package archive

import (
	"fmt"
	"path"
	"strings"

	"github.com/vvka-141/memvfs/pkg/vfs"
)

// Format identifies an archive container.
type Format int

const (
	FormatZip Format = iota
	FormatTar
	FormatTarGzip
	FormatTarZstd
)

func (f Format) String() string {
	switch f {
	case FormatZip:
		return "zip"
	case FormatTar:
		return "tar"
	case FormatTarGzip:
		return "tar.gz"
	case FormatTarZstd:
		return "tar.zst"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// suffixes maps file name endings to formats. Longer endings come first so
// ".tar.gz" wins over ".gz".
var suffixes = []struct {
	suffix string
	format Format
}{
	{".tar.gz", FormatTarGzip},
	{".tar.zst", FormatTarZstd},
	{".tgz", FormatTarGzip},
	{".tzst", FormatTarZstd},
	{".tar", FormatTar},
	{".zip", FormatZip},
	{".jar", FormatZip},
}

// DetectFormat infers the format from a file name.
func DetectFormat(name string) (Format, error) {
	base := strings.ToLower(path.Base(strings.ReplaceAll(name, `\`, "/")))
	for _, s := range suffixes {
		if strings.HasSuffix(base, s.suffix) {
			return s.format, nil
		}
	}
	return 0, fmt.Errorf("%w: cannot infer archive format of %q", vfs.ErrUnsupported, name)
}

// IsArchive reports whether DetectFormat recognizes name.
func IsArchive(name string) bool {
	_, err := DetectFormat(name)
	return err == nil
}
