package cli

import (
	"strings"
	"testing"

	"github.com/vvka-141/memvfs/pkg/vfs"
)

func TestRequireArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"missing first", nil, "<source>"},
		{"missing second", []string{"a"}, "<path>"},
		{"exact", []string{"a", "b"}, ""},
		{"too many", []string{"a", "b", "c"}, "accepts at most 2"},
	}

	validate := requireArgs(2, 2, "<source>", "<path>")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate(statCmd, tt.args)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
			if code := vfs.ExitCodeForError(err); code != vfs.ExitUsageError {
				t.Errorf("Expected exit code %d (usage), got %d", vfs.ExitUsageError, code)
			}
		})
	}
}

func TestRequireArgs_Unbounded(t *testing.T) {
	if err := requireArgs(1, -1, "<source>")(catCmd, []string{"a", "b", "c", "d"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
