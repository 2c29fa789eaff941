package testutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

// ErrTest is a generic test error.
var ErrTest = errors.New("test error")

// TempFile creates a temporary file with content.
func TempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing temp file: %v", err)
	}
	return path
}

// NumberedLog creates a log file with lines "line 1" .. "line n".
func NumberedLog(t *testing.T, dir string, n int) string {
	t.Helper()
	var sb strings.Builder
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&sb, "line %d\n", i)
	}
	return TempFile(t, dir, "app.log", sb.String())
}

// ReadDirNames lists file names in dir, failing the test on error.
func ReadDirNames(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading dir: %v", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

var (
	timestampRe = regexp.MustCompile(`\d{4}-\d{2}-\d{2}[ _T]\d{2}[:-]\d{2}[:-]\d{2}`)
	uuidRe      = regexp.MustCompile(`[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`)
)

// ScrubTimestamps replaces report and filename timestamps.
func ScrubTimestamps(s string) string {
	return timestampRe.ReplaceAllString(s, "[TIMESTAMP]")
}

// ScrubUUIDs removes UUIDs from output.
func ScrubUUIDs(s string) string {
	return uuidRe.ReplaceAllString(s, "[UUID]")
}

// ScrubAll applies all scrubbing functions.
func ScrubAll(s string) string {
	return ScrubUUIDs(ScrubTimestamps(s))
}
