package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/hugo-lorenzo-mato/sreagent/internal/core"
	"github.com/hugo-lorenzo-mato/sreagent/internal/logging"
)

// FileTimeLayout is the timestamp embedded in report filenames.
const FileTimeLayout = "2006-01-02_15-04-05"

const fileExt = ".txt"

// Writer persists rendered reports into a directory.
type Writer struct {
	dir      string
	maxFiles int
	logger   *logging.Logger
}

// NewWriter creates a writer for dir. maxFiles bounds the number of reports
// kept on disk; zero keeps everything.
func NewWriter(dir string, maxFiles int, logger *logging.Logger) *Writer {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Writer{dir: dir, maxFiles: maxFiles, logger: logger}
}

// Dir returns the reports directory.
func (w *Writer) Dir() string {
	return w.dir
}

// Persist renders r and writes it to a new file, returning its path. The
// directory is created on demand. An existing file is never overwritten: a
// second report of the same kind within one second gets a numeric suffix.
func (w *Writer) Persist(r Report) (string, error) {
	if err := os.MkdirAll(w.dir, 0o750); err != nil {
		return "", core.ErrIO(core.CodeReportWrite, "creating reports directory").
			WithCause(err).
			WithDetail("dir", w.dir)
	}

	path, err := w.freePath(r.Kind, r.GeneratedAt)
	if err != nil {
		return "", err
	}

	if err := writeFileAtomic(path, []byte(Render(r)), 0o640); err != nil {
		return "", core.ErrIO(core.CodeReportWrite, "writing report").
			WithCause(err).
			WithDetail("path", path)
	}

	if w.maxFiles > 0 {
		w.prune()
	}
	return path, nil
}

func (w *Writer) freePath(kind Kind, at time.Time) (string, error) {
	base := fmt.Sprintf("%s_%s", kind, at.Format(FileTimeLayout))
	for n := 1; n < 100; n++ {
		name := base + fileExt
		if n > 1 {
			name = fmt.Sprintf("%s_%02d%s", base, n, fileExt)
		}
		path := filepath.Join(w.dir, name)
		_, err := os.Lstat(path)
		if os.IsNotExist(err) {
			return path, nil
		}
		if err != nil {
			return "", core.ErrIO(core.CodeReportWrite, "checking report path").
				WithCause(err).
				WithDetail("path", path)
		}
	}
	return "", core.ErrIO(core.CodeReportWrite, "too many reports within one second").
		WithDetail("base", base)
}

// prune removes the oldest reports beyond maxFiles. Failures are logged.
func (w *Writer) prune() {
	entries, err := List(w.dir)
	if err != nil {
		w.logger.Warn("listing reports for retention", "dir", w.dir, "error", err)
		return
	}
	for len(entries) > w.maxFiles {
		if err := os.Remove(entries[0].Path); err != nil {
			w.logger.Warn("failed to remove old report", "path", entries[0].Path, "error", err)
		} else {
			w.logger.Debug("removed old report", "path", entries[0].Path)
		}
		entries = entries[1:]
	}
}

// Entry describes a persisted report file.
type Entry struct {
	Name        string
	Path        string
	Kind        Kind
	GeneratedAt time.Time
	Size        int64
	// ModTime orders reports generated within the same second.
	ModTime time.Time
}

// List returns the reports in dir, oldest first. Files that do not follow
// the report naming scheme are ignored. A missing directory yields no
// entries.
func List(dir string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var out []Entry
	for _, de := range dirEntries {
		if de.IsDir() {
			continue
		}
		kind, at, ok := parseName(de.Name())
		if !ok {
			continue
		}
		e := Entry{
			Name:        de.Name(),
			Path:        filepath.Join(dir, de.Name()),
			Kind:        kind,
			GeneratedAt: at,
		}
		if info, err := de.Info(); err == nil {
			e.Size = info.Size()
			e.ModTime = info.ModTime()
		}
		out = append(out, e)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].GeneratedAt.Equal(out[j].GeneratedAt) {
			return out[i].GeneratedAt.Before(out[j].GeneratedAt)
		}
		if !out[i].ModTime.Equal(out[j].ModTime) {
			return out[i].ModTime.Before(out[j].ModTime)
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// parseName splits KIND_YYYY-MM-DD_HH-MM-SS[_NN].txt.
func parseName(name string) (Kind, time.Time, bool) {
	stem, ok := strings.CutSuffix(name, fileExt)
	if !ok {
		return "", time.Time{}, false
	}
	prefix, rest, ok := strings.Cut(stem, "_")
	if !ok {
		return "", time.Time{}, false
	}
	kind, ok := ParseKind(prefix)
	if !ok {
		return "", time.Time{}, false
	}
	if len(rest) < len(FileTimeLayout) {
		return "", time.Time{}, false
	}
	at, err := time.ParseInLocation(FileTimeLayout, rest[:len(FileTimeLayout)], time.Local)
	if err != nil {
		return "", time.Time{}, false
	}
	if suffix := rest[len(FileTimeLayout):]; suffix != "" && !strings.HasPrefix(suffix, "_") {
		return "", time.Time{}, false
	}
	return kind, at, true
}
