package report

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugo-lorenzo-mato/sreagent/internal/core"
	"github.com/hugo-lorenzo-mato/sreagent/internal/logging"
	"github.com/hugo-lorenzo-mato/sreagent/internal/testutil"
	"github.com/hugo-lorenzo-mato/sreagent/internal/tools"
)

func TestPersist_CreatesDirAndFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "sre_reports")
	b := newBuilder(t, filepath.Join(dir, "app.log"), testutil.NewFakeRunner(), nil)
	w := NewWriter(dir, 0, logging.NewNop())

	path, err := w.Persist(b.Build(context.Background(), KindSnapshot, runningSample()))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "SNAPSHOT_2026-03-14_09-26-53.txt"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Status: running")
}

// Every persisted report carries each section header exactly once, in fixed
// order, whether the optional probes succeeded or not.
func TestPersist_SectionHeadersRoundTrip(t *testing.T) {
	cases := map[string]struct {
		runner    *testutil.FakeRunner
		installed map[string]string
		kind      Kind
		running   bool
	}{
		"all probes succeed": {
			runner: testutil.NewFakeRunner().
				On("dmesg", "[1.0] oom-killer\n", nil).
				On("/d ps --format {{.Names}}", "web\n", nil).
				On("/k get pods --no-headers", "api-0 1/1\n", nil),
			installed: map[string]string{tools.Docker: "/d", tools.Kubectl: "/k"},
			kind:      KindSnapshot,
			running:   true,
		},
		"all probes fail": {
			runner: testutil.NewFakeRunner().
				On("dmesg", "", core.ErrTimeout("dmesg timed out")).
				On("/d ps --format {{.Names}}", "", testutil.ErrTest).
				On("/k get pods --no-headers", "", testutil.ErrTest),
			installed: map[string]string{tools.Docker: "/d", tools.Kubectl: "/k"},
			kind:      KindCrash,
		},
		"no tooling": {
			runner: testutil.NewFakeRunner(),
			kind:   KindCrash,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			b := newBuilder(t, filepath.Join(dir, "absent.log"), tc.runner, tc.installed)
			w := NewWriter(dir, 0, nil)

			var sample = runningSample()
			if !tc.running {
				sample = nil
			}
			path, err := w.Persist(b.Build(context.Background(), tc.kind, sample))
			require.NoError(t, err)

			data, err := os.ReadFile(path)
			require.NoError(t, err)

			var found []string
			known := make(map[string]bool, len(SectionHeaders))
			for _, h := range SectionHeaders {
				known[h] = true
			}
			lines := strings.Split(string(data), "\n")
			for i, line := range lines {
				if known[line] && i+1 < len(lines) && lines[i+1] == strings.Repeat("-", len(line)) {
					found = append(found, line)
				}
			}
			assert.Equal(t, SectionHeaders, found)
		})
	}
}

func TestPersist_SameSecondDoesNotOverwrite(t *testing.T) {
	dir := t.TempDir()
	b := newBuilder(t, filepath.Join(dir, "app.log"), testutil.NewFakeRunner(), nil)
	w := NewWriter(dir, 0, nil)

	var paths []string
	for i := 0; i < 3; i++ {
		p, err := w.Persist(b.Build(context.Background(), KindCrash, nil))
		require.NoError(t, err)
		paths = append(paths, filepath.Base(p))
	}

	assert.Equal(t, []string{
		"CRASH_2026-03-14_09-26-53.txt",
		"CRASH_2026-03-14_09-26-53_02.txt",
		"CRASH_2026-03-14_09-26-53_03.txt",
	}, paths)

	entries, err := List(dir)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	for i, e := range entries {
		assert.Equal(t, paths[i], e.Name, "list order follows write order")
	}
}

func TestPersist_UnwritableDir(t *testing.T) {
	base := t.TempDir()
	blocker := testutil.TempFile(t, base, "file", "x")
	b := newBuilder(t, filepath.Join(base, "app.log"), testutil.NewFakeRunner(), nil)
	w := NewWriter(filepath.Join(blocker, "reports"), 0, nil)

	_, err := w.Persist(b.Build(context.Background(), KindSnapshot, runningSample()))
	require.Error(t, err)
	assert.True(t, core.IsCategory(err, core.ErrCatIO))
}

func TestPersist_Retention(t *testing.T) {
	dir := t.TempDir()
	b := newBuilder(t, filepath.Join(dir, "app.log"), testutil.NewFakeRunner(), nil)
	w := NewWriter(dir, 2, nil)

	at := fixedTime
	b.now = func() time.Time { return at }

	for i := 0; i < 4; i++ {
		_, err := w.Persist(b.Build(context.Background(), KindSnapshot, runningSample()))
		require.NoError(t, err)
		at = at.Add(time.Minute)
	}

	entries, err := List(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "SNAPSHOT_2026-03-14_09-28-53.txt", entries[0].Name)
	assert.Equal(t, "SNAPSHOT_2026-03-14_09-29-53.txt", entries[1].Name)
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	testutil.TempFile(t, dir, "SNAPSHOT_2026-01-02_10-00-00.txt", "a")
	testutil.TempFile(t, dir, "CRASH_2026-01-01_23-59-59.txt", "bb")
	testutil.TempFile(t, dir, "notes.txt", "ignored")
	testutil.TempFile(t, dir, "CRASH_garbage.txt", "ignored")
	testutil.TempFile(t, dir, "SNAPSHOT_2026-01-02_10-00-00.txt.tmp", "ignored")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "CRASH_2026-01-01_00-00-00.txt"), 0o750))

	entries, err := List(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, KindCrash, entries[0].Kind)
	assert.Equal(t, int64(2), entries[0].Size)
	assert.Equal(t, KindSnapshot, entries[1].Kind)
	assert.Equal(t, 10, entries[1].GeneratedAt.Hour())
}

func TestList_MissingDir(t *testing.T) {
	entries, err := List(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestList_SameSecondOrderedByWriteTime(t *testing.T) {
	dir := t.TempDir()
	snap := testutil.TempFile(t, dir, "SNAPSHOT_2026-01-02_10-00-00.txt", "first")
	crash := testutil.TempFile(t, dir, "CRASH_2026-01-02_10-00-00.txt", "second")
	base := time.Date(2026, 1, 2, 10, 0, 0, 0, time.Local)
	require.NoError(t, os.Chtimes(snap, base, base.Add(100*time.Millisecond)))
	require.NoError(t, os.Chtimes(crash, base, base.Add(700*time.Millisecond)))

	entries, err := List(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, KindSnapshot, entries[0].Kind)
	assert.Equal(t, KindCrash, entries[1].Kind)
}

func TestPersist_RetentionKeepsNewerOfSameSecondPair(t *testing.T) {
	dir := t.TempDir()
	old := testutil.TempFile(t, dir, "SNAPSHOT_2026-03-14_09-26-53.txt", "older")
	longAgo := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(old, longAgo, longAgo))

	b := newBuilder(t, filepath.Join(dir, "app.log"), testutil.NewFakeRunner(), nil)
	w := NewWriter(dir, 1, nil)

	path, err := w.Persist(b.Build(context.Background(), KindCrash, nil))
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Base(path)}, testutil.ReadDirNames(t, dir))
	assert.True(t, strings.HasPrefix(filepath.Base(path), "CRASH_2026-03-14_09-26-53"))
}

func TestWriteFileAtomic_IgnoresLeftoverTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "CRASH_2026-03-14_09-26-53.txt")
	stale := testutil.TempFile(t, dir, filepath.Base(path)+".tmp", "stale")

	require.NoError(t, writeFileAtomic(path, []byte("report body"), 0o640))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "report body", string(data))

	leftover, err := os.ReadFile(stale)
	require.NoError(t, err)
	assert.Equal(t, "stale", string(leftover))
	assert.ElementsMatch(t, []string{filepath.Base(path), filepath.Base(stale)}, testutil.ReadDirNames(t, dir))
}
