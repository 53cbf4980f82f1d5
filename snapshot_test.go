package domcheck_test

import (
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cboone/domcheck"
	"github.com/cboone/domcheck/htmltree"
	"github.com/cboone/domcheck/internal/fixture"
)

func mapEnv(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func goldenFiles(t *testing.T, fs afero.Fs, pattern string) []string {
	t.Helper()
	matches, err := afero.Glob(fs, pattern)
	require.NoError(t, err)
	return matches
}

func TestMatchSnapshotRoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()

	_, scr := open(t, fixture.Counter{}, domcheck.WithFs(fs), domcheck.WithUpdateSnapshots(true))
	scr.MatchSnapshot(t, "counter")

	files := goldenFiles(t, fs, "testdata/*/counter.txt")
	require.Len(t, files, 1)
	assert.True(t, strings.HasPrefix(files[0], "testdata/TestMatchSnapshotRoundTrip-"))

	golden, err := afero.ReadFile(fs, files[0])
	require.NoError(t, err)
	content := string(golden)
	assert.True(t, strings.HasPrefix(content, "screen\n"), content)
	assert.Contains(t, content, `<div class="counter card">`)
	assert.Contains(t, content, `"Count: 0"`)
	assert.NotContains(t, content, htmltree.ContainerAttr)
	assert.True(t, strings.HasSuffix(content, "\n"))
	assert.False(t, strings.HasSuffix(content, "\n\n"))

	_, again := open(t, fixture.Counter{}, domcheck.WithFs(fs), domcheck.WithUpdateSnapshots(false))
	again.MatchSnapshot(t, "counter")
}

func TestMatchSnapshotMismatch(t *testing.T) {
	fs := afero.NewMemMapFs()
	_, scr := open(t, fixture.Counter{}, domcheck.WithFs(fs), domcheck.WithUpdateSnapshots(true))
	scr.MatchSnapshot(t, "counter")

	_, changed := open(t, fixture.Counter{Start: 5}, domcheck.WithFs(fs), domcheck.WithUpdateSnapshots(false))
	rec := &recordingT{TB: t}
	changed.MatchSnapshot(rec, "counter")

	assert.True(t, rec.fatal)
	require.Len(t, rec.errors, 1)
	msg := rec.errors[0]
	assert.Contains(t, msg, `domcheck: snapshot: mismatch for "counter"`)
	assert.Contains(t, msg, "--- golden")
	assert.Contains(t, msg, "+++ actual")
	assert.Contains(t, msg, `-    │   └── "Count: 0"`)
	assert.Contains(t, msg, `+    │   └── "Count: 5"`)
}

func TestMatchSnapshotMissingGolden(t *testing.T) {
	fs := afero.NewMemMapFs()
	_, scr := open(t, `<p>x</p>`, domcheck.WithFs(fs), domcheck.WithUpdateSnapshots(false))

	rec := &recordingT{TB: t}
	scr.MatchSnapshot(rec, "missing")
	assert.True(t, rec.fatal)
	require.NotEmpty(t, rec.errors)
	assert.Contains(t, rec.errors[0], "golden file not found")
	assert.Contains(t, rec.errors[0], "DOMCHECK_UPDATE=1")
}

func TestSnapshotConfigFromEnvironment(t *testing.T) {
	fs := afero.NewMemMapFs()
	env := mapEnv(map[string]string{
		"DOMCHECK_UPDATE":       "yes",
		"DOMCHECK_SNAPSHOT_DIR": "golden",
	})

	_, scr := open(t, `<p>x</p>`, domcheck.WithFs(fs), domcheck.WithLookupEnv(env))
	scr.MatchSnapshot(t, "para graph")

	files := goldenFiles(t, fs, "golden/*/para_graph.txt")
	assert.Len(t, files, 1)
	assert.Empty(t, goldenFiles(t, fs, "testdata/*/*"))
}

func TestLoadConfig(t *testing.T) {
	cfg, err := domcheck.LoadConfig(mapEnv(map[string]string{
		"DOMCHECK_UPDATE":       "true",
		"DOMCHECK_SNAPSHOT_DIR": "snapshots",
	}))
	require.NoError(t, err)
	assert.Equal(t, "snapshots", cfg.SnapshotDir)
	assert.True(t, cfg.UpdateSnapshots())

	cfg, err = domcheck.LoadConfig(noEnv)
	require.NoError(t, err)
	assert.Equal(t, domcheck.Config{}, cfg)
	assert.False(t, cfg.UpdateSnapshots())

	for _, v := range []string{"1", "true", "yes"} {
		assert.True(t, domcheck.Config{Update: v}.UpdateSnapshots(), v)
	}
	for _, v := range []string{"0", "no", "TRUE", ""} {
		assert.False(t, domcheck.Config{Update: v}.UpdateSnapshots(), v)
	}
}
