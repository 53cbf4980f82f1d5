package domcheck

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/afero"
)

// MatchSnapshot compares the screen's current tree against a golden file
// stored in <snapshot-dir>/<sanitized-test-name>-<hash>/<sanitized-name>.txt.
//
// Set DOMCHECK_UPDATE=1 to create or update golden files.
func (scr *Screen) MatchSnapshot(t testing.TB, name string) {
	t.Helper()

	opts := scr.snapshotOptions()
	dir := snapshotDir(t, opts.snapshotDir)
	path := filepath.Join(dir, sanitizeName(name)+".txt")
	content := normalizeForSnapshot(prettyForest("screen", scr.Root()))

	if *opts.update {
		if err := opts.fs.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("domcheck: snapshot: failed to create directory: %v", err)
		}
		if err := afero.WriteFile(opts.fs, path, []byte(content), 0o644); err != nil {
			t.Fatalf("domcheck: snapshot: failed to write golden file: %v", err)
		}
		return
	}

	golden, err := afero.ReadFile(opts.fs, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			t.Fatalf("domcheck: snapshot: golden file not found: %s\nRun with DOMCHECK_UPDATE=1 to create it.\n\nActual tree:\n%s", path, content)
		}
		t.Fatalf("domcheck: snapshot: failed to read golden file: %v", err)
	}

	if string(golden) != content {
		diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(string(golden)),
			B:        difflib.SplitLines(content),
			FromFile: "golden",
			ToFile:   "actual",
			Context:  3,
		})
		t.Fatalf("domcheck: snapshot: mismatch for %q\nGolden file: %s\nRun with DOMCHECK_UPDATE=1 to update.\n\n%s",
			name, path, diff)
	}
}

func (scr *Screen) snapshotOptions() options {
	if scr.session != nil {
		return scr.session.opts
	}
	opts := defaultOptions()
	cfg, _ := LoadConfig(opts.lookup)
	opts.resolve(cfg)
	return opts
}

// snapshotDir returns the directory for golden files for the current test.
// Uses <base>/<sanitized-test-name>-<hash>/ where hash ensures uniqueness.
func snapshotDir(t testing.TB, base string) string {
	t.Helper()

	fullName := t.Name()
	sanitized := sanitizeName(fullName)

	// Short stable hash for uniqueness.
	h := sha256.Sum256([]byte(fullName))
	hash := hex.EncodeToString(h[:4])

	return filepath.Join(base, sanitized+"-"+hash)
}

// sanitizeName maps a test or snapshot name to a safe file name.
func sanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	s := b.String()
	if len(s) > 60 {
		s = s[:60]
	}
	return s
}

// normalizeForSnapshot trims trailing spaces per line and trailing blank
// lines, and ends the content with a single newline.
func normalizeForSnapshot(raw string) string {
	lines := strings.Split(raw, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n") + "\n"
}
