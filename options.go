package domcheck

import (
	"fmt"
	"os"

	"github.com/benbjohnson/clock"
	"github.com/mstoykov/envconfig"
	"github.com/spf13/afero"
)

// Config is the environment-driven part of a session's configuration.
type Config struct {
	// Update is DOMCHECK_UPDATE; "1", "true" or "yes" rewrites golden files.
	Update string `envconfig:"DOMCHECK_UPDATE"`
	// SnapshotDir is DOMCHECK_SNAPSHOT_DIR, the base directory for golden
	// files. It defaults to "testdata".
	SnapshotDir string `envconfig:"DOMCHECK_SNAPSHOT_DIR"`
}

// LoadConfig reads a Config through lookup, which has the shape of
// os.LookupEnv.
func LoadConfig(lookup func(key string) (string, bool)) (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg, lookup); err != nil {
		return Config{}, fmt.Errorf("domcheck: config: %w", err)
	}
	return cfg, nil
}

// UpdateSnapshots reports whether Update holds a truthy value.
func (c Config) UpdateSnapshots() bool {
	switch c.Update {
	case "1", "true", "yes":
		return true
	}
	return false
}

type options struct {
	clock       clock.Clock
	fs          afero.Fs
	snapshotDir string
	update      *bool
	stringify   func(any) string
	lookup      func(string) (string, bool)
}

// Option configures a Session created by Setup or Open.
type Option func(*options)

// WithClock sets the clock used to wait between retry attempts when the
// environment cannot advance time itself.
func WithClock(c clock.Clock) Option {
	return func(o *options) {
		o.clock = c
	}
}

// WithFs sets the filesystem golden files are read from and written to.
func WithFs(fs afero.Fs) Option {
	return func(o *options) {
		o.fs = fs
	}
}

// WithSnapshotDir sets the base directory for golden files, overriding
// DOMCHECK_SNAPSHOT_DIR.
func WithSnapshotDir(dir string) Option {
	return func(o *options) {
		o.snapshotDir = dir
	}
}

// WithUpdateSnapshots forces golden files to be rewritten (or compared)
// regardless of DOMCHECK_UPDATE.
func WithUpdateSnapshots(update bool) Option {
	return func(o *options) {
		o.update = &update
	}
}

// WithStringify sets the value formatter handed to matchers.
func WithStringify(fn func(any) string) Option {
	return func(o *options) {
		o.stringify = fn
	}
}

// WithLookupEnv sets the environment lookup used by LoadConfig during
// Setup. It defaults to os.LookupEnv.
func WithLookupEnv(lookup func(key string) (string, bool)) Option {
	return func(o *options) {
		o.lookup = lookup
	}
}

const defaultSnapshotDir = "testdata"

func defaultOptions() options {
	return options{
		clock:     clock.New(),
		fs:        afero.NewOsFs(),
		stringify: Stringify,
		lookup:    os.LookupEnv,
	}
}

// resolve fills unset options from cfg.
func (o *options) resolve(cfg Config) {
	if o.snapshotDir == "" {
		o.snapshotDir = cfg.SnapshotDir
	}
	if o.snapshotDir == "" {
		o.snapshotDir = defaultSnapshotDir
	}
	if o.update == nil {
		u := cfg.UpdateSnapshots()
		o.update = &u
	}
}
