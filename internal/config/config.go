// Package config loads the simulator's hierarchical configuration: a
// key-value tree read from a file, with viper.Sub-style branch views and
// relative path resolution against the config file's own directory.
package config

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"csb/streamer/internal/xerrors"
)

// Tree is a branch view over a loaded configuration file. The root Tree is
// returned by Load; Branch descends into a nested key.
type Tree struct {
	v       *viper.Viper
	baseDir string
}

// Load reads a configuration file at path and returns its root Tree.
// Relative paths found later under this tree (traffic.path,
// workload.patterns[*].path, platform.temperature.path, platform.power.path,
// output.path) are resolved against filepath.Dir(path).
func Load(path string) (*Tree, error) {
	v := viper.New()
	v.SetConfigFile(path)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, xerrors.Wrap(xerrors.Configuration, err, "reading config file %q", path)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, xerrors.Wrap(xerrors.Configuration, err, "resolving config path %q", path)
	}

	return &Tree{v: v, baseDir: filepath.Dir(abs)}, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("seed", 0)
	v.SetDefault("output.time_span", 10.0)
}

// Branch returns the sub-tree rooted at key, or nil if the key is absent.
func (t *Tree) Branch(key string) *Tree {
	sub := t.v.Sub(key)
	if sub == nil {
		return nil
	}
	return &Tree{v: sub, baseDir: t.baseDir}
}

// Branches returns one Tree per element of a config array at key (used for
// workload.patterns, which is a list of {path, time_step, name} maps).
func (t *Tree) Branches(key string) []*Tree {
	raw, ok := t.v.Get(key).([]any)
	if !ok {
		return nil
	}
	out := make([]*Tree, 0, len(raw))
	for _, item := range raw {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		sub := viper.New()
		if err := sub.MergeConfigMap(m); err != nil {
			continue
		}
		out = append(out, &Tree{v: sub, baseDir: t.baseDir})
	}
	return out
}

func indexed(key string, i int) string {
	var b strings.Builder
	b.WriteString(key)
	b.WriteByte('[')
	b.WriteString(strconv.Itoa(i))
	b.WriteByte(']')
	return b.String()
}

// String returns a plain string value.
func (t *Tree) String(key string) string {
	return t.v.GetString(key)
}

// Float64 returns a real-valued config entry.
func (t *Tree) Float64(key string) float64 {
	return t.v.GetFloat64(key)
}

// Int64 returns an integer-valued config entry.
func (t *Tree) Int64(key string) int64 {
	return t.v.GetInt64(key)
}

// IsSet reports whether key has an explicit value.
func (t *Tree) IsSet(key string) bool {
	return t.v.IsSet(key)
}

// Path resolves a (possibly relative) path value at key against the
// directory of the loaded config file.
func (t *Tree) Path(key string) string {
	raw := t.v.GetString(key)
	if raw == "" || filepath.IsAbs(raw) {
		return raw
	}
	return filepath.Join(t.baseDir, raw)
}
