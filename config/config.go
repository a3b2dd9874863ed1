// Package config loads tool configuration from a TOML file: the runtime
// options threaded through the document tree plus snapshot settings for
// the command line tools. The table's render cache size is not part of
// the configuration.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"JsonDB/node"
	"JsonDB/table"
)

type Config struct {
	Options  OptionsConfig  `toml:"options"`
	Snapshot SnapshotConfig `toml:"snapshot"`
}

type OptionsConfig struct {
	Sort          bool   `toml:"sort"`
	BinarySearch  bool   `toml:"binary_search"`
	RecursiveMode bool   `toml:"recursive_mode"`
	Sep           string `toml:"sep"`
	NullLiteral   string `toml:"null_literal"`
	LazyParse     bool   `toml:"lazy_parse"`
}

type SnapshotConfig struct {
	Compression string `toml:"compression"` // none, gzip, snappy
}

// Default mirrors node.DefaultOptions with gzip snapshots.
func Default() Config {
	o := node.DefaultOptions()
	return Config{
		Options: OptionsConfig{
			Sort:         o.Sort,
			BinarySearch: o.BinarySearch,
			Sep:          string(o.Sep),
			NullLiteral:  o.NullLiteral,
		},
		Snapshot: SnapshotConfig{Compression: "gzip"},
	}
}

// FromFile overlays a TOML file onto the defaults.
func FromFile(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if len(cfg.Options.Sep) != 1 {
		return cfg, fmt.Errorf("config: sep must be a single byte, got %q", cfg.Options.Sep)
	}
	return cfg, nil
}

// NodeOptions converts the config into runtime options.
func (c Config) NodeOptions() *node.Options {
	return &node.Options{
		Sort:          c.Options.Sort,
		BinarySearch:  c.Options.BinarySearch,
		RecursiveMode: c.Options.RecursiveMode,
		Sep:           c.Options.Sep[0],
		NullLiteral:   c.Options.NullLiteral,
		LazyParse:     c.Options.LazyParse,
	}
}

// Compression resolves the snapshot codec name.
func (c Config) Compression() (table.Compression, error) {
	switch c.Snapshot.Compression {
	case "", "none":
		return table.CompressionNone, nil
	case "gzip":
		return table.CompressionGzip, nil
	case "snappy":
		return table.CompressionSnappy, nil
	}
	return table.CompressionNone, fmt.Errorf("config: unknown compression %q", c.Snapshot.Compression)
}
