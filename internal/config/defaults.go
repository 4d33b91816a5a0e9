// defaults.go decodes the engine's startup defaults from a TOML file and
// builds the UCI option table (Hash, Threads, MultiPV, Ponder).
package config

import "github.com/BurntSushi/toml"

// Defaults holds the values loaded from an on-disk config file before
// any "setoption" commands have run.
type Defaults struct {
	HashMB    int  `toml:"hash_mb"`
	Threads   int  `toml:"threads"`
	MultiPV   int  `toml:"multi_pv"`
	Ponder    bool `toml:"ponder"`
	Contempt  int  `toml:"contempt"`
}

// BuiltinDefaults are used when no config file is present.
var BuiltinDefaults = Defaults{
	HashMB:   32,
	Threads:  1,
	MultiPV:  1,
	Ponder:   false,
	Contempt: 0,
}

// LoadDefaults reads and decodes a TOML defaults file. On a missing or
// malformed file it returns BuiltinDefaults alongside the error, so a
// caller can fall back to a minimal configuration and continue.
func LoadDefaults(path string) (Defaults, error) {
	d := BuiltinDefaults
	_, err := toml.DecodeFile(path, &d)
	if err != nil {
		return BuiltinDefaults, err
	}
	return d, nil
}

// NewEngineOptions builds the option table for the four options the
// spec's UCI table names, seeded from d.
func NewEngineOptions(d Defaults) *Options {
	os := NewOptions()
	os.Register(&Option{
		Name:    "Hash",
		Kind:    Spin,
		Default: int64(d.HashMB),
		Min:     1,
		Max:     4096,
	})
	os.Register(&Option{
		Name:    "Threads",
		Kind:    Spin,
		Default: int64(d.Threads),
		Min:     1,
		Max:     64,
	})
	os.Register(&Option{
		Name:    "MultiPV",
		Kind:    Spin,
		Default: int64(d.MultiPV),
		Min:     1,
		Max:     16,
	})
	os.Register(&Option{
		Name:    "Ponder",
		Kind:    Check,
		Default: boolToInt64(d.Ponder),
	})
	return os
}

func boolToInt64(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
