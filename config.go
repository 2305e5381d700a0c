package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/validator.v2"
)

const defaultProcDir = "/proc"

// Config holds the options that can be set from a TOML file as well as
// from the command line.
type Config struct {
	ProcDir       string `toml:"proc_dir" validate:"nonzero"`
	Source        string `toml:"source" validate:"oneof=auto rollup detailed"`
	Workers       int    `toml:"workers" validate:"min=1,max=256"`
	Format        string `toml:"format" validate:"oneof=table yaml"`
	Filter        string `toml:"filter"`
	Wide          bool   `toml:"wide"`
	HumanReadable bool   `toml:"human_readable"`
	Quiet         bool   `toml:"quiet"`
	Heap          bool   `toml:"heap"`
	Verbose       bool   `toml:"verbose"`
}

func init() {
	if err := validator.SetValidationFunc("oneof", oneOf); err != nil {
		panic(err)
	}
}

// oneOf checks that a string field holds one of the space separated
// words of param
func oneOf(v interface{}, param string) error {
	s, ok := v.(string)
	if !ok {
		return validator.ErrUnsupported
	}
	if !slices.Contains(strings.Fields(param), s) {
		return fmt.Errorf("must be one of: %s", param)
	}
	return nil
}

func defaultConfig() Config {
	return Config{
		ProcDir: defaultProcDir,
		Source:  string(SourceAuto),
		Workers: 8,
		Format:  "table",
	}
}

// loadConfig decodes the TOML file at path over the defaults. Keys that
// do not map to a Config field are rejected.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("decoding %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, fmt.Errorf("unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// validate checks field constraints and resolves option interactions.
func (c *Config) validate() error {
	if err := validator.Validate(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	// heap sizes are only reported per mapping
	if c.Heap {
		c.Source = string(SourceDetailed)
	}
	return nil
}
