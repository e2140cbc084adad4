package config

import (
	"bytes"
	"fmt"

	"github.com/BurntSushi/toml"
)

// ToTOMLWithHeader serializes the configuration to TOML below a header
// comment.
func (c *Config) ToTOMLWithHeader(header string) ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}

	return withHeader(header, buf.Bytes()), nil
}

// FromTOML parses a configuration from TOML bytes. Keys the struct does
// not know are reported as an error so typos do not pass silently.
func FromTOML(data []byte) (*Config, error) {
	cfg := &Config{}

	meta, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("parse toml: %w", err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("parse toml: unknown key %q", undecoded[0].String())
	}

	if cfg.VisitorKeys == nil {
		cfg.VisitorKeys = make(map[string][]string)
	}

	return cfg, nil
}
