package config_test

import (
	"strings"
	"testing"

	"github.com/idelchi/goctr/internal/config"
)

func valid() config.Config {
	return config.Config{
		Key:      strings.Repeat("ab", 32),
		Parallel: 4,
		Files:    []string{"data.bin"},
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*config.Config) {}},
		{name: "key_file_instead_of_key", mutate: func(c *config.Config) {
			c.Key = ""
			c.KeyFile = "key.txt"
		}},
		{name: "no_key_at_all", mutate: func(c *config.Config) {
			c.Key = ""
		}, wantErr: true},
		{name: "key_and_key_file_conflict", mutate: func(c *config.Config) {
			c.KeyFile = "key.txt"
		}, wantErr: true},
		{name: "non_hex_key", mutate: func(c *config.Config) {
			c.Key = strings.Repeat("zz", 32)
		}, wantErr: true},
		{name: "no_files", mutate: func(c *config.Config) {
			c.Files = nil
		}, wantErr: true},
		{name: "zero_parallelism", mutate: func(c *config.Config) {
			c.Parallel = 0
		}, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg := valid()
			tc.mutate(&cfg)

			err := cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr = %v", err, tc.wantErr)
			}
		})
	}
}
