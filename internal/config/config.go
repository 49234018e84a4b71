// Package config defines the runtime configuration and its validation rules.
package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Config holds the runtime configuration, populated from flags and
// environment variables.
type Config struct {
	// Common flags
	Key           string `mapstructure:"key"      validate:"omitempty,hexadecimal"`
	KeyFile       string `mapstructure:"key-file" validate:"omitempty,excluded_with=Key"`
	Parallel      int    `validate:"min=1"`
	EncryptSuffix string `mapstructure:"encrypt-ext"`
	DecryptSuffix string `mapstructure:"decrypt-ext"`
	Quiet         bool
	Delete        bool
	Dry           bool
	Stats         bool

	PreserveTimestamps bool `mapstructure:"preserve-timestamps"`

	// File selection
	Include     []string `mapstructure:"include"`
	Exclude     []string `mapstructure:"exclude"`
	IncludeFrom string   `mapstructure:"include-from"`
	ExcludeFrom string   `mapstructure:"exclude-from"`

	// Command-specific flags
	Decrypt bool

	// Positional arguments
	Files []string `validate:"min=1"`
}

// Validate validates the configuration against the struct tags.
func (c Config) Validate() error {
	validate := validator.New()

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("validating configuration: %w", err)
	}

	if c.Key == "" && c.KeyFile == "" {
		return errors.New("either --key or --key-file must be provided")
	}

	return nil
}
