// Package commands provides the command-line interface for the goctr tool.
//
// It implements commands for:
//   - encryption
//   - decryption
//   - key generation
//   - container header inspection
//
// The package handles command-line parsing, configuration validation,
// and environment variable binding through cobra and viper.
package commands
