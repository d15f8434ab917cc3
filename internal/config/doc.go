// Package config loads, validates, and normalizes the clipforge TOML
// configuration file.
package config
