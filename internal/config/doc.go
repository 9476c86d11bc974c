// Package config loads and validates application settings from defaults,
// an optional config file and environment variables.
package config
