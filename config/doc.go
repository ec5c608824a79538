// Package config loads and validates the media gateway configuration from
// defaults, YAML config files, MEDIAGATE_-prefixed environment variables,
// and CLI flags, in ascending order of precedence.
package config
