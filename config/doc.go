// Package config builds a logger from a YAML document, decoded with
// gopkg.in/yaml.v3.
//
// Every enumerated value is checked by Parse, so a bad level, format,
// output, color mode or overflow policy is reported before any file is
// opened. Errors wrap ErrUnknownLevel, ErrUnknownFormat or
// ErrUnknownValue. Durations use Go syntax ("100ms", "24h").
package config
