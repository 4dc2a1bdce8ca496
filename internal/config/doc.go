// Package config loads, normalizes, and validates Scribe configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the SCRIBE_CONFIG environment
// fallback. The Config type centralizes every knob the CLI needs, allowing
// the staging directory, engine settings, and output preferences to be
// discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
