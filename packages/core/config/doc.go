// Package config loads bcurl configuration files.
//
// It provides functionality for:
//   - Discovering .bcurl.json / bcurl.config.json / bcurl.yaml / .bcurlrc
//   - JSON and YAML decoding into one Config shape
//   - Default values and merge semantics (CLI flags override file values)
package config
