// Package config handles configuration loading, parsing, and validation
// from environment variables (CARDS_ prefix) and an optional config.yaml.
// It provides type-safe access to settings for the server, the card store
// backends, the cache, authentication and the informational endpoints.
package config
