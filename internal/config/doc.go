// Package config loads the application configuration from a .env file,
// environment variables, command-line flags, and an optional JSON file,
// merging the sources with field-level priority and validating the result.
package config
