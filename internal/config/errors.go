package config

import "errors"

var (
	// ErrInvalidStorageConfigs is returned when the merged configuration
	// carries no database DSN.
	ErrInvalidStorageConfigs = errors.New("invalid storage configs: database DSN is required")

	// ErrInvalidAuthConfigs is returned when the token sign key, issuer or
	// duration is missing from the merged configuration.
	ErrInvalidAuthConfigs = errors.New("invalid auth configs: token sign key, issuer and duration are required")

	// ErrInvalidServerConfigs is returned when no HTTP listen address is
	// configured.
	ErrInvalidServerConfigs = errors.New("invalid server configs: HTTP address is required")
)
