package config

import "errors"

// Configuration validation errors returned by Config.Validate.
var (
	ErrInvalidDictionary  = errors.New("invalid dictionary: must be ipa or uni")
	ErrInvalidMode        = errors.New("invalid mode: must be normal, search or extended")
	ErrInvalidFormat      = errors.New("invalid format: must be ruby or bracket")
	ErrInvalidTimeout     = errors.New("invalid request timeout: must be positive")
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")
	ErrNoDBDir            = errors.New("no database directory configured")
)

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")
