// Package config loads and validates the settings shared by the crypto-trace
// binaries: logging, run-history storage, engine bounds and the REST server.
//
// Settings are read from YAML through viper, may be overridden by
// CRYPTO_TRACE_ prefixed environment variables, and are validated before use.
package config
