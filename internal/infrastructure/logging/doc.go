// Package logging provides structured logging for pulselink.
//
// This package wraps Go's standard log/slog package so every entry
// carries the service name and version.
//
// # Configuration
//
//	logging:
//	  level: "info"      # debug, info, warn, error
//	  format: "json"     # json, text
//	  output: "stdout"   # stdout, stderr
//
// # Usage
//
//	logger := logging.New(cfg.Logging, version)
//	logger.Info("starting service", "port", 3000)
//	logger.Error("failed to connect", "error", err)
//
// # Security
//
// Never log passwords, password hashes, bearer tokens or the JWT secret.
package logging
