// Package config handles loading and validating pulselink configuration.
//
// This package manages:
//   - Loading an optional .env file into the environment
//   - Loading configuration from YAML files
//   - Overriding with PULSELINK_* environment variables
//   - Validation of required fields
//
// Security Considerations:
//   - Sensitive values (JWT secret, broker and InfluxDB credentials) should
//     be set via environment variables or .env, not committed YAML
//   - The JWT secret must be at least 32 characters
//
// Usage:
//
//	_ = config.LoadEnvFile(".env")
//	cfg, err := config.Load(config.ResolvePath(flagPath))
//	if err != nil {
//	    return err
//	}
package config
