// Package config provides configuration loading and validation for assetserve.
//
// The package handles YAML configuration files, environment variables, and CLI flags
// with automatic merging and validation using go-playground/validator.
//
// # Configuration Precedence
//
// Values are loaded in this order (later sources override earlier ones):
//
//  1. Default values
//  2. Configuration file(s) - multiple files merged left-to-right
//  3. Environment variables (ASSETSERVE_ prefix)
//  4. CLI flags
//
// # Usage
//
//	cfg, err := config.Load([]string{"config.yaml"}, cmd.Flags())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Store in context for subcommands
//	ctx = config.WithContext(ctx, cfg)
//
//	// Retrieve later
//	cfg, err = config.FromContext(ctx)
//
// # Environment Variables
//
// All config keys map to environment variables with ASSETSERVE_ prefix:
//   - server.port → ASSETSERVE_SERVER_PORT
//   - static.root → ASSETSERVE_STATIC_ROOT
//   - log.level → ASSETSERVE_LOG_LEVEL
//
// # Configuration Structure
//
// The Config struct contains:
//   - Server: port and timeouts (seconds)
//   - Static: the asset root directory (default ./static)
//   - Index: whether GET / lists assets, and CORS for that listing
//   - Log: level and format (text or json)
//
// # Validation
//
// Configuration is validated using struct tags:
//   - Port must be 1-65535
//   - Timeouts must be at least one second
//   - Log level must be debug, info, warn, or error
//   - Log format must be text or json
package config
