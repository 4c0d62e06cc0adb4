// Package config loads service configuration from a YAML file, a .env file
// and the process environment.
//
// Viper reads the YAML file first, then every environment variable is bound
// under all of its plausible nested key spellings so that
// PROVIDERS_PRIMARY_API_KEY reaches providers.primary.api_key. Explicit aliases
// cover well-known variable names that do not follow the key layout.
//
// # Usage
//
//	var cfg AppConfig
//	err := config.LoadConfig("linguist", &cfg,
//	    config.WithAlias("providers.primary.api_key", "GEMINI_API_KEY"))
package config
