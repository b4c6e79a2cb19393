package config

import "github.com/kelseyhightower/envconfig"

// parseEnv overlays environment variables onto the Config. Fields are tagged
// with their variable names (NODE_URL, DATABASE_DSN, ...); variables that are
// not set leave the current values untouched.
func parseEnv(config *Config) {
	if err := envconfig.Process("", config); err != nil {
		panic(err)
	}
}
