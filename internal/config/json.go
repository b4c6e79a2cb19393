package config

import (
	"encoding/json"
	"os"

	"github.com/hobbleabbas/bapu-gateway/internal/flagx"
	"github.com/hobbleabbas/bapu-gateway/internal/timex"
)

// JsonConfig is an intermediate DTO used only for reading JSON configuration
// files. It uses timex.Duration for interval fields, which allows parsing
// both string values such as "30s" and integer nanoseconds. After
// unmarshalling, its fields are copied into the runtime Config.
type JsonConfig struct {
	Address             string         `json:"address"`
	DatabaseDSN         string         `json:"database_dsn"`
	NodeURL             string         `json:"node_url"`
	NodeUser            string         `json:"node_user"`
	NodePassword        string         `json:"node_password"`
	NodeTimeout         timex.Duration `json:"node_timeout"`
	SecretKey           string         `json:"secret_key"`
	AccessTokenValidity timex.Duration `json:"access_token_validity"`
	ErrorLogPath        string         `json:"error_log_path"`
}

// parseJson loads configuration values from the JSON file named by the
// -c/-config flags into the provided Config. When neither flag is set, no
// file is loaded. An unreadable or invalid file panics: the process cannot
// start with half-applied configuration.
//
// Only fields present in the file override the current values.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.Address != "" {
		config.Address = c.Address
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.NodeURL != "" {
		config.NodeURL = c.NodeURL
	}
	if c.NodeUser != "" {
		config.NodeUser = c.NodeUser
	}
	if c.NodePassword != "" {
		config.NodePassword = c.NodePassword
	}
	if c.NodeTimeout.Duration != 0 {
		config.NodeTimeout = c.NodeTimeout.Duration
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.AccessTokenValidity.Duration != 0 {
		config.AccessTokenValidity = c.AccessTokenValidity.Duration
	}
	if c.ErrorLogPath != "" {
		config.ErrorLogPath = c.ErrorLogPath
	}
}
