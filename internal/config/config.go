// Package config loads process configuration from the environment, with
// an optional .env file in the working directory.
package config

import (
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Environment keys recognized by the server. Credential keys live in the
// credentials package; these configure the process itself.
const (
	EnvTransport = "AZDO_MCP_TRANSPORT"
	EnvHost      = "AZDO_MCP_HOST"
	EnvPort      = "AZDO_MCP_PORT"
	EnvLogLevel  = "AZDO_MCP_LOG_LEVEL"
)

// Transport modes selected at startup.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Config holds process configuration. Credentials are deliberately not
// part of it: they are resolved lazily by the credentials package so the
// server can start without them.
type Config struct {
	Transport string
	Host      string
	Port      int
	LogLevel  string
}

// Load reads an optional .env file from the working directory into the
// process environment (existing environment always wins), then builds the
// configuration from the environment with defaults applied.
func Load() (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault(EnvTransport, TransportStdio)
	v.SetDefault(EnvHost, "127.0.0.1")
	v.SetDefault(EnvPort, 8000)
	v.SetDefault(EnvLogLevel, "info")

	return &Config{
		Transport: strings.ToLower(v.GetString(EnvTransport)),
		Host:      v.GetString(EnvHost),
		Port:      v.GetInt(EnvPort),
		LogLevel:  v.GetString(EnvLogLevel),
	}, nil
}

// loadDotEnv copies keys from a dotenv-format file into the process
// environment. Keys already set in the environment are left untouched, so
// real environment variables override file values. A missing file is not
// an error.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		return err
	}

	for _, key := range v.AllKeys() {
		name := strings.ToUpper(key)
		if _, exists := os.LookupEnv(name); exists {
			continue
		}
		if err := os.Setenv(name, v.GetString(key)); err != nil {
			return err
		}
	}
	return nil
}
