package config

import (
	"fmt"
	"os"
)

const (
	portEnvVar        = "PORT"
	appNameVar        = "APP_NAME"
	clientsFileEnvVar = "CLIENTS_FILE"
	redisAddrEnvVar   = "REDIS_ADDR"
)

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetClientsFile() string
	GetRedisAddr() string
	GetEnv() string
}

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetPort() string {
	port := GetEnv(portEnvVar, "9001")
	if port != "" && port[0] != ':' {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Go Authz Server")
}

// GetClientsFile returns the path of the JSON client registry file, or empty
// to fall back to the built-in demo client.
func (EnvVars) GetClientsFile() string {
	return GetEnv(clientsFileEnvVar, "")
}

// GetRedisAddr returns the Redis address for the grant store, or empty to
// use the in-memory store.
func (EnvVars) GetRedisAddr() string {
	return GetEnv(redisAddrEnvVar, "")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
