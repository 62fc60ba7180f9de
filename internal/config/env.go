package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	BaseURL string
	WsURL   string

	CredentialFile string

	WsBackoffMaxSec int
}

func LoadConfig() Config {
	// Optional; the defaults below cover local development.
	_ = godotenv.Load()

	config := Config{
		BaseURL:         getEnv("JUDGE_BASEURL", "http://localhost:3000"),
		WsURL:           getEnv("JUDGE_WSURL", "ws://localhost:3000/api/ws/history"),
		CredentialFile:  getEnv("JUDGE_CREDFILE", defaultCredentialFile()),
		WsBackoffMaxSec: getEnvInt("JUDGE_WSBACKOFFMAX", 30),
	}

	return config
}

func defaultCredentialFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".judge-credentials.json"
	}
	return filepath.Join(home, ".judge", "credentials.json")
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
