package config

import (
	"net"
	"os"
	"path/filepath"
	"strconv"
)

type Config struct {
	Port string
	Env  string

	DBHost     string
	DBPort     string
	DBDatabase string

	RedisHost string
	RedisPort string

	// FolderPath is the on-disk storage root for uploaded content.
	FolderPath string

	WorkerConcurrency int

	GmailCredentials string
	GmailToken       string
	GmailSender      string
}

func Load() Config {
	return Config{
		Port:              getEnv("PORT", "5000"),
		Env:               getEnv("ENV", "development"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "27017"),
		DBDatabase:        getEnv("DB_DATABASE", "files_manager"),
		RedisHost:         getEnv("REDIS_HOST", "127.0.0.1"),
		RedisPort:         getEnv("REDIS_PORT", "6379"),
		FolderPath:        getEnv("FOLDER_PATH", filepath.Join(os.TempDir(), "files_manager")),
		WorkerConcurrency: getEnvInt("WORKER_CONCURRENCY", 4),
		GmailCredentials:  getEnv("GMAIL_CREDENTIALS", "credentials.json"),
		GmailToken:        getEnv("GMAIL_TOKEN", "token.json"),
		GmailSender:       getEnv("GMAIL_SENDER", ""),
	}
}

// RedisAddr returns the host:port address shared by the session store and
// the job queue backend.
func (c Config) RedisAddr() string {
	return net.JoinHostPort(c.RedisHost, c.RedisPort)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
