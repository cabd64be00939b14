package config

import (
	"os"
	"strconv"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// MinIOConfig holds object storage settings for profile-image uploads.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// SMBConfig holds the remote-share settings for the "samba" storage
// backend. All fields are required together when that backend is used.
type SMBConfig struct {
	ServerName  string
	ServerIP    string
	Username    string
	Password    string
	ShareName   string
	MachineName string
	RemotePath  string
}

// StorageConfig holds the local upload root for the "local" storage backend.
type StorageConfig struct {
	LocalRoot string
}

// AuthConfig holds token-signing settings. Tokens are signed with a
// server-side secret, never with per-user material.
type AuthConfig struct {
	JWTSecret   string
	TokenTTLMin int
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost  string
	Port     string
	Timezone string
	Database DatabaseConfig
	MinIO    MinIOConfig
	SMB      SMBConfig
	Storage  StorageConfig
	Auth     AuthConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:  getEnv("APP_HOST", "localhost:8080"),
		Port:     getEnv("PORT", "8080"),
		Timezone: getEnv("TIMEZONE", "America/Sao_Paulo"),
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", "images"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		SMB: SMBConfig{
			ServerName:  getEnv("SMB_SERVER_NAME", ""),
			ServerIP:    getEnv("SMB_SERVER_IP", ""),
			Username:    getEnv("SMB_USERNAME", ""),
			Password:    getEnv("SMB_PASSWORD", ""),
			ShareName:   getEnv("SMB_SHARE_NAME", ""),
			MachineName: getEnv("SMB_MACHINE_NAME", ""),
			RemotePath:  getEnv("SMB_REMOTE_PATH", ""),
		},
		Storage: StorageConfig{
			LocalRoot: getEnv("UPLOAD_LOCAL_ROOT", "public/uploads/documents"),
		},
		Auth: AuthConfig{
			JWTSecret:   getEnv("JWT_SECRET", ""),
			TokenTTLMin: getEnvInt("JWT_TTL_MIN", 60),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
