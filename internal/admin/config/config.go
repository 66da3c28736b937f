package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	MongoURI                 string
	Port                     string
	DBName                   string
	UsersCollection          string
	PermissionsCollection    string
	EstablishmentsCollection string
	AuthSecret               string
	DirectoryCacheTTL        time.Duration
	StoreTimeout             time.Duration
	ReadTimeout              time.Duration
	WriteTimeout             time.Duration
}

func LoadConfig() (*Config, error) {
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	cfg := &Config{
		MongoURI:                 mongoURI,
		Port:                     port,
		DBName:                   getEnv("DB_NAME", "secadmin_db"),
		UsersCollection:          getEnv("COLLECTION_USERS", "users"),
		PermissionsCollection:    getEnv("COLLECTION_PERMISSIONS", "permissions"),
		EstablishmentsCollection: getEnv("COLLECTION_ESTABLISHMENTS", "establishments"),
		AuthSecret:               os.Getenv("AUTH_JWT_SECRET"),
		DirectoryCacheTTL:        getEnvDuration("DIRECTORY_CACHE_TTL", 30*time.Second),
		StoreTimeout:             getEnvDuration("STORE_TIMEOUT", 5*time.Second),
		ReadTimeout:              getEnvDuration("SERVER_READ_TIMEOUT", 10*time.Second),
		WriteTimeout:             getEnvDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.MongoURI == "" {
		return fmt.Errorf("MONGO_URI is required")
	}
	if c.AuthSecret == "" {
		return fmt.Errorf("AUTH_JWT_SECRET is required")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	valStr := os.Getenv(key)
	if valStr == "" {
		return fallback
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		// Try parsing as duration string, e.g. "10s"
		d, err := time.ParseDuration(valStr)
		if err == nil {
			return d
		}
		return fallback
	}
	return time.Duration(val) * time.Second
}
