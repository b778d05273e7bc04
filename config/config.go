package config

import (
	"os"

	"github.com/qs-lzh/movie-catalog/internal/util"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env string

	Addr         string
	DatabaseType string
	DatabaseDSN  string
	CacheURL     string
	MQURL        string

	// MediaRoot is the directory uploaded files live in, MediaURL the
	// path prefix they are served under.
	MediaRoot     string
	MediaURL      string
	SeedImagePath string
}

func LoadConfig() (*Config, error) {
	if err := util.LoadEnv(); err != nil {
		return nil, err
	}
	return &Config{
		Env:           getEnv("APP_ENV", EnvDevelopment),
		Addr:          getEnv("ADDR", ":4000"),
		DatabaseType:  getEnv("DATABASE_TYPE", "sqlite"),
		DatabaseDSN:   getEnv("DATABASE_DSN", "movies.db"),
		CacheURL:      os.Getenv("CACHE_URL"),
		MQURL:         os.Getenv("RABBIT_MQ_URL"),
		MediaRoot:     getEnv("MEDIA_ROOT", "media"),
		MediaURL:      getEnv("MEDIA_URL", "/media"),
		SeedImagePath: getEnv("SEED_IMAGE_PATH", "img_for_seed/avatar.jpg"),
	}, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
