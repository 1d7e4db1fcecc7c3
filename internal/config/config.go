package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-yaml/yaml"
	"github.com/joho/godotenv"
)

type Config struct {
	Server    Server    `yaml:"server"`
	Dashboard Dashboard `yaml:"dashboard"`
}

type Server struct {
	Listen             string   `yaml:"listen"`
	PostgresDsn        string   `yaml:"postgresDsn"`
	RedisAddr          string   `yaml:"redisAddr"`
	RedisPassword      string   `yaml:"redisPassword"`
	RedisDB            int      `yaml:"redisDB"`
	MemcachedAddrs     []string `yaml:"memcachedAddrs"`
	EnableTrace        bool     `yaml:"enableTrace"`
	TraceEndpoint      string   `yaml:"traceEndpoint"`
	EnableMetrics      bool     `yaml:"enableMetrics"`
	TransactionalLinks bool     `yaml:"transactionalLinks"`
	RequireUUIDOwner   bool     `yaml:"requireUUIDOwner"`
}

type Dashboard struct {
	FollowUpDays  int           `yaml:"followUpDays"`
	RecentLimit   int           `yaml:"recentLimit"`
	FollowUpLimit int           `yaml:"followUpLimit"`
	CacheTTL      time.Duration `yaml:"cacheTTL"`
}

// Load reads the yaml file at path, applies environment overrides (a .env
// file is honoured when present) and fills defaults.
func Load(path string) (Config, error) {

	var config Config

	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			return Config{}, err
		}
		defer file.Close()

		err = yaml.NewDecoder(file).Decode(&config)
		if err != nil {
			return Config{}, err
		}
	}

	_ = godotenv.Load()
	if err := config.applyEnv(); err != nil {
		return Config{}, err
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return Config{}, err
	}

	return config, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("JOBTRACK_LISTEN"); v != "" {
		c.Server.Listen = v
	}
	if v := os.Getenv("JOBTRACK_POSTGRES_DSN"); v != "" {
		c.Server.PostgresDsn = v
	}
	if v := os.Getenv("JOBTRACK_REDIS_ADDR"); v != "" {
		c.Server.RedisAddr = v
	}
	if v := os.Getenv("JOBTRACK_MEMCACHED_ADDR"); v != "" {
		c.Server.MemcachedAddrs = strings.Split(v, ",")
	}
	if v := os.Getenv("JOBTRACK_TRANSACTIONAL_LINKS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("JOBTRACK_TRANSACTIONAL_LINKS: %w", err)
		}
		c.Server.TransactionalLinks = b
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Server.Listen == "" {
		c.Server.Listen = ":8000"
	}
	if c.Dashboard.FollowUpDays <= 0 {
		c.Dashboard.FollowUpDays = 14
	}
	if c.Dashboard.RecentLimit <= 0 {
		c.Dashboard.RecentLimit = 5
	}
	if c.Dashboard.FollowUpLimit <= 0 {
		c.Dashboard.FollowUpLimit = 5
	}
	if c.Dashboard.CacheTTL <= 0 {
		c.Dashboard.CacheTTL = time.Minute
	}
}

func (c Config) Validate() error {
	if c.Server.PostgresDsn == "" {
		return fmt.Errorf("server.postgresDsn is required")
	}
	if c.Server.EnableTrace && c.Server.TraceEndpoint == "" {
		return fmt.Errorf("server.traceEndpoint is required when tracing is enabled")
	}
	return nil
}

func (d Dashboard) FollowUpAfter() time.Duration {
	return time.Duration(d.FollowUpDays) * 24 * time.Hour
}
