package config

import (
	"os"
	"regexp"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server struct {
		Port         int           `yaml:"port" default:"8080"`
		Host         string        `yaml:"host" default:"0.0.0.0"`
		ReadTimeout  time.Duration `yaml:"read_timeout" default:"30s"`
		WriteTimeout time.Duration `yaml:"write_timeout" default:"30s"`
		IdleTimeout  time.Duration `yaml:"idle_timeout" default:"60s"`
	} `yaml:"server"`

	Pipeline struct {
		ValidationTimeout        time.Duration `yaml:"validation_timeout" default:"2s"`
		DataBindingTimeout       time.Duration `yaml:"data_binding_timeout" default:"5s"`
		ContentProcessingTimeout time.Duration `yaml:"content_processing_timeout" default:"3s"`
		StylingTimeout           time.Duration `yaml:"styling_timeout" default:"4s"`
		OptimizationTimeout      time.Duration `yaml:"optimization_timeout" default:"2s"`
		OutputTimeout            time.Duration `yaml:"output_timeout" default:"3s"`
	} `yaml:"pipeline"`

	Engine struct {
		HistoryCapacity int           `yaml:"history_capacity" default:"50"`
		SessionTTL      time.Duration `yaml:"session_ttl" default:"2h"`
		CleanupInterval time.Duration `yaml:"cleanup_interval" default:"10m"`
	} `yaml:"engine"`

	Retry struct {
		MaxRetries int    `yaml:"max_retries" default:"3"`
		Store      string `yaml:"store" default:"memory"` // memory or redis
	} `yaml:"retry"`

	Workers struct {
		PoolSize  int `yaml:"pool_size" default:"10"`
		QueueSize int `yaml:"queue_size" default:"100"`
	} `yaml:"workers"`

	RateLimit struct {
		Enabled           bool    `yaml:"enabled" default:"true"`
		RequestsPerSecond float64 `yaml:"requests_per_second" default:"10"`
		Burst             int     `yaml:"burst" default:"20"`
	} `yaml:"rate_limit"`

	Logging struct {
		Level  string `yaml:"level" default:"info"`
		Format string `yaml:"format" default:"json"`
		Output string `yaml:"output" default:"stdout"`

		Adapters []struct {
			Name    string                 `yaml:"name"`
			Type    string                 `yaml:"type"`
			Enabled bool                   `yaml:"enabled"`
			Options map[string]interface{} `yaml:"options"`
		} `yaml:"adapters"`
	} `yaml:"logging"`

	Redis struct {
		URL      string        `yaml:"url" default:"redis://localhost:6379"`
		Password string        `yaml:"password"`
		DB       int           `yaml:"db" default:"0"`
		Timeout  time.Duration `yaml:"timeout" default:"5s"`
	} `yaml:"redis"`

	Metrics struct {
		Enabled   bool   `yaml:"enabled" default:"true"`
		Namespace string `yaml:"namespace" default:"resumeforge"`
	} `yaml:"metrics"`
}

// expandEnvVars expands environment variables in a string using ${VAR} or $VAR syntax
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)
	s = re.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match
	})

	re2 := regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
	s = re2.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[1:]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match
	})

	return s
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	// Load .env file if it exists (ignore errors if file doesn't exist)
	_ = godotenv.Load()

	config := &Config{}

	// Set defaults
	config.Server.Port = 8080
	config.Server.Host = "0.0.0.0"
	config.Server.ReadTimeout = 30 * time.Second
	config.Server.WriteTimeout = 30 * time.Second
	config.Server.IdleTimeout = 60 * time.Second

	config.Pipeline.ValidationTimeout = 2 * time.Second
	config.Pipeline.DataBindingTimeout = 5 * time.Second
	config.Pipeline.ContentProcessingTimeout = 3 * time.Second
	config.Pipeline.StylingTimeout = 4 * time.Second
	config.Pipeline.OptimizationTimeout = 2 * time.Second
	config.Pipeline.OutputTimeout = 3 * time.Second

	config.Engine.HistoryCapacity = 50
	config.Engine.SessionTTL = 2 * time.Hour
	config.Engine.CleanupInterval = 10 * time.Minute

	config.Retry.MaxRetries = 3
	config.Retry.Store = "memory"

	config.Workers.PoolSize = 10
	config.Workers.QueueSize = 100

	config.RateLimit.Enabled = true
	config.RateLimit.RequestsPerSecond = 10
	config.RateLimit.Burst = 20

	config.Logging.Level = "info"
	config.Logging.Format = "json"
	config.Logging.Output = "stdout"

	config.Redis.URL = "redis://localhost:6379"
	config.Redis.DB = 0
	config.Redis.Timeout = 5 * time.Second

	config.Metrics.Enabled = true
	config.Metrics.Namespace = "resumeforge"

	// Load from YAML file if it exists
	if configPath != "" {
		if data, err := os.ReadFile(configPath); err == nil {
			// Expand environment variables in the YAML content
			yamlContent := expandEnvVars(string(data))

			if err := yaml.Unmarshal([]byte(yamlContent), config); err != nil {
				return nil, err
			}
		}
	}

	// Override with environment variables
	config.loadFromEnv()

	return config, nil
}

// loadFromEnv loads configuration from environment variables
func (c *Config) loadFromEnv() {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}

	if host := os.Getenv("HOST"); host != "" {
		c.Server.Host = host
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}

	if logFormat := os.Getenv("LOG_FORMAT"); logFormat != "" {
		c.Logging.Format = logFormat
	}

	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		c.Redis.URL = redisURL
	}

	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		c.Redis.Password = redisPassword
	}

	if redisDB := os.Getenv("REDIS_DB"); redisDB != "" {
		if db, err := strconv.Atoi(redisDB); err == nil {
			c.Redis.DB = db
		}
	}

	if redisTimeout := os.Getenv("REDIS_TIMEOUT"); redisTimeout != "" {
		if timeout, err := time.ParseDuration(redisTimeout); err == nil {
			c.Redis.Timeout = timeout
		}
	}

	if maxRetries := os.Getenv("RETRY_MAX_RETRIES"); maxRetries != "" {
		if retries, err := strconv.Atoi(maxRetries); err == nil {
			c.Retry.MaxRetries = retries
		}
	}

	if retryStore := os.Getenv("RETRY_STORE"); retryStore != "" {
		c.Retry.Store = retryStore
	}

	if sessionTTL := os.Getenv("SESSION_TTL"); sessionTTL != "" {
		if ttl, err := time.ParseDuration(sessionTTL); err == nil {
			c.Engine.SessionTTL = ttl
		}
	}

	if historyCap := os.Getenv("ENGINE_HISTORY_CAPACITY"); historyCap != "" {
		if n, err := strconv.Atoi(historyCap); err == nil && n > 0 {
			c.Engine.HistoryCapacity = n
		}
	}

	if poolSize := os.Getenv("WORKER_POOL_SIZE"); poolSize != "" {
		if size, err := strconv.Atoi(poolSize); err == nil {
			c.Workers.PoolSize = size
		}
	}

	if queueSize := os.Getenv("WORKER_QUEUE_SIZE"); queueSize != "" {
		if size, err := strconv.Atoi(queueSize); err == nil {
			c.Workers.QueueSize = size
		}
	}

	if rateLimitEnabled := os.Getenv("RATE_LIMIT_ENABLED"); rateLimitEnabled != "" {
		c.RateLimit.Enabled = rateLimitEnabled == "true" || rateLimitEnabled == "1"
	}

	if rps := os.Getenv("RATE_LIMIT_RPS"); rps != "" {
		if v, err := strconv.ParseFloat(rps, 64); err == nil {
			c.RateLimit.RequestsPerSecond = v
		}
	}

	if burst := os.Getenv("RATE_LIMIT_BURST"); burst != "" {
		if v, err := strconv.Atoi(burst); err == nil {
			c.RateLimit.Burst = v
		}
	}

	if metricsEnabled := os.Getenv("METRICS_ENABLED"); metricsEnabled != "" {
		c.Metrics.Enabled = metricsEnabled == "true" || metricsEnabled == "1"
	}
}

// StageTimeout returns the configured timeout for a named pipeline stage.
// A zero duration is returned for unknown stage names.
func (c *Config) StageTimeout(stage string) time.Duration {
	switch stage {
	case "validation":
		return c.Pipeline.ValidationTimeout
	case "dataBinding":
		return c.Pipeline.DataBindingTimeout
	case "contentProcessing":
		return c.Pipeline.ContentProcessingTimeout
	case "styling":
		return c.Pipeline.StylingTimeout
	case "optimization":
		return c.Pipeline.OptimizationTimeout
	case "output":
		return c.Pipeline.OutputTimeout
	default:
		return 0
	}
}
