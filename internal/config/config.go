package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	OpenAI   OpenAIConfig   `mapstructure:"openai"`
	Services ServicesConfig `mapstructure:"services"`
	Output   OutputConfig   `mapstructure:"output"`
	Logger   LoggerConfig   `mapstructure:"logger"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// OpenAIConfig holds the extraction model configuration.
type OpenAIConfig struct {
	APIKey      string        `mapstructure:"api_key"`
	Model       string        `mapstructure:"model"`
	Temperature float32       `mapstructure:"temperature"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// ServicesConfig holds the endpoints the client session talks to.
type ServicesConfig struct {
	ParseURL  string        `mapstructure:"parse_url"`
	RenderURL string        `mapstructure:"render_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// OutputConfig holds the download target for exported documents.
type OutputConfig struct {
	Dir string `mapstructure:"dir"`
}

// LoggerConfig holds logger configuration.
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"`
	Format     string `mapstructure:"format"`
}

// Load loads configuration from an optional YAML file and the environment.
// A missing config file is not an error; defaults and env vars apply.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	bindEnvVars(v)

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			v.SetConfigFile(configPath)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 120*time.Second)

	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("openai.temperature", 0.0)
	v.SetDefault("openai.timeout", 60*time.Second)

	v.SetDefault("services.parse_url", "http://localhost:5000/api/parse")
	v.SetDefault("services.render_url", "http://localhost:5000/api/generate-pdf")
	v.SetDefault("services.timeout", 60*time.Second)

	v.SetDefault("output.dir", "downloads")

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.output_path", "stdout")
	v.SetDefault("logger.format", "json")
}

func bindEnvVars(v *viper.Viper) {
	v.BindEnv("openai.api_key", "OPENAI_API_KEY")
	v.BindEnv("server.port", "PORT")
	v.BindEnv("services.parse_url", "FACTURIO_PARSE_URL")
	v.BindEnv("services.render_url", "FACTURIO_RENDER_URL")
	v.BindEnv("output.dir", "FACTURIO_OUTPUT_DIR")
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d is out of range", c.Server.Port)
	}
	if c.Services.ParseURL == "" {
		return fmt.Errorf("services.parse_url is required")
	}
	if c.Services.RenderURL == "" {
		return fmt.Errorf("services.render_url is required")
	}
	if c.Output.Dir == "" {
		return fmt.Errorf("output.dir is required")
	}
	return nil
}
