package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const (
	ModeLive      = "live"
	ModeSynthetic = "synthetic"

	defaultConfigPath = "config/config.yaml"
)

type Config struct {
	App         AppConfig    `yaml:"app"`
	Server      ServerConfig `yaml:"server"`
	Log         LogConfig    `yaml:"log"`
	OpenAQ      OpenAQConfig `yaml:"openaq" envconfig:"OPENAQ"`
	OpenWeather SourceConfig `yaml:"openweather" envconfig:"OPENWEATHER"`
	Cities      CitiesConfig `yaml:"cities"`
	Sentry      SentryConfig `yaml:"sentry"`
}

type AppConfig struct {
	Name         string `yaml:"name" envconfig:"NAME" validate:"required"`
	Version      string `yaml:"version" envconfig:"VERSION" validate:"required"`
	Env          string `yaml:"env" envconfig:"ENV" validate:"required"`
	Mode         string `yaml:"mode" envconfig:"MODE" validate:"oneof=live synthetic"`
	ForecastDays int    `yaml:"forecast_days" envconfig:"FORECAST_DAYS" validate:"min=1,max=16"`
}

type ServerConfig struct {
	Port         string `yaml:"port" envconfig:"PORT" validate:"required"`
	ReadTimeout  int    `yaml:"read_timeout" envconfig:"READ_TIMEOUT" validate:"min=1"`
	WriteTimeout int    `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" validate:"min=1"`
	IdleTimeout  int    `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" validate:"min=1"`
}

type LogConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json console"`
}

// SourceConfig describes one upstream data provider. Timeout is in seconds.
type SourceConfig struct {
	BaseURL string `yaml:"base_url" envconfig:"BASE_URL" validate:"required,url"`
	APIKey  string `yaml:"api_key,omitempty" envconfig:"API_KEY"`
	Timeout int    `yaml:"timeout" envconfig:"TIMEOUT" validate:"min=1"`
}

type OpenAQConfig struct {
	SourceConfig `yaml:",inline"`
	// HistoryURL is the paginated measurements endpoint used by the ingestion helper.
	HistoryURL   string `yaml:"history_url" envconfig:"HISTORY_URL" validate:"required,url"`
	RadiusMeters int    `yaml:"radius_meters" envconfig:"RADIUS_METERS" validate:"min=1,max=100000"`
}

type Coordinate struct {
	Lat float64 `yaml:"lat" validate:"min=-90,max=90"`
	Lon float64 `yaml:"lon" validate:"min=-180,max=180"`
}

type CitiesConfig struct {
	Default string                `yaml:"default" envconfig:"DEFAULT" validate:"required"`
	Table   map[string]Coordinate `yaml:"table" ignored:"true" validate:"required,min=1,dive"`
}

type SentryConfig struct {
	DSN   string `yaml:"dsn" envconfig:"DSN"`
	Debug bool   `yaml:"debug" envconfig:"DEBUG"`
}

// ConfigProvider loads and validates a Config.
type ConfigProvider interface {
	Load() (*Config, error)
	Validate(config *Config) error
}

// FileConfigProvider layers a YAML file and the environment over Default().
type FileConfigProvider struct {
	path     string
	validate *validator.Validate
}

func NewFileConfigProvider(path string) *FileConfigProvider {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "" || name == "-" {
			return strings.ToLower(f.Name)
		}
		return name
	})

	return &FileConfigProvider{
		path:     path,
		validate: v,
	}
}

// Default returns the built-in configuration. The city table mirrors the cities the
// frontend offers.
func Default() *Config {
	return &Config{
		App: AppConfig{
			Name:         "envhealth-api",
			Version:      "1.0.0",
			Env:          "development",
			Mode:         ModeLive,
			ForecastDays: 5,
		},
		Server: ServerConfig{
			Port:         "8080",
			ReadTimeout:  10,
			WriteTimeout: 10,
			IdleTimeout:  120,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		OpenAQ: OpenAQConfig{
			SourceConfig: SourceConfig{
				BaseURL: "https://api.openaq.org/v3/measurements",
				Timeout: 10,
			},
			HistoryURL:   "https://api.openaq.org/v2/measurements",
			RadiusMeters: 50000,
		},
		OpenWeather: SourceConfig{
			BaseURL: "https://api.openweathermap.org/data/2.5/weather",
			Timeout: 10,
		},
		Cities: CitiesConfig{
			Default: "Delhi",
			Table: map[string]Coordinate{
				"Delhi":     {Lat: 28.7041, Lon: 77.1025},
				"Mumbai":    {Lat: 19.0760, Lon: 72.8777},
				"Jaipur":    {Lat: 26.9124, Lon: 75.7873},
				"Chennai":   {Lat: 13.0827, Lon: 80.2707},
				"Kolkata":   {Lat: 22.5726, Lon: 88.3639},
				"Bengaluru": {Lat: 12.9716, Lon: 77.5946},
			},
		},
	}
}

func (p *FileConfigProvider) Load() (*Config, error) {
	cnf := Default()

	if err := p.loadFromFile(cnf); err != nil {
		return nil, err
	}

	// Override with environment variables
	if err := envconfig.Process("", cnf); err != nil {
		return nil, fmt.Errorf("error environment variable parsing: %w", err)
	}

	return cnf, nil
}

// loadFromFile merges the YAML file into config. A missing file is not an error.
func (p *FileConfigProvider) loadFromFile(config *Config) error {
	yamlData, err := os.ReadFile(p.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", p.path, err)
	}

	// A table in the file replaces the built-in one instead of merging with it.
	var probe struct {
		Cities struct {
			Table map[string]Coordinate `yaml:"table"`
		} `yaml:"cities"`
	}
	if err := yaml.Unmarshal(yamlData, &probe); err != nil {
		return fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if len(probe.Cities.Table) > 0 {
		config.Cities.Table = nil
	}

	if err := yaml.Unmarshal(yamlData, config); err != nil {
		return fmt.Errorf("failed to parse YAML config: %w", err)
	}

	return nil
}

func (p *FileConfigProvider) Validate(config *Config) error {
	if err := p.validate.Struct(config); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, describeFieldError(fe))
			}
			return errors.New(strings.Join(msgs, "; "))
		}
		return err
	}

	if _, ok := config.Cities.Table[config.Cities.Default]; !ok {
		return fmt.Errorf("cities.default %q is not in cities.table", config.Cities.Default)
	}

	return nil
}

func describeFieldError(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Config.")
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "url":
		return field + " must be a valid URL"
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}

// NewConfig loads .env, then the file named by CONFIG_PATH (config/config.yaml by
// default), then the environment.
func NewConfig() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = defaultConfigPath
	}

	return NewConfigWithProvider(NewFileConfigProvider(path))
}

func NewConfigWithProvider(provider ConfigProvider) (*Config, error) {
	cnf, err := provider.Load()
	if err != nil {
		return nil, err
	}

	if err := provider.Validate(cnf); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cnf, nil
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// IsLive reports whether live upstream sources are enabled.
func (c *Config) IsLive() bool {
	return c.App.Mode == ModeLive
}

func (s SourceConfig) RequestTimeout() time.Duration {
	return time.Duration(s.Timeout) * time.Second
}
