package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"aqusens.io/nora/asrslink/tide"
)

// EnvPrefix prefixes every environment variable read by WithEnv.
const EnvPrefix = "ASRS_"

// Config holds the application configuration
type Config struct {
	// SerialPort is the sampler's serial port. Empty autodetects it.
	SerialPort string `yaml:"serial_port" env:"SERIAL_PORT"`
	// BaudRate is the serial line speed (e.g. 115200)
	BaudRate int `yaml:"baud_rate" env:"BAUD_RATE"`
	// SerialSettle is the pause after opening the port while the board resets
	SerialSettle time.Duration `yaml:"serial_settle" env:"SERIAL_SETTLE"`
	// ReconnectInterval separates failed dial attempts
	ReconnectInterval time.Duration `yaml:"reconnect_interval" env:"RECONNECT_INTERVAL"`

	// CommandFile and ResponseFile are shared with the analyzer process
	CommandFile  string `yaml:"command_file" env:"COMMAND_FILE"`
	ResponseFile string `yaml:"response_file" env:"RESPONSE_FILE"`
	// DataDir is where session directories are created
	DataDir string `yaml:"data_dir" env:"DATA_DIR"`
	// TemperatureCSV is the append-only temperature log
	TemperatureCSV string `yaml:"temperature_csv" env:"TEMPERATURE_CSV"`

	AckTimeout      time.Duration `yaml:"ack_timeout" env:"ACK_TIMEOUT"`
	AckPollInterval time.Duration `yaml:"ack_poll_interval" env:"ACK_POLL_INTERVAL"`
	AckAttempts     int           `yaml:"ack_attempts" env:"ACK_ATTEMPTS"`

	SampleCadence           time.Duration `yaml:"sample_cadence" env:"SAMPLE_CADENCE"`
	PumpSettle              time.Duration `yaml:"pump_settle" env:"PUMP_SETTLE"`
	TemperatureReplyTimeout time.Duration `yaml:"temperature_reply_timeout" env:"TEMPERATURE_REPLY_TIMEOUT"`
	// DurationTimeout is the window for the duration line after a sample request
	DurationTimeout      time.Duration `yaml:"duration_timeout" env:"DURATION_TIMEOUT"`
	OperatorReplyTimeout time.Duration `yaml:"operator_reply_timeout" env:"OPERATOR_REPLY_TIMEOUT"`

	TideURL string `yaml:"tide_url" env:"TIDE_URL"`
	// Timezone is the zone the epoch reply is shifted into
	Timezone string `yaml:"timezone" env:"TIMEZONE"`

	// SMTPHost enables mailed alerts. Empty logs them instead.
	SMTPHost       string   `yaml:"smtp_host" env:"SMTP_HOST"`
	SMTPPort       int      `yaml:"smtp_port" env:"SMTP_PORT"`
	SMTPUsername   string   `yaml:"smtp_username" env:"SMTP_USERNAME"`
	SMTPPassword   string   `yaml:"smtp_password" env:"SMTP_PASSWORD"`
	SMTPFrom       string   `yaml:"smtp_from" env:"SMTP_FROM"`
	SMTPRecipients []string `yaml:"smtp_recipients" env:"SMTP_RECIPIENTS" envSeparator:","`

	// LogLevel sets the logging level (e.g. "debug", "info", "warn", "error")
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`
	// LogFile adds a JSON log file next to the console output
	LogFile string `yaml:"log_file" env:"LOG_FILE"`
	// MetricsAddress is the listen address of the status server. Empty disables it.
	MetricsAddress string `yaml:"metrics_address" env:"METRICS_ADDRESS"`
	// Console enables the interactive operator shell
	Console bool `yaml:"console" env:"CONSOLE"`
}

// ConfigOption is a function that modifies a Config
type ConfigOption func(*Config) error

// LoadConfig creates a new config by applying the given options in order
func LoadConfig(opts ...ConfigOption) (*Config, error) {
	config := &Config{}

	for _, opt := range opts {
		if err := opt(config); err != nil {
			return nil, err
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// WithDefaults applies default configuration values
func WithDefaults() ConfigOption {
	return func(c *Config) error {
		c.BaudRate = 115200
		c.SerialSettle = 2 * time.Second
		c.ReconnectInterval = time.Second
		c.CommandFile = "command_file.txt"
		c.ResponseFile = "response_file.txt"
		c.DataDir = "D:/Data/Raw"
		c.TemperatureCSV = "SampleTemps.csv"
		c.AckTimeout = 10 * time.Second
		c.AckPollInterval = 100 * time.Millisecond
		c.AckAttempts = 1
		c.SampleCadence = 15 * time.Second
		c.PumpSettle = time.Second
		c.TemperatureReplyTimeout = 5 * time.Second
		c.DurationTimeout = 2 * time.Second
		c.OperatorReplyTimeout = time.Second
		c.TideURL = tide.DefaultURL
		c.Timezone = "America/Los_Angeles"
		c.SMTPPort = 587
		c.LogLevel = "info"
		c.Console = true
		return nil
	}
}

// WithFile overlays the YAML file at path. A missing file is skipped.
func WithFile(path string) ConfigOption {
	return func(c *Config) error {
		if path == "" {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil
			}
			return fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parse config file %s: %w", path, err)
		}
		return nil
	}
}

// WithEnv loads configuration from ASRS_ prefixed environment variables
func WithEnv() ConfigOption {
	return func(c *Config) error {
		if err := env.ParseWithOptions(c, env.Options{Prefix: EnvPrefix}); err != nil {
			return fmt.Errorf("parse environment: %w", err)
		}
		return nil
	}
}

// WithFlags loads configuration from command-line flags
func WithFlags(fSet *flag.FlagSet) ConfigOption {
	return func(c *Config) error {
		var err error
		fSet.Visit(func(f *flag.Flag) {
			value := f.Value.String()
			switch f.Name {
			case "serial-port":
				c.SerialPort = value
			case "baud-rate":
				b, perr := strconv.Atoi(value)
				if perr != nil {
					err = fmt.Errorf("baud-rate: %w", perr)
					return
				}
				c.BaudRate = b
			case "data-dir":
				c.DataDir = value
			case "command-file":
				c.CommandFile = value
			case "response-file":
				c.ResponseFile = value
			case "temperature-csv":
				c.TemperatureCSV = value
			case "log-level":
				c.LogLevel = value
			case "log-file":
				c.LogFile = value
			case "metrics-address":
				c.MetricsAddress = value
			case "no-console":
				c.Console = value != "true"
			}
		})
		return err
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case c.BaudRate <= 0:
		return fmt.Errorf("invalid baud rate %d", c.BaudRate)
	case c.CommandFile == "" || c.ResponseFile == "":
		return errors.New("command and response files are required")
	case c.AckTimeout <= 0 || c.AckPollInterval <= 0:
		return errors.New("ack timeout and poll interval must be positive")
	case c.AckAttempts < 1:
		return fmt.Errorf("invalid ack attempts %d", c.AckAttempts)
	case c.SampleCadence <= 0:
		return errors.New("sample cadence must be positive")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	return nil
}
