package link

import (
	"time"

	"go.uber.org/zap"
)

// Config configures a Supervisor. Use NewConfigBuilder to create one.
type Config struct {
	dialer        Dialer
	retryInterval time.Duration
	maxAttempts   int
	logger        *zap.Logger
	onReconnect   func()
}

func (c *Config) validate() error {
	if c.dialer == nil {
		return ErrNoDialer
	}
	return nil
}

func (c *Config) setDefaults() {
	if c.retryInterval == 0 {
		c.retryInterval = time.Second
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	if c.onReconnect == nil {
		c.onReconnect = func() {}
	}
}

// ConfigBuilder assembles a Config.
type ConfigBuilder struct {
	config Config
}

func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{}
}

// WithDialer sets the Dialer used for every connection attempt.
func (b *ConfigBuilder) WithDialer(d Dialer) *ConfigBuilder {
	b.config.dialer = d
	return b
}

// WithRetryInterval sets the wait between failed dial attempts.
func (b *ConfigBuilder) WithRetryInterval(d time.Duration) *ConfigBuilder {
	b.config.retryInterval = d
	return b
}

// WithMaxAttempts limits the dial attempts of a single Connect. Zero keeps
// dialing until the context is done.
func (b *ConfigBuilder) WithMaxAttempts(n int) *ConfigBuilder {
	b.config.maxAttempts = n
	return b
}

func (b *ConfigBuilder) WithLogger(l *zap.Logger) *ConfigBuilder {
	b.config.logger = l
	return b
}

// WithOnReconnect registers a hook run after every successful reconnect.
func (b *ConfigBuilder) WithOnReconnect(fn func()) *ConfigBuilder {
	b.config.onReconnect = fn
	return b
}

func (b *ConfigBuilder) Build() (Config, error) {
	c := b.config
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	c.setDefaults()
	return c, nil
}
