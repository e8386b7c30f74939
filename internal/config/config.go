// Package config loads dashboard settings from the environment.
package config

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/LeonardoBeccarini/symbiont/internal/cache"
	"github.com/LeonardoBeccarini/symbiont/pkg/rabbitmq"
)

type Config struct {
	HTTPAddr      string        `env:"SYMBIONT_HTTP_ADDR" envDefault:":5009"`
	DBPath        string        `env:"SYMBIONT_DB_PATH" envDefault:"symbiont.db"`
	InitialYield  float64       `env:"SYMBIONT_INITIAL_YIELD" envDefault:"12"`
	RestoreCached bool          `env:"SYMBIONT_RESTORE_CACHED" envDefault:"false"`
	ToastDuration time.Duration `env:"SYMBIONT_TOAST_DURATION" envDefault:"3s"`
	WriteTimeout  time.Duration `env:"SYMBIONT_WRITE_TIMEOUT" envDefault:"2s"`
	Timezone      string        `env:"SYMBIONT_TIMEZONE" envDefault:"Africa/Lagos"`
	Verbose       bool          `env:"SYMBIONT_VERBOSE" envDefault:"false"`

	BreakerFailures int           `env:"SYMBIONT_BREAKER_FAILURES" envDefault:"3"`
	BreakerOpenFor  time.Duration `env:"SYMBIONT_BREAKER_OPEN" envDefault:"30s"`

	Influx InfluxEnv
	MQTT   MQTTEnv
}

// InfluxEnv enables the optional snapshot mirror when URL and token are set.
type InfluxEnv struct {
	URL         string `env:"INFLUX_URL"`
	Token       string `env:"INFLUX_TOKEN"`
	Org         string `env:"INFLUX_ORG" envDefault:"symbiont"`
	Bucket      string `env:"INFLUX_BUCKET" envDefault:"farm"`
	Measurement string `env:"INFLUX_MEASUREMENT" envDefault:"farm_state"`
	BatchSize   uint   `env:"INFLUX_BATCH_SIZE" envDefault:"10"`
	FlushMs     uint   `env:"INFLUX_FLUSH_INTERVAL_MS" envDefault:"1000"`
}

// MQTTEnv enables toast publishing when a host is set.
type MQTTEnv struct {
	Host          string `env:"MQTT_HOST"`
	Port          int    `env:"MQTT_PORT" envDefault:"1883"`
	User          string `env:"MQTT_USER"`
	Password      string `env:"MQTT_PASSWORD"`
	ClientID      string `env:"MQTT_CLIENT_ID" envDefault:"symbiont-dashboard"`
	TopicTemplate string `env:"MQTT_NOTIFY_TOPIC" envDefault:"symbiont/notify/{kind}"`

	QoS               uint          `env:"MQTT_QOS" envDefault:"0"`
	ConnectRetries    int           `env:"MQTT_CONNECT_RETRIES" envDefault:"5"`
	ConnectMaxElapsed time.Duration `env:"MQTT_CONNECT_MAX_ELAPSED" envDefault:"10s"`
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the dashboard cannot start with.
func (c Config) Validate() error {
	if math.IsNaN(c.InitialYield) || c.InitialYield < 0 || c.InitialYield > 60 {
		return fmt.Errorf("SYMBIONT_INITIAL_YIELD must be within [0, 60], got %v", c.InitialYield)
	}
	if c.ToastDuration <= 0 {
		return fmt.Errorf("SYMBIONT_TOAST_DURATION must be positive, got %s", c.ToastDuration)
	}
	if c.WriteTimeout <= 0 {
		return fmt.Errorf("SYMBIONT_WRITE_TIMEOUT must be positive, got %s", c.WriteTimeout)
	}
	if c.MQTT.Port <= 0 || c.MQTT.Port > 65535 {
		return fmt.Errorf("MQTT_PORT out of range: %d", c.MQTT.Port)
	}
	if c.MQTT.QoS > 2 {
		return fmt.Errorf("MQTT_QOS must be 0, 1 or 2, got %d", c.MQTT.QoS)
	}
	return nil
}

func (c Config) InfluxConfig() cache.InfluxConfig {
	return cache.InfluxConfig{
		URL:         c.Influx.URL,
		Token:       c.Influx.Token,
		Org:         c.Influx.Org,
		Bucket:      c.Influx.Bucket,
		Measurement: c.Influx.Measurement,
		BatchSize:   c.Influx.BatchSize,
		FlushMs:     c.Influx.FlushMs,
	}
}

func (c Config) BreakerSettings() cache.BreakerSettings {
	return cache.BreakerSettings{Failures: c.BreakerFailures, OpenFor: c.BreakerOpenFor}
}

func (c Config) RabbitMQConfig() *rabbitmq.RabbitMQConfig {
	return &rabbitmq.RabbitMQConfig{
		Host:     c.MQTT.Host,
		Port:     c.MQTT.Port,
		User:     c.MQTT.User,
		Password: c.MQTT.Password,
		ClientID: c.MQTT.ClientID,
		QoS:      byte(c.MQTT.QoS),

		MaxRetries: c.MQTT.ConnectRetries,
		MaxElapsed: c.MQTT.ConnectMaxElapsed,
	}
}

// CachePath is the sqlite path, or "" when the local cache is switched off
// with SYMBIONT_DB_PATH=none.
func (c Config) CachePath() string {
	if strings.EqualFold(strings.TrimSpace(c.DBPath), "none") {
		return ""
	}
	return c.DBPath
}

// Location resolves Timezone, falling back to UTC when tzdata is missing.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
