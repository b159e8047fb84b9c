// Package config loads application configuration from an optional YAML file
// with environment-variable overrides on top.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all EcoFinds configuration.
type Config struct {
	// HTTP listen address
	Addr string `yaml:"addr"`

	// Session token signing
	JWTSecret string `yaml:"jwt_secret"`

	// Gemini description generation
	Gemini GeminiConfig `yaml:"gemini"`

	// Optional audit event publishing
	Kafka KafkaConfig `yaml:"kafka"`

	// Optional purchase receipt mail
	SMTP SMTPConfig `yaml:"smtp"`

	// Simulated initial fetch delay for the seed stores
	LoadDelay time.Duration `yaml:"load_delay"`
}

// GeminiConfig configures the description generator.
type GeminiConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

// KafkaConfig configures the audit event publisher. Empty brokers disable it.
type KafkaConfig struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

// SMTPConfig configures receipt mail. An empty host disables it.
type SMTPConfig struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
	From string `yaml:"from"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Addr: ":8080",
		Gemini: GeminiConfig{
			Model: "gemini-2.5-flash",
		},
		Kafka: KafkaConfig{
			Topic: "ecofinds-events",
		},
		SMTP: SMTPConfig{
			Port: "587",
			From: "no-reply@ecofinds.example.com",
		},
	}
}

// Load builds the configuration: defaults, then the YAML file at path (if
// any), then environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Addr = getEnv("ADDR", c.Addr)
	c.JWTSecret = getEnv("JWT_SECRET", c.JWTSecret)
	c.Gemini.APIKey = getEnv("GEMINI_API_KEY", c.Gemini.APIKey)
	c.Gemini.Model = getEnv("GEMINI_MODEL", c.Gemini.Model)
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		c.Kafka.Brokers = strings.Split(brokers, ",")
	}
	c.Kafka.Topic = getEnv("KAFKA_TOPIC", c.Kafka.Topic)
	c.SMTP.Host = getEnv("SMTP_HOST", c.SMTP.Host)
	c.SMTP.Port = getEnv("SMTP_PORT", c.SMTP.Port)
	c.SMTP.From = getEnv("SMTP_FROM", c.SMTP.From)
	if v := os.Getenv("LOAD_DELAY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.LoadDelay = d
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
