package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	AppEnv string      `yaml:"app_env"`
	HTTP   HTTPConfig  `yaml:"http"`
	Data   DataConfig  `yaml:"data"`
	Redis  RedisConfig `yaml:"redis"`
	Kafka  KafkaConfig `yaml:"kafka"`
	Cache  CacheConfig `yaml:"cache"`
}

type HTTPConfig struct {
	Address    string `yaml:"address"`
	SwaggerDir string `yaml:"swagger_dir"`
}

type DataConfig struct {
	Dir string `yaml:"dir"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type KafkaConfig struct {
	Brokers            []string `yaml:"brokers"`
	BookingTopic       string   `yaml:"booking_topic"`
	NotificationsTopic string   `yaml:"notifications_topic"`
	GroupID            string   `yaml:"group_id"`
}

type CacheConfig struct {
	FlightsTTLSeconds int `yaml:"flights_ttl_seconds"`
	QuotesTTLSeconds  int `yaml:"quotes_ttl_seconds"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.HTTP.Address == "" {
		cfg.HTTP.Address = ":8080"
	}
	if cfg.Data.Dir == "" {
		cfg.Data.Dir = "./data"
	}
	if cfg.Cache.FlightsTTLSeconds == 0 {
		cfg.Cache.FlightsTTLSeconds = 60
	}
	if cfg.Cache.QuotesTTLSeconds == 0 {
		cfg.Cache.QuotesTTLSeconds = 60
	}
	return &cfg, nil
}
