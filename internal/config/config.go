package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel   string     `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort   string     `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort string     `yaml:"socket-port" env:"SOCKET_PORT" env-default:"9091"`
	Redis      Redis      `yaml:"redis"`
	Dictionary Dictionary `yaml:"dictionary"`
	Lookup     Lookup     `yaml:"lookup"`
	Matcher    Matcher    `yaml:"matcher"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

type Dictionary struct {
	// Path to a brands JSON file; empty means the embedded list.
	Path string `yaml:"path" env:"DICTIONARY_PATH" env-default:""`
}

type Lookup struct {
	Enabled        bool   `yaml:"enabled" env:"LOOKUP_ENABLED" env-default:"true"`
	BaseURL        string `yaml:"base-url" env:"LOOKUP_BASE_URL" env-default:"https://en.wikipedia.org/w/api.php"`
	TimeoutSeconds int    `yaml:"timeout-seconds" env:"LOOKUP_TIMEOUT_SECONDS" env-default:"5"`
	Limit          int    `yaml:"limit" env:"LOOKUP_LIMIT" env-default:"5"`
}

type Matcher struct {
	MaxDistance int `yaml:"max-distance" env:"MATCHER_MAX_DISTANCE" env-default:"2"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

func (that *Lookup) Timeout() time.Duration {
	return time.Duration(that.TimeoutSeconds) * time.Second
}
