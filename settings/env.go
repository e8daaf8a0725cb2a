package settings

import (
	"fmt"
	"os"
	"strconv"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const Prefix = "BITHEROES_HG_ROUNDS"

func LoadEnvFiles() {
	environment := os.Getenv(EnvKey("ENV"))
	if environment == "" {
		environment = "development"
	}

	godotenv.Load(".env." + environment + ".local")
	godotenv.Load(".env." + environment)
	godotenv.Load()
}

// Config is read from the environment after LoadEnvFiles.
type Config struct {
	AuthToken          string `env:"AUTH_TOKEN"`
	LogLevel           string `env:"LOG_LEVEL" envDefault:"info"`
	MetricsAddr        string `env:"METRICS_ADDR"`
	ModesFile          string `env:"MODES_FILE"`
	DefaultLabelPrefix string `env:"LABEL_PREFIX" envDefault:"Round "`
	AutoAdvance        bool   `env:"AUTO_ADVANCE" envDefault:"false"`
	DoubleStruckLabel  bool   `env:"DOUBLE_STRUCK_LABEL" envDefault:"false"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: Prefix + "_"}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	return cfg, nil
}

func GetenvStr(key string) string {
	return os.Getenv(EnvKey(key))
}

func GetenvBool(key string) bool {
	s := GetenvStr(key)
	if s == "" {
		return false
	}

	v, err := strconv.ParseBool(s)
	if err != nil {
		return false
	}

	return v
}

func EnvKey(str string) string {
	return fmt.Sprintf("%s_%s", Prefix, str)
}
