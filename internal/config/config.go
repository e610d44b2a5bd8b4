package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type NetworkConfig struct {
	Env           string `yaml:"env" env:"ENV" env-default:"local"`
	NetworkDB     `yaml:"network_db"`
	LogConfig     `yaml:"log_config"`
	HTTPServer    `yaml:"http_server"`
	MetricsServer `yaml:"metrics_server"`
	KafkaService  `yaml:"kafka_service"`
	FlipService   `yaml:"flip_service"`
	WablasService `yaml:"wablas_service"`
	Network       `yaml:"network"`
}

type NetworkDB struct {
	Dsn            string `yaml:"dsn" env:"NETWORK_DB_DSN"`
	MigrationsPath string `yaml:"migrations_path"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level" env-default:"info"`
	LogFormat string `yaml:"log_format" env-default:"json"`
	LogOutput string `yaml:"log_output" env-default:"stdout"`
}

type HTTPServer struct {
	Host string `yaml:"host" env-default:"0.0.0.0"`
	Port string `yaml:"port" env-default:"8080"`
}

type MetricsServer struct {
	Host string `yaml:"host" env-default:"0.0.0.0"`
	Port string `yaml:"port" env-default:"9091"`
}

type KafkaService struct {
	Host  string `yaml:"host"`
	Port  string `yaml:"port"`
	Topic string `yaml:"topic" env-default:"network-events"`
}

type FlipService struct {
	BaseURL   string        `yaml:"base_url"`
	APIKey    string        `yaml:"api_key" env:"FLIP_API_KEY"`
	Timeout   time.Duration `yaml:"timeout" env-default:"10s"`
	FeeRate   string        `yaml:"fee_rate" env-default:"0.002"`
	MinimumFee string       `yaml:"minimum_fee" env-default:"5000"`
}

type WablasService struct {
	BaseURL string        `yaml:"base_url"`
	Token   string        `yaml:"token" env:"WABLAS_TOKEN"`
	Timeout time.Duration `yaml:"timeout" env-default:"5s"`
}

type Network struct {
	// MaxDepth is the hard ceiling on commission-eligible upline depth.
	MaxDepth int `yaml:"max_depth" env-default:"15"`
	// StuckWithdrawalAge is how long a PROCESSING withdrawal may sit before
	// the reconciler polls the transfer gateway for its status.
	StuckWithdrawalAge time.Duration `yaml:"stuck_withdrawal_age" env-default:"10m"`
	ReferralBaseURL    string        `yaml:"referral_base_url" env-default:"https://herbamart.id/ref"`
}

func MustLoad() *NetworkConfig {

	// Processing env config variable and file
	configPath := os.Getenv("NETWORK_CONFIG_PATH")

	if configPath == "" {
		log.Fatalf("NETWORK_CONFIG_PATH was not found\n")
	}

	if _, err := os.Stat(configPath); err != nil {
		log.Fatalf("failed to find config file: %v\n", err)
	}

	// YAML to struct object
	var cfg NetworkConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	return &cfg
}
