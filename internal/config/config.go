package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DevSecret signs tokens when no secret is configured in development.
const DevSecret = "jewelbox-dev-secret-change-me"

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	DB      DBConfig      `mapstructure:"db"`
	Log     LogConfig     `mapstructure:"log"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Payment PaymentConfig `mapstructure:"payment"`
	Kafka   KafkaConfig   `mapstructure:"kafka"`
}

type ServerConfig struct {
	Port        string   `mapstructure:"port"`
	Env         string   `mapstructure:"env"`
	CORSOrigins []string `mapstructure:"cors_origins"`
	BodyLimit   int      `mapstructure:"body_limit"`
	LoginRate   int      `mapstructure:"login_rate"`
}

type DBConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

type LogConfig struct {
	File string `mapstructure:"file"`
}

type AuthConfig struct {
	JWTSecret  string        `mapstructure:"jwt_secret"`
	TokenTTL   time.Duration `mapstructure:"token_ttl"`
	BcryptCost int           `mapstructure:"bcrypt_cost"`
}

type PaymentConfig struct {
	SuccessRate float64       `mapstructure:"success_rate"`
	Latency     time.Duration `mapstructure:"latency"`
}

type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

func (c *Config) Development() bool { return c.Server.Env == "development" }

// env maps each key to the plain environment variable that overrides it.
var env = map[string]string{
	"server.port":          "PORT",
	"server.env":           "APP_ENV",
	"server.cors_origins":  "CORS_ORIGINS",
	"server.login_rate":    "LOGIN_RATE",
	"db.driver":            "DB_DRIVER",
	"db.dsn":               "DB_DSN",
	"log.file":             "LOG_FILE",
	"auth.jwt_secret":      "JWT_SECRET",
	"auth.token_ttl":       "TOKEN_TTL",
	"payment.success_rate": "PAYMENT_SUCCESS_RATE",
	"payment.latency":      "PAYMENT_LATENCY",
	"kafka.brokers":        "KAFKA_BROKERS",
	"kafka.topic":          "KAFKA_TOPIC",
}

func defaults(v *viper.Viper) {
	v.SetDefault("server.port", "5000")
	v.SetDefault("server.env", "development")
	v.SetDefault("server.cors_origins", []string{
		"http://localhost:3000", "http://localhost:8000", "http://localhost:5173",
	})
	v.SetDefault("server.body_limit", 10*1024*1024)
	v.SetDefault("server.login_rate", 10)
	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.dsn", "./database.sqlite")
	v.SetDefault("log.file", "")
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_ttl", 24*time.Hour)
	v.SetDefault("auth.bcrypt_cost", 10)
	v.SetDefault("payment.success_rate", 0.95)
	v.SetDefault("payment.latency", time.Second)
	v.SetDefault("kafka.brokers", []string{})
	v.SetDefault("kafka.topic", "orders")
}

// Load reads .env, then the optional YAML file, then environment overrides.
// path may be empty, in which case config.yaml is looked up in ./ and ./config/.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err == nil {
		log.Printf("[config] loaded .env")
	}

	v := viper.New()
	defaults(v)
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./")
		v.AddConfigPath("./config/")
	}
	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &nf) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}
	for key, name := range env {
		if err := v.BindEnv(key, name); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	// comma separated lists arrive from the environment as a single element
	cfg.Server.CORSOrigins = splitList(cfg.Server.CORSOrigins)
	cfg.Kafka.Brokers = splitList(cfg.Kafka.Brokers)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	log.Printf("[config] env=%s port=%s db=%s kafka=%v", cfg.Server.Env, cfg.Server.Port, cfg.DB.Driver, cfg.Kafka.Brokers)
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Auth.JWTSecret == "" {
		if !c.Development() {
			return errors.New("JWT_SECRET is required outside development")
		}
		log.Printf("[config] WARNING: JWT_SECRET not set, using development secret")
		c.Auth.JWTSecret = DevSecret
	}
	if c.Payment.SuccessRate < 0 || c.Payment.SuccessRate > 1 {
		return fmt.Errorf("payment.success_rate must be within [0,1], got %v", c.Payment.SuccessRate)
	}
	if c.Server.LoginRate <= 0 {
		c.Server.LoginRate = 10
	}
	return nil
}

func splitList(in []string) []string {
	out := []string{}
	for _, s := range in {
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
