package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application level configuration loaded from file, environment and flags.
type Config struct {
	RunAddress        string
	DatabaseURI       string
	JWTSecret         string
	TokenTTL          time.Duration
	PasswordCost      int
	ShutdownTimeout   time.Duration
	WorkerPoolSize    int
	DispatchQueueSize int
	FrontendURL       string
	Mail              MailConfig
	AMQPURL           string
	EventsExchange    string
	JaegerEndpoint    string
	LogLevel          string
}

// MailConfig describes the outbound SMTP relay. An empty Server disables delivery.
type MailConfig struct {
	Server   string
	Port     int
	Username string
	Password string
	From     string
}

const (
	defaultRunAddress        = ":8080"
	defaultJWTSecret         = "change-me-in-production"
	defaultTokenTTL          = 24 * time.Hour
	defaultShutdownTimeout   = 10 * time.Second
	defaultWorkerPoolSize    = 4
	defaultDispatchQueueSize = 64
	defaultFrontendURL       = "http://localhost:3000"
	defaultMailPort          = 587
	defaultMailFrom          = "no-reply@restaurant.local"
	defaultEventsExchange    = "restaurant.orders"
	defaultLogLevel          = "info"
)

const (
	keyRunAddress        = "run_address"
	keyDatabaseURI       = "database_uri"
	keyJWTSecret         = "jwt_secret"
	keyTokenTTL          = "token_ttl"
	keyPasswordCost      = "password_cost"
	keyShutdownTimeout   = "shutdown_timeout"
	keyWorkerPoolSize    = "worker_pool_size"
	keyDispatchQueueSize = "dispatch_queue_size"
	keyFrontendURL       = "frontend_url"
	keyMailServer        = "mail_server"
	keyMailPort          = "mail_port"
	keyMailUsername      = "mail_username"
	keyMailPassword      = "mail_password"
	keyMailFrom          = "mail_from"
	keyAMQPURL           = "amqp_url"
	keyEventsExchange    = "events_exchange"
	keyJaegerEndpoint    = "jaeger_endpoint"
	keyLogLevel          = "log_level"
)

var keys = []string{
	keyRunAddress, keyDatabaseURI, keyJWTSecret, keyTokenTTL, keyPasswordCost, keyShutdownTimeout,
	keyWorkerPoolSize, keyDispatchQueueSize, keyFrontendURL,
	keyMailServer, keyMailPort, keyMailUsername, keyMailPassword, keyMailFrom,
	keyAMQPURL, keyEventsExchange, keyJaegerEndpoint, keyLogLevel,
}

// flagKeys maps command line flags onto configuration keys.
var flagKeys = map[string]string{
	"a":                keyRunAddress,
	"d":                keyDatabaseURI,
	"jwt-secret":       keyJWTSecret,
	"token-ttl":        keyTokenTTL,
	"shutdown-timeout": keyShutdownTimeout,
	"worker-pool":      keyWorkerPoolSize,
	"dispatch-queue":   keyDispatchQueueSize,
	"frontend-url":     keyFrontendURL,
	"amqp-url":         keyAMQPURL,
	"jaeger-endpoint":  keyJaegerEndpoint,
}

// Load parses configuration from an optional .env file, an optional YAML file,
// environment variables and flags.
func Load() (*Config, error) {
	// .env is optional; real environment variables win over it.
	_ = godotenv.Load()
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	fs := flag.NewFlagSet("restaurant", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	configFile := fs.String("config", getString(lookup, "CONFIG_FILE", ""), "Path to a YAML configuration file")
	fs.String("a", defaultRunAddress, "HTTP server listen address")
	fs.String("d", "", "PostgreSQL DSN")
	fs.String("jwt-secret", "", "Secret for signing auth tokens")
	fs.String("token-ttl", defaultTokenTTL.String(), "Lifetime of issued auth tokens")
	fs.String("shutdown-timeout", defaultShutdownTimeout.String(), "Graceful shutdown timeout")
	fs.Int("worker-pool", defaultWorkerPoolSize, "Number of notification workers")
	fs.Int("dispatch-queue", defaultDispatchQueueSize, "Capacity of the notification queue")
	fs.String("frontend-url", defaultFrontendURL, "Base URL used in verification links")
	fs.String("amqp-url", "", "AMQP broker URL for order events")
	fs.String("jaeger-endpoint", "", "Jaeger collector endpoint")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	if *configFile != "" {
		v.SetConfigFile(*configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	for _, key := range keys {
		if value := getString(lookup, strings.ToUpper(key), ""); value != "" {
			v.Set(key, value)
		}
	}

	fs.Visit(func(f *flag.Flag) {
		if key, ok := flagKeys[f.Name]; ok {
			v.Set(key, f.Value.String())
		}
	})

	cfg := &Config{
		RunAddress:        v.GetString(keyRunAddress),
		DatabaseURI:       v.GetString(keyDatabaseURI),
		JWTSecret:         v.GetString(keyJWTSecret),
		PasswordCost:      v.GetInt(keyPasswordCost),
		WorkerPoolSize:    v.GetInt(keyWorkerPoolSize),
		DispatchQueueSize: v.GetInt(keyDispatchQueueSize),
		FrontendURL:       strings.TrimRight(v.GetString(keyFrontendURL), "/"),
		Mail: MailConfig{
			Server:   v.GetString(keyMailServer),
			Port:     v.GetInt(keyMailPort),
			Username: v.GetString(keyMailUsername),
			Password: v.GetString(keyMailPassword),
			From:     v.GetString(keyMailFrom),
		},
		AMQPURL:        v.GetString(keyAMQPURL),
		EventsExchange: v.GetString(keyEventsExchange),
		JaegerEndpoint: v.GetString(keyJaegerEndpoint),
		LogLevel:       strings.ToLower(v.GetString(keyLogLevel)),
	}

	var err error

	if cfg.TokenTTL, err = time.ParseDuration(v.GetString(keyTokenTTL)); err != nil {
		return nil, fmt.Errorf("invalid token ttl: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(v.GetString(keyShutdownTimeout)); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("JWT_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = strings.TrimSpace(string(content))
	}

	normalize(cfg)

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(keyRunAddress, defaultRunAddress)
	v.SetDefault(keyJWTSecret, defaultJWTSecret)
	v.SetDefault(keyTokenTTL, defaultTokenTTL.String())
	v.SetDefault(keyShutdownTimeout, defaultShutdownTimeout.String())
	v.SetDefault(keyWorkerPoolSize, defaultWorkerPoolSize)
	v.SetDefault(keyDispatchQueueSize, defaultDispatchQueueSize)
	v.SetDefault(keyFrontendURL, defaultFrontendURL)
	v.SetDefault(keyMailPort, defaultMailPort)
	v.SetDefault(keyMailFrom, defaultMailFrom)
	v.SetDefault(keyEventsExchange, defaultEventsExchange)
	v.SetDefault(keyLogLevel, defaultLogLevel)
}

func normalize(cfg *Config) {
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = defaultJWTSecret
	}

	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.DispatchQueueSize <= 0 {
		cfg.DispatchQueueSize = defaultDispatchQueueSize
	}

	if cfg.Mail.Port <= 0 {
		cfg.Mail.Port = defaultMailPort
	}

	if cfg.EventsExchange == "" {
		cfg.EventsExchange = defaultEventsExchange
	}
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}
