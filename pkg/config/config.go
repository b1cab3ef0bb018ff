package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"bookit/pkg/client"
	"bookit/pkg/logger"
)

type Config struct {
	Port string

	StoreBackend string

	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration

	KafkaBrokers      []string
	KafkaBookingTopic string

	RateLimitRequests int
	RateLimitWindow   time.Duration

	RequestTimeout time.Duration
	IdempotencyTTL time.Duration
	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	SlotsPerExperience int
	SlotCapacity       int
	MaxGuestsPerOrder  int
	TopUpMaxAmount     float64

	Log    *logger.Logger
	Client *client.Client
}

func Load(serviceName string) *Config {
	cfg := &Config{
		Port: getEnvStr(EnvPort, DefaultPort),

		StoreBackend: getEnvStr(EnvStoreBackend, DefaultStoreBackend),

		MongoURI:          getEnvStr(EnvMongoURI, DefaultMongoURI),
		MongoDatabaseName: getEnvStr(EnvMongoDatabaseName, DefaultMongoDatabaseName),
		MongoConnTimeout:  getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),

		KafkaBrokers:      getEnvList(EnvKafkaBrokers),
		KafkaBookingTopic: getEnvStr(EnvKafkaBookingTopic, DefaultKafkaBookingTopic),

		RateLimitRequests: getEnvNum(EnvRateLimitRequests, DefaultRateLimitRequests),
		RateLimitWindow:   getEnvDuration(EnvRateLimitWindow, DefaultRateLimitWindow),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		IdempotencyTTL: getEnvDuration(EnvIdempotencyTTL, DefaultIdempotencyTTL),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		SlotsPerExperience: getEnvNum(EnvSlotsPerExperience, DefaultSlotsPerExperience),
		SlotCapacity:       getEnvNum(EnvSlotCapacity, DefaultSlotCapacity),
		MaxGuestsPerOrder:  getEnvNum(EnvMaxGuestsPerOrder, DefaultMaxGuestsPerOrder),
		TopUpMaxAmount:     float64(getEnvNum(EnvTopUpMaxAmount, DefaultTopUpMaxAmount)),

		Log: logger.New(logger.Config{
			Level:     getEnvStr(EnvLogLevel, DefaultLogLevel),
			Format:    logger.JSON,
			AddSource: true,
			Service:   serviceName,
		}),
		Client: client.NewClient(),
	}

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

// SetMongo connects the shared Mongo client; call only when the mongo
// store backend is selected.
func (cfg *Config) SetMongo() {
	cfg.Client.SetMongo(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
}

func (cfg *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	if cfg.StoreBackend != StoreBackendMemory && cfg.StoreBackend != StoreBackendMongo {
		errs = append(errs, fmt.Sprintf("StoreBackend must be %q or %q, got: %s", StoreBackendMemory, StoreBackendMongo, cfg.StoreBackend))
	}

	if cfg.StoreBackend == StoreBackendMongo {
		if !regexp.MustCompile(`^mongodb(\+srv)?://`).MatchString(cfg.MongoURI) {
			errs = append(errs, fmt.Sprintf("MongoURI must start with 'mongodb://' or 'mongodb+srv://', got: %s", cfg.MongoURI))
		}
		if cfg.MongoDatabaseName == "" {
			errs = append(errs, "MongoDatabaseName cannot be empty")
		}
		if cfg.MongoConnTimeout <= 0 {
			errs = append(errs, fmt.Sprintf("MongoConnTimeout must be positive, got: %s", cfg.MongoConnTimeout))
		}
	}

	for name, d := range map[string]time.Duration{
		"RateLimitWindow": cfg.RateLimitWindow,
		"RequestTimeout":  cfg.RequestTimeout,
		"IdempotencyTTL":  cfg.IdempotencyTTL,
		"ReadTimeout":     cfg.ReadTimeout,
		"WriteTimeout":    cfg.WriteTimeout,
		"IdleTimeout":     cfg.IdleTimeout,
		"ShutdownTimeout": cfg.ShutdownTimeout,
	} {
		if d <= 0 {
			errs = append(errs, fmt.Sprintf("%s must be positive, got: %s", name, d))
		}
	}

	if cfg.RateLimitRequests <= 0 {
		errs = append(errs, fmt.Sprintf("RateLimitRequests must be positive, got: %d", cfg.RateLimitRequests))
	}
	if cfg.MaxRequestSize <= 0 {
		errs = append(errs, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}
	if cfg.SlotsPerExperience <= 0 {
		errs = append(errs, fmt.Sprintf("SlotsPerExperience must be positive, got: %d", cfg.SlotsPerExperience))
	}
	if cfg.SlotCapacity <= 0 {
		errs = append(errs, fmt.Sprintf("SlotCapacity must be positive, got: %d", cfg.SlotCapacity))
	}
	if cfg.MaxGuestsPerOrder <= 0 || cfg.MaxGuestsPerOrder > cfg.SlotCapacity {
		errs = append(errs, fmt.Sprintf("MaxGuestsPerOrder must be between 1 and SlotCapacity (%d), got: %d", cfg.SlotCapacity, cfg.MaxGuestsPerOrder))
	}
	if cfg.TopUpMaxAmount <= 0 {
		errs = append(errs, fmt.Sprintf("TopUpMaxAmount must be positive, got: %.2f", cfg.TopUpMaxAmount))
	}

	if len(errs) > 0 {
		errMsg := "Configuration validation failed:\n"
		for i, e := range errs {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, e)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"port", cfg.Port,
		"store_backend", cfg.StoreBackend,
		"mongo_uri", redactMongoURI(cfg.MongoURI),
		"mongo_database", cfg.MongoDatabaseName,
		"kafka_brokers", strings.Join(cfg.KafkaBrokers, ","),
		"kafka_booking_topic", cfg.KafkaBookingTopic,
		"rate_limit_requests", cfg.RateLimitRequests,
		"rate_limit_window", cfg.RateLimitWindow,
		"request_timeout", cfg.RequestTimeout,
		"idempotency_ttl", cfg.IdempotencyTTL,
		"max_request_size", cfg.MaxRequestSize,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
		"slots_per_experience", cfg.SlotsPerExperience,
		"slot_capacity", cfg.SlotCapacity,
		"max_guests_per_order", cfg.MaxGuestsPerOrder,
		"topup_max_amount", cfg.TopUpMaxAmount,
	)
}

func (cfg *Config) GracefulShutdown() {
	cfg.Client.GracefulShutdown(cfg.Log, cfg.ShutdownTimeout)
}

func redactMongoURI(uri string) string {
	credentialRegex := regexp.MustCompile(`(mongodb(\+srv)?://)[^:]+:[^@]+@`)
	return credentialRegex.ReplaceAllString(uri, "${1}***:***@")
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
