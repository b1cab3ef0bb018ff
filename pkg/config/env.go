package config

const (
	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvStoreBackend = "STORE_BACKEND"

	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvKafkaBrokers      = "KAFKA_BROKERS"
	EnvKafkaBookingTopic = "KAFKA_BOOKING_TOPIC"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvSlotsPerExperience = "SLOTS_PER_EXPERIENCE"
	EnvSlotCapacity       = "SLOT_CAPACITY"
	EnvMaxGuestsPerOrder  = "MAX_GUESTS_PER_ORDER"
	EnvTopUpMaxAmount     = "TOPUP_MAX_AMOUNT"
)
