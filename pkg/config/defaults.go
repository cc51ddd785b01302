package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "trizone"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "4000"
	DefaultLogLevel = "info"

	DefaultRateLimitRPS   = 10
	DefaultRateLimitBurst = 20

	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultSeedWorkstations = 10
	DefaultSeedLounges      = 4

	DefaultDefaultBookingHours = 1.0
	DefaultDefaultRatePerHour  = 25.0

	DefaultMenuCacheTTL = 30 * time.Second

	DefaultKafkaTopic = "trizone.events"

	DefaultCORSAllowedOrigins = "*"

	DefaultPaginationLimit = 100
)
