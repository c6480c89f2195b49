package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// DefaultJWTSecret is the development fallback. Startup refuses to run in
// production with it and warns loudly everywhere else.
const DefaultJWTSecret = "dev_secret_change_this"

type Config struct {
	Port            string
	Env             string
	MongoURI        string
	MongoDB         string
	JWTSecret       string
	AccessTTLDays   int
	BcryptCost      int
	RedisAddr       string
	RateLimitPerMin int
	RabbitURL       string
}

func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:            getenv("APP_PORT", "8080"),
		Env:             getenv("APP_ENV", "development"),
		MongoURI:        getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:         getenv("MONGO_DB", "trips_db"),
		JWTSecret:       getenv("JWT_SECRET", DefaultJWTSecret),
		AccessTTLDays:   atoi(getenv("ACCESS_TTL_DAYS", "7")),
		BcryptCost:      atoi(getenv("BCRYPT_COST", "12")),
		RedisAddr:       getenv("REDIS_ADDR", "localhost:6379"),
		RateLimitPerMin: atoi(getenv("RATE_LIMIT_PER_MIN", "10")),
		RabbitURL:       getenv("RABBIT_URL", ""),
	}
}

func (c Config) IsProduction() bool { return c.Env == "production" }

func (c Config) UsingDefaultSecret() bool { return c.JWTSecret == DefaultJWTSecret }

func atoi(s string) int {
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return 0
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
