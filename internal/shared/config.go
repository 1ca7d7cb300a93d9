package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv   string
	HTTPAddr string

	// hosted gateway (preferred when set)
	GatewayURL string
	GatewayKey string
	GatewayRPS int

	// self-hosted gateway fallback
	MySQLDSN string

	RedisAddr string
	RedisDB   int
	RedisPass string

	RoleTimeout time.Duration
	SeedWorkers int

	// outward-facing identity for outbound drafts
	HotelName      string
	HotelEmail     string
	HotelPhone     string
	WhatsAppNumber string
	HotelLocation  string

	AllowedOrigin string
}

// Load reads configuration from the environment (.env honored when present).
// One gateway backend must be configured: either the hosted service's URL and
// key, or a MySQL DSN. Anything else is a startup failure — silently running
// without a data backend helps nobody.
func Load() Config {
	_ = godotenv.Load()

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:         env("APP_ENV", "prod"),
		HTTPAddr:       env("HTTP_ADDR", ":8080"),
		GatewayURL:     env("GATEWAY_URL", ""),
		GatewayKey:     env("GATEWAY_KEY", ""),
		GatewayRPS:     atoi("GATEWAY_RPS", 10),
		MySQLDSN:       env("MYSQL_DSN", ""),
		RedisAddr:      env("REDIS_ADDR", ""),
		RedisPass:      env("REDIS_PASSWORD", ""),
		RedisDB:        atoi("REDIS_DB", 0),
		RoleTimeout:    time.Duration(atoi("ROLE_TIMEOUT_SECONDS", 5)) * time.Second,
		SeedWorkers:    atoi("SEED_WORKERS", 4),
		HotelName:      env("HOTEL_NAME", "Shabana Palace"),
		HotelEmail:     env("HOTEL_EMAIL", "shabana26@gmail.com"),
		HotelPhone:     env("HOTEL_PHONE", "0742864164"),
		WhatsAppNumber: env("WHATSAPP_NUMBER", "254742864164"),
		HotelLocation:  env("HOTEL_LOCATION", "Kenyatta Avenue, near Shawmut Plaza, Nakuru, Kenya"),
		AllowedOrigin:  env("ALLOWED_ORIGIN", "https://shabanapalace.com"),
	}

	if c.GatewayURL == "" && c.MySQLDSN == "" {
		log.Fatal().Msg("no gateway configured: set GATEWAY_URL and GATEWAY_KEY, or MYSQL_DSN")
	}
	if c.GatewayURL != "" && c.GatewayKey == "" {
		log.Fatal().Msg("GATEWAY_URL is set but GATEWAY_KEY is empty")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
