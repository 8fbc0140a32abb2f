package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
)

type Config struct {
	AppPort string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	RedisAddr string
	RedisDB   int

	IdempTTLSecs int

	// Outbound payment gateway.
	GatewayBaseURL string
	GatewayToken   string
	// Shared secret the gateway sends on its push confirmations.
	GatewayWebhookToken string

	NotifyBaseURL string

	// Server-side ceilings for pollPaymentStatus.
	PollMaxAttempts   int
	PollMaxIntervalMS int
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getenvInt(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func Load() *Config {
	return &Config{
		AppPort:   getenv("APP_PORT", "8080"),
		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "rentflow"),
		MySQLUser: getenv("MYSQL_USER", "rentflow"),
		MySQLPass: getenv("MYSQL_PASS", "rentflow"),

		RedisAddr: getenv("REDIS_ADDR", "redis:6379"),
		RedisDB:   getenvInt("REDIS_DB", 0),

		IdempTTLSecs: getenvInt("IDEMPOTENCY_TTL_SECONDS", 300),

		GatewayBaseURL:      getenv("GATEWAY_BASE_URL", "http://paygate:9090"),
		GatewayToken:        getenv("GATEWAY_TOKEN", ""),
		GatewayWebhookToken: getenv("GATEWAY_WEBHOOK_TOKEN", ""),

		NotifyBaseURL: getenv("NOTIFY_BASE_URL", "http://notify:9091"),

		PollMaxAttempts:   getenvInt("POLL_MAX_ATTEMPTS", 10),
		PollMaxIntervalMS: getenvInt("POLL_MAX_INTERVAL_MS", 2000),
	}
}

func (c *Config) Validate() error {
	if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
		return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
	}
	// ensure port is valid
	if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
		return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if c.GatewayWebhookToken == "" {
		return errors.New("missing GATEWAY_WEBHOOK_TOKEN")
	}
	if c.PollMaxAttempts <= 0 || c.PollMaxIntervalMS <= 0 {
		return errors.New("poll ceilings must be positive")
	}
	return nil
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// multiStatements=true is handy for migrations; parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?multiStatements=true&parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
