package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	AppPort     string
	DatabaseURL string

	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	AllowedOrigins []string

	LogLevel string
	LogJSON  bool

	// Rate limiting is off unless RedisAddr is set
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	APIRateLimit     int
	APIRateWindowSec int
}

var defaults = map[string]any{
	"port":                    "5000",
	"db_host":                 "localhost",
	"db_port":                 "5432",
	"db_user":                 "postgres",
	"db_password":             "",
	"db_name":                 "tasks",
	"db_sslmode":              "prefer",
	"cors_allowed_origins":    "http://localhost:3001",
	"log_level":               "info",
	"log_json":                false,
	"redis_db":                "0",
	"api_rate_limit":          "100",
	"api_rate_window_seconds": "60",
}

// Load reads the process environment, after merging in a .env file when one
// exists. Extra env files are loaded in order; missing ones are ignored.
func Load(envFiles ...string) (*Config, error) {
	_ = godotenv.Load(envFiles...)

	v := viper.New()
	v.AutomaticEnv()
	for k, d := range defaults {
		v.SetDefault(k, d)
	}
	// keys without a default still need binding to be read from env
	for _, k := range []string{"database_url", "redis_addr", "redis_password"} {
		_ = v.BindEnv(k)
	}

	dbPort, err := positiveInt(v, "db_port")
	if err != nil {
		return nil, err
	}
	if _, err := positiveInt(v, "port"); err != nil {
		return nil, err
	}
	redisDB, err := strconv.Atoi(strings.TrimSpace(v.GetString("redis_db")))
	if err != nil || redisDB < 0 {
		return nil, fmt.Errorf("REDIS_DB must be a non-negative integer, got %q", v.GetString("redis_db"))
	}
	rateLimit, err := positiveInt(v, "api_rate_limit")
	if err != nil {
		return nil, err
	}
	rateWindow, err := positiveInt(v, "api_rate_window_seconds")
	if err != nil {
		return nil, err
	}

	return &Config{
		AppPort:          strings.TrimSpace(v.GetString("port")),
		DatabaseURL:      strings.TrimSpace(v.GetString("database_url")),
		DBHost:           v.GetString("db_host"),
		DBPort:           dbPort,
		DBUser:           v.GetString("db_user"),
		DBPassword:       v.GetString("db_password"),
		DBName:           v.GetString("db_name"),
		DBSSLMode:        v.GetString("db_sslmode"),
		AllowedOrigins:   splitList(v.GetString("cors_allowed_origins")),
		LogLevel:         v.GetString("log_level"),
		LogJSON:          v.GetBool("log_json"),
		RedisAddr:        strings.TrimSpace(v.GetString("redis_addr")),
		RedisPassword:    v.GetString("redis_password"),
		RedisDB:          redisDB,
		APIRateLimit:     rateLimit,
		APIRateWindowSec: rateWindow,
	}, nil
}

// DSN returns DatabaseURL when set, otherwise a postgres URL assembled from
// the DB_* parts.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(c.DBHost, strconv.Itoa(c.DBPort)),
		Path:   "/" + c.DBName,
	}
	if c.DBPassword != "" {
		u.User = url.UserPassword(c.DBUser, c.DBPassword)
	} else if c.DBUser != "" {
		u.User = url.User(c.DBUser)
	}
	if c.DBSSLMode != "" {
		u.RawQuery = url.Values{"sslmode": {c.DBSSLMode}}.Encode()
	}
	return u.String()
}

func positiveInt(v *viper.Viper, key string) (int, error) {
	raw := strings.TrimSpace(v.GetString(key))
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", strings.ToUpper(key), raw)
	}
	return n, nil
}

// origins are comma separated in env
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
