package config

import (
	"fmt"
	"github.com/joho/godotenv"
	"os"
	"reflect"
	"strconv"
	"sync"
	"time"
)

var cfg *Config
var once sync.Once

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

// Config is the configuration for the application
type Config struct {
	Server
	PostgreSQL
	Storage
	Redis
	Auth
	Pagination
	Log
}

// Server is the configuration for the server
type Server struct {
	Port           string `env:"PORT" envDefault:"8080"`
	RequestTimeout string `env:"REQUEST_TIMEOUT" envDefault:"5s"`
}

// Addr returns the address for the server
func (s Server) Addr() string {
	return fmt.Sprintf("%s:%s", "0.0.0.0", s.Port)
}

// Timeout is the deadline handed to every core call made on behalf of a request.
func (s Server) Timeout() time.Duration {
	return parseDuration(s.RequestTimeout, 5*time.Second)
}

// PostgreSQL is the configuration for the database
type PostgreSQL struct {
	Driver          string `env:"DB_DRIVER" envDefault:"postgres"`
	Host            string `env:"DB_HOST" envDefault:"localhost"`
	Port            string `env:"DB_PORT" envDefault:"5432"`
	Database        string `env:"DB_DATABASE" envDefault:"payment_gateway"`
	Username        string `env:"DB_USERNAME" envDefault:"payment_gateway"`
	Password        string `env:"DB_PASSWORD" envDefault:"payment_gateway"`
	SSLMode         string `env:"DB_SSLMODE" envDefault:"disable"`
	MaxConnAttempts string `env:"DB_MAX_CONN_ATTEMPTS" envDefault:"5"`
	MaxTxRetries    string `env:"DB_MAX_TX_RETRIES" envDefault:"10"`
	Migrate         string `env:"DB_MIGRATE" envDefault:"true"`
}

// DSN returns the DSN for the database
func (c PostgreSQL) DSN() string {
	return fmt.Sprintf("%s://%s:%s@%s:%s/%s?sslmode=%s",
		c.Driver,
		c.Username,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
		c.SSLMode,
	)
}

// TxRetries is the number of times a unit of work is re-run after a serialization failure.
func (c PostgreSQL) TxRetries() int {
	return parseInt(c.MaxTxRetries, 10)
}

func (c PostgreSQL) MigrateOnStart() bool {
	v, err := strconv.ParseBool(c.Migrate)
	return err == nil && v
}

// Storage selects the persistence backend.
type Storage struct {
	Driver string `env:"STORAGE_DRIVER" envDefault:"postgres"`
}

// Redis backs the Idempotency-Key replay cache. An empty URL disables it.
type Redis struct {
	URL            string `env:"REDIS_URL" envDefault:""`
	IdempotencyTTL string `env:"IDEMPOTENCY_TTL" envDefault:"24h"`
}

func (r Redis) TTL() time.Duration {
	return parseDuration(r.IdempotencyTTL, 24*time.Hour)
}

// Auth is the configuration for login tokens and password hashing
type Auth struct {
	JWTSecret     string `env:"JWT_SECRET_KEY" envDefault:"change-me"`
	JWTExpiresIn  string `env:"JWT_EXPIRES_IN" envDefault:"1h"`
	BcryptCost    string `env:"BCRYPT_COST" envDefault:"12"`
	AdminEmail    string `env:"ADMIN_EMAIL" envDefault:""`
	AdminPassword string `env:"ADMIN_PASSWORD" envDefault:""`
	AdminName     string `env:"ADMIN_NAME" envDefault:"Administrator"`
}

func (a Auth) TokenTTL() time.Duration {
	return parseDuration(a.JWTExpiresIn, time.Hour)
}

func (a Auth) Cost() int {
	return parseInt(a.BcryptCost, 12)
}

// Pagination holds list defaults
type Pagination struct {
	DefaultLimit string `env:"PAGE_DEFAULT_LIMIT" envDefault:"10"`
	MaxLimit     string `env:"PAGE_MAX_LIMIT" envDefault:"100"`
}

func (p Pagination) Default() int {
	return parseInt(p.DefaultLimit, 10)
}

func (p Pagination) Max() int {
	return parseInt(p.MaxLimit, 100)
}

// Log is the configuration for the logger
type Log struct {
	Level   string `env:"LOG_LEVEL" envDefault:"info"`
	File    string `env:"LOG_FILE" envDefault:""`
	Console string `env:"LOG_CONSOLE" envDefault:"true"`
}

func (l Log) ConsoleEnabled() bool {
	v, err := strconv.ParseBool(l.Console)
	return err == nil && v
}

// Load loads the configuration from environment variables. A .env file in the
// working directory, when present, is read first and never overrides real env vars.
func Load() *Config {
	once.Do(func() {
		_ = godotenv.Load()
		cfg = &Config{}
		fill(cfg)
	})

	return cfg
}

// fill sets every string field of every embedded section from its env tag.
func fill(c *Config) {
	cfgType := reflect.TypeOf(*c)
	cfgValue := reflect.ValueOf(c).Elem()

	for i := 0; i < cfgType.NumField(); i++ {
		field := cfgType.Field(i)
		fieldValue := cfgValue.Field(i)
		for j := 0; j < field.Type.NumField(); j++ {
			subField := field.Type.Field(j)
			envVar := subField.Tag.Get("env")
			envDefault := subField.Tag.Get("envDefault")
			value := getEnv(envVar, envDefault)

			fieldValue.Field(j).SetString(value)
		}
	}
}

// getEnv retrieves the value of the environment variable named by the key or returns the defaultValue if not set
func getEnv(key, defaultValue string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		value = defaultValue
	}
	return value
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func parseInt(value string, fallback int) int {
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
