// Package config loads process configuration from the environment.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

var ErrMissingJWTSecret = errors.New("config: JWT_SECRET must be set")

type AdminBootstrap struct {
	Name     string
	Email    string
	Password string
}

// Enabled reports whether an operator should be provisioned at startup.
func (a AdminBootstrap) Enabled() bool {
	return a.Email != "" && a.Password != ""
}

type Config struct {
	Port           string
	StoreDriver    string
	MongoURI       string
	MongoDatabase  string
	JWTSecret      string
	AllowedOrigins []string
	CookieSecure   bool
	BcryptCost     int
	Admin          AdminBootstrap
}

// Load reads .env when present and then the process environment.
// It fails when JWT_SECRET is unset; there is no fallback secret.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// LoadForProvisioning is Load for tools that never sign tokens, so
// JWT_SECRET may be unset.
func LoadForProvisioning() (*Config, error) {
	_ = godotenv.Load()
	return fromEnv(os.Getenv, false)
}

func FromEnv(getenv func(string) string) (*Config, error) {
	return fromEnv(getenv, true)
}

func fromEnv(getenv func(string) string, requireSecret bool) (*Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := &Config{
		Port:          get("PORT", "8080"),
		StoreDriver:   strings.ToLower(get("STORE_DRIVER", DriverMongo)),
		MongoURI:      get("MONGO_URI", get("MONGO_PUBLIC_URL", get("MONGO_URL", "mongodb://localhost:27017"))),
		MongoDatabase: get("MONGO_DB", "smartstore"),
		JWTSecret:     getenv("JWT_SECRET"),
		CookieSecure:  true,
		BcryptCost:    bcrypt.DefaultCost,
		Admin: AdminBootstrap{
			Name:     get("ADMIN_NAME", "Admin"),
			Email:    get("ADMIN_EMAIL", ""),
			Password: getenv("ADMIN_PASSWORD"),
		},
	}
	if requireSecret && cfg.JWTSecret == "" {
		return nil, ErrMissingJWTSecret
	}
	if cfg.StoreDriver != DriverMongo && cfg.StoreDriver != DriverMemory {
		return nil, errors.New("config: STORE_DRIVER must be mongo or memory")
	}

	for _, origin := range strings.Split(get("CORS_ORIGINS", "http://localhost:3000"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
		}
	}
	if v := get("COOKIE_SECURE", ""); v != "" {
		secure, err := strconv.ParseBool(v)
		if err != nil {
			return nil, errors.New("config: COOKIE_SECURE must be a boolean")
		}
		cfg.CookieSecure = secure
	}
	if v := get("BCRYPT_COST", ""); v != "" {
		cost, err := strconv.Atoi(v)
		if err != nil || cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
			return nil, errors.New("config: BCRYPT_COST must be an integer between 4 and 31")
		}
		cfg.BcryptCost = cost
	}
	return cfg, nil
}

func (c *Config) Addr() string {
	return ":" + c.Port
}
