package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnvRequiresSecret(t *testing.T) {
	_, err := FromEnv(envOf(map[string]string{"MONGO_URI": "mongodb://db:27017"}))
	assert.ErrorIs(t, err, ErrMissingJWTSecret)
}

func TestProvisioningDoesNotNeedSecret(t *testing.T) {
	cfg, err := fromEnv(envOf(map[string]string{
		"ADMIN_EMAIL":    "admin@example.com",
		"ADMIN_PASSWORD": "admin123",
	}), false)
	require.NoError(t, err)
	assert.Empty(t, cfg.JWTSecret)
	assert.True(t, cfg.Admin.Enabled())
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{"JWT_SECRET": "x"}))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, DriverMongo, cfg.StoreDriver)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "smartstore", cfg.MongoDatabase)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.False(t, cfg.Admin.Enabled())
}

func TestFromEnvOverrides(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{
		"JWT_SECRET":     "x",
		"PORT":           "5000",
		"STORE_DRIVER":   "Memory",
		"MONGO_URL":      "mongodb://fallback:27017",
		"CORS_ORIGINS":   "https://shop.example.com, https://admin.example.com,",
		"COOKIE_SECURE":  "false",
		"BCRYPT_COST":    "12",
		"ADMIN_EMAIL":    "admin@example.com",
		"ADMIN_PASSWORD": "admin123",
	}))
	require.NoError(t, err)

	assert.Equal(t, ":5000", cfg.Addr())
	assert.Equal(t, DriverMemory, cfg.StoreDriver)
	assert.Equal(t, "mongodb://fallback:27017", cfg.MongoURI)
	assert.Equal(t, []string{"https://shop.example.com", "https://admin.example.com"}, cfg.AllowedOrigins)
	assert.False(t, cfg.CookieSecure)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.True(t, cfg.Admin.Enabled())
	assert.Equal(t, "Admin", cfg.Admin.Name)
}

func TestFromEnvMongoURIPrecedence(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{
		"JWT_SECRET":       "x",
		"MONGO_URI":        "mongodb://primary:27017",
		"MONGO_PUBLIC_URL": "mongodb://public:27017",
		"MONGO_URL":        "mongodb://private:27017",
	}))
	require.NoError(t, err)
	assert.Equal(t, "mongodb://primary:27017", cfg.MongoURI)
}

func TestFromEnvRejectsBadValues(t *testing.T) {
	for name, env := range map[string]map[string]string{
		"driver":      {"JWT_SECRET": "x", "STORE_DRIVER": "postgres"},
		"secure flag": {"JWT_SECRET": "x", "COOKIE_SECURE": "sometimes"},
		"cost":        {"JWT_SECRET": "x", "BCRYPT_COST": "2"},
		"cost high":   {"JWT_SECRET": "x", "BCRYPT_COST": "32"},
		"cost text":   {"JWT_SECRET": "x", "BCRYPT_COST": "ten"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := FromEnv(envOf(env))
			assert.Error(t, err)
		})
	}
}
