package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "unit-test-secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.ServerHost)
	assert.Equal(t, "5000", cfg.ServerPort)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "devconnector", cfg.DBName)
	assert.Equal(t, 360000*time.Second, cfg.TokenTTL)
	assert.Empty(t, cfg.RedisHost)
	assert.Empty(t, cfg.S3Bucket)
}

func TestLoadConfigTokenTTL(t *testing.T) {
	t.Setenv("JWT_SECRET", "unit-test-secret")
	t.Setenv("TOKEN_TTL_SECONDS", "3600")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, time.Hour, cfg.TokenTTL)

	t.Setenv("TOKEN_TTL_SECONDS", "not-a-number")
	_, err = LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TOKEN_TTL_SECONDS")
}

func TestLoadConfigRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestValidateConfigProductionSecretLength(t *testing.T) {
	t.Setenv("ENV", "production")

	err := ValidateConfig(&Config{
		JWTSecret:  "short",
		DBHost:     "localhost",
		DBName:     "devconnector",
		ServerPort: "5000",
		TokenTTL:   time.Hour,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 32 characters")
}

func TestValidateConfigTokenTTL(t *testing.T) {
	err := ValidateConfig(&Config{
		JWTSecret:  "unit-test-secret",
		DBHost:     "localhost",
		DBName:     "devconnector",
		ServerPort: "5000",
		TokenTTL:   0,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TOKEN_TTL_SECONDS")
}

func TestGetSecretFileFallback(t *testing.T) {
	dir := t.TempDir()
	secretFile := filepath.Join(dir, "jwt_secret")
	require.NoError(t, os.WriteFile(secretFile, []byte("file-secret\n"), 0o600))

	t.Setenv("JWT_SECRET", "")
	t.Setenv("JWT_SECRET_FILE", secretFile)

	assert.Equal(t, "file-secret", getSecret("JWT_SECRET", ""))

	// A directly set variable wins over the file.
	t.Setenv("JWT_SECRET", "env-secret")
	assert.Equal(t, "env-secret", getSecret("JWT_SECRET", ""))
}

func TestGetEnvironment(t *testing.T) {
	t.Setenv("ENV", "")
	assert.Equal(t, Development, GetEnvironment())

	t.Setenv("ENV", "test")
	assert.Equal(t, Test, GetEnvironment())

	t.Setenv("ENV", "production")
	assert.Equal(t, Production, GetEnvironment())
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		DBHost:     "db",
		DBPort:     "5432",
		DBUser:     "postgres",
		DBPassword: "secret",
		DBName:     "devconnector",
		DBSSLMode:  "disable",
	}
	assert.Equal(t,
		"host=db port=5432 user=postgres password=secret dbname=devconnector sslmode=disable",
		cfg.DSN())
}
