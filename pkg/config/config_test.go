package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every variable Load reads so the host environment cannot
// leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"PORT", "DATABASE_URL", "LLAVE_SECRETA",
		"SCOREBOARD_API_PORT", "SCOREBOARD_DATABASE_URL", "SCOREBOARD_JWT_SECRET_KEY",
		"SCOREBOARD_DATABASE_DRIVER", "SCOREBOARD_DEV_MODE", "SCOREBOARD_TOKEN_TTL",
		"SCOREBOARD_SCORE_MIN_AMOUNT", "SCOREBOARD_SCORE_MAX_AMOUNT", "SCOREBOARD_CORS_ORIGINS",
		"SCOREBOARD_BCRYPT_COST", "SCOREBOARD_JWT_ALGORITHM",
	} {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_RequiresSecretsOutsideDevMode(t *testing.T) {
	clearEnv(t)

	_, err := Load("")
	assert.ErrorContains(t, err, "database_url is required")

	t.Setenv("DATABASE_URL", "postgres://db/app")
	_, err = Load("")
	assert.ErrorContains(t, err, "jwt_secret_key is required")
}

func TestLoad_DevModeFallbacks(t *testing.T) {
	clearEnv(t)
	t.Setenv("SCOREBOARD_DEV_MODE", "true")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.True(t, cfg.IsDevMode())
	assert.Equal(t, DevDatabaseURL, cfg.DatabaseURL)
	assert.Equal(t, DevJWTSecretKey, cfg.JWTSecretKey)
	assert.Equal(t, DefaultAPIPort, cfg.APIPort)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, DefaultBcryptCost, cfg.BcryptCost)
	assert.Nil(t, cfg.ScoreMinAmount)
	assert.Nil(t, cfg.ScoreMaxAmount)
}

func TestLoad_DevModeSQLiteFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv("SCOREBOARD_DEV_MODE", "true")
	t.Setenv("SCOREBOARD_DATABASE_DRIVER", "sqlite")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.DatabaseDriver)
	assert.Equal(t, DevSQLiteDatabaseURL, cfg.DatabaseURL)

	t.Setenv("SCOREBOARD_DATABASE_URL", "/tmp/custom.db")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.db", cfg.DatabaseURL)
}

func TestLoad_LegacyEnvNames(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("DATABASE_URL", "postgres://render/db")
	t.Setenv("LLAVE_SECRETA", "s3cret")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.APIPort)
	assert.Equal(t, "postgres://render/db", cfg.DatabaseURL)
	assert.Equal(t, "s3cret", cfg.JWTSecretKey)

	t.Setenv("SCOREBOARD_API_PORT", "9090")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.APIPort)
}

func TestLoad_YAMLFile(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "config.yml", `
database_driver: sqlite
database_url: /tmp/scoreboard.db
jwt_secret_key: from-file
token_ttl: 30m
score_min_amount: 0
score_max_amount: 500
cors_origins:
  - http://localhost:5500
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.DatabaseDriver)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
	require.NotNil(t, cfg.ScoreMinAmount)
	require.NotNil(t, cfg.ScoreMaxAmount)
	assert.Equal(t, int64(0), *cfg.ScoreMinAmount)
	assert.Equal(t, int64(500), *cfg.ScoreMaxAmount)
	assert.Equal(t, []string{"http://localhost:5500"}, cfg.CORSOrigins)

	t.Setenv("SCOREBOARD_JWT_SECRET_KEY", "from-env")
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.JWTSecretKey)
}

func TestLoad_DotenvFile(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "app.env", "DATABASE_URL=postgres://local/db\nLLAVE_SECRETA=mi_clave\nPORT=4000\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "postgres://local/db", cfg.DatabaseURL)
	assert.Equal(t, "mi_clave", cfg.JWTSecretKey)
	assert.Equal(t, 4000, cfg.APIPort)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			DatabaseURL:    "postgres://db",
			DatabaseDriver: "postgres",
			JWTSecretKey:   "k",
			JWTAlgorithm:   "HS256",
			TokenTTL:       time.Hour,
			APIPort:        3000,
		}
	}
	lo, hi := int64(10), int64(1)

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"bad driver", func(c *Config) { c.DatabaseDriver = "mysql" }, "database_driver"},
		{"bad algorithm", func(c *Config) { c.JWTAlgorithm = "RS256" }, "jwt_algorithm"},
		{"zero ttl", func(c *Config) { c.TokenTTL = 0 }, "token_ttl"},
		{"bad port", func(c *Config) { c.APIPort = 70000 }, "api_port"},
		{"inverted score range", func(c *Config) { c.ScoreMinAmount, c.ScoreMaxAmount = &lo, &hi }, "score_min_amount"},
		{"half ssl", func(c *Config) { c.SSLCert = "cert.pem" }, "ssl_cert and ssl_key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
