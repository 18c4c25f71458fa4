package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_KEY", "supersecret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, 12*time.Hour, cfg.JWTTTL)
	assert.Equal(t, "uploads/images", cfg.UploadDir)
	assert.Equal(t, int64(500000), cfg.UploadMaxBytes)
	assert.Equal(t, "https://restapi.amap.com", cfg.AMapBaseURL)
	assert.Equal(t, int32(10), cfg.DBMaxConns)
	assert.Equal(t, int32(0), cfg.DBMinConns)
	assert.Equal(t, time.Hour, cfg.DBMaxConnLifetime)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_KEY", "supersecret")
	t.Setenv("PORT", "8081")
	t.Setenv("JWT_TTL", "30m")
	t.Setenv("UPLOAD_MAX_BYTES", "1024")
	t.Setenv("DB_MAX_CONNS", "25")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, 30*time.Minute, cfg.JWTTTL)
	assert.Equal(t, int64(1024), cfg.UploadMaxBytes)
	assert.Equal(t, int32(25), cfg.DBMaxConns)
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("JWT_KEY", "")

	_, err := Load()
	assert.ErrorIs(t, err, ErrJWTSecretRequired)
}

func TestConfig_DSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{
			name: "explicit url wins",
			cfg:  Config{DatabaseURL: "postgres://a@b/c", DBUser: "ignored"},
			want: "postgres://a@b/c",
		},
		{
			name: "assembled from parts",
			cfg:  Config{DBUser: "places", DBPassword: "p@ss/word", DBHost: "db:5432", DBName: "places", DBSSLMode: "disable"},
			want: "postgres://places:p%40ss%2Fword@db:5432/places?sslmode=disable",
		},
		{
			name: "no password",
			cfg:  Config{DBUser: "places", DBHost: "localhost:5432", DBName: "places"},
			want: "postgres://places@localhost:5432/places",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.DSN())
		})
	}
}
