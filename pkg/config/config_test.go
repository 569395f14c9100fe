package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	zap.ReplaceGlobals(zap.NewNop())
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()

	require.Equal(t, "development", cfg.AppEnv)
	require.Equal(t, ":8080", cfg.Server.Addr)
	require.Equal(t, "127.0.0.1", cfg.Database.Host)
	require.Equal(t, "Asia/Ho_Chi_Minh", cfg.Database.Timezone)
	require.Equal(t, 10*time.Second, cfg.Payment.Timeout)
	require.False(t, cfg.TLS.Enable)
	require.False(t, cfg.Database.EnableMetrics)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	// env-only deployment: every one of these must survive without a
	// config.yaml, including keys whose default is empty
	t.Setenv("PAYMENT_VERIFY_URL", "https://verifier.internal/verify")
	t.Setenv("DATABASE_HOST", "db.internal")
	t.Setenv("DATABASE_PASSWORD", "s3cret")
	t.Setenv("REDIS_PASSWORD", "r3dis")
	t.Setenv("DATABASE_ENABLE_METRICS", "true")
	t.Setenv("TLS_ENABLE", "true")
	t.Setenv("TLS_CERT_PATH", "/etc/voucherd/tls.crt")

	cfg := LoadConfig()

	require.Equal(t, "https://verifier.internal/verify", cfg.Payment.VerifyURL)
	require.Equal(t, "db.internal", cfg.Database.Host)
	require.Equal(t, "s3cret", cfg.Database.Password)
	require.Equal(t, "r3dis", cfg.Redis.Password)
	require.True(t, cfg.Database.EnableMetrics)
	require.True(t, cfg.TLS.Enable)
	require.Equal(t, "/etc/voucherd/tls.crt", cfg.TLS.CertPath)
}

func TestLoadConfigDurationFromEnv(t *testing.T) {
	t.Setenv("PAYMENT_TIMEOUT", "3s")
	t.Setenv("HTTP_SERVER_READ_TIMEOUT", "30s")

	cfg := LoadConfig()

	require.Equal(t, 3*time.Second, cfg.Payment.Timeout)
	require.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
}
