package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

const minimalConfig = `
database:
  postgres:
    host: localhost
    database: payroll_assistant
    user: assistant
auth:
  jwt_secret: test-secret
`

func TestLoadFromFile_AppliesDefaults(t *testing.T) {
	cfg, err := LoadFromFile(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, "payroll-assistant", cfg.App.Name)
	assert.Equal(t, "payroll_assistant", cfg.Database.Postgres.Database)
	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, 5432, cfg.Database.Postgres.Port)
	assert.Equal(t, "disable", cfg.Database.Postgres.SSLMode)
	assert.Equal(t, 10, cfg.Chat.OrderLimit)
	assert.Equal(t, 50, cfg.Chat.HistoryLimit)
	assert.Equal(t, 5000, cfg.Chat.QueryTimeout)
	assert.Equal(t, 0, cfg.Chat.CacheTTL)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "payroll-assistant", cfg.Auth.JWTIssuer)
	assert.False(t, cfg.Camunda.Enabled)
}

func TestLoadFromFile_ExpandsEnvPlaceholders(t *testing.T) {
	t.Setenv("TEST_PG_PASSWORD", "s3cret")
	cfg, err := LoadFromFile(writeConfig(t, `
database:
  postgres:
    host: localhost
    database: payroll_assistant
    user: assistant
    password: ${TEST_PG_PASSWORD}
auth:
  jwt_secret: test-secret
`))
	require.NoError(t, err)
	assert.Equal(t, "s3cret", cfg.Database.Postgres.Password)
	assert.Contains(t, cfg.Database.Postgres.GetDSN(), "password=s3cret")
}

func TestLoadFromFile_WorkerDefaults(t *testing.T) {
	cfg, err := LoadFromFile(writeConfig(t, minimalConfig+`
workers:
  handle-chat-message:
    enabled: true
`))
	require.NoError(t, err)

	w := GetWorkerConfig(cfg, "handle-chat-message")
	assert.True(t, w.Enabled)
	assert.Equal(t, 5, w.MaxJobsActive)
	assert.Equal(t, 30000, w.Timeout)
	assert.Equal(t, 3, w.MaxRetries)

	missing := GetWorkerConfig(cfg, "unknown-worker")
	assert.True(t, missing.Enabled)
}

func TestLoadFromFile_Validation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name:    "missing postgres host",
			body:    "auth:\n  jwt_secret: x\n",
			wantErr: "database.postgres.host is required",
		},
		{
			name: "missing jwt secret",
			body: `
database:
  postgres:
    host: localhost
    database: payroll_assistant
    user: assistant
`,
			wantErr: "auth.jwt_secret is required",
		},
		{
			name: "camunda enabled without broker",
			body: minimalConfig + `
camunda:
  enabled: true
`,
			wantErr: "camunda.broker_address is required",
		},
		{
			name: "bad timezone",
			body: minimalConfig + `
chat:
  timezone: Mars/Olympus_Mons
`,
			wantErr: "chat.timezone",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", "")
			t.Setenv("DB_USER", "")
			_, err := LoadFromFile(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestChatConfig_Location(t *testing.T) {
	loc, err := ChatConfig{}.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	loc, err = ChatConfig{Timezone: "UTC"}.Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())
}

func TestGetDuration(t *testing.T) {
	assert.Equal(t, 1500*time.Millisecond, GetDuration(1500))
}
