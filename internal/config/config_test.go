package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

const minimalYAML = `
telegram:
  token: "123:abc"
sheets:
  primary: "sheet-primary"
  backup: "sheet-backup"
`

func TestLoadFillsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, 600, cfg.Conversation.TimeoutSeconds)
	assert.Equal(t, 30, cfg.Conversation.SweepIntervalSeconds)
	assert.Equal(t, "Confirmadas", cfg.Sheets.ConfirmedSheet)
	assert.Equal(t, "Programadas", cfg.Sheets.ScheduledSheet)
	assert.Equal(t, 15, cfg.Sheets.AppendTimeoutSeconds)
	assert.Equal(t, "longpoll", cfg.Telegram.RunMode)
	assert.False(t, cfg.Database.Enabled)
	require.NotNil(t, cfg.CoreConfig())
	assert.Equal(t, "123:abc", cfg.CoreConfig().Telegram.Token)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SHEETS_TOKEN", "env-token")
	t.Setenv("CONVERSATION_TIMEOUT_SECONDS", "120")

	cfg, err := Load(writeConfig(t, minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, "env-token", cfg.Sheets.Token)
	assert.Equal(t, 120, cfg.Conversation.TimeoutSeconds)
}

func TestLoadRejectsMissingSpreadsheets(t *testing.T) {
	_, err := Load(writeConfig(t, `
telegram:
  token: "123:abc"
sheets:
  primary: "only-primary"
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sheets.backup")
}

func TestLoadRejectsEnabledDatabaseWithoutHost(t *testing.T) {
	_, err := Load(writeConfig(t, minimalYAML+`
database:
  enabled: true
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.host")
}

func TestLoadMessageOverrides(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalYAML+`
messages:
  cancelado: "Agur!"
`))
	require.NoError(t, err)
	assert.Equal(t, "Agur!", cfg.Messages["cancelado"])
}
