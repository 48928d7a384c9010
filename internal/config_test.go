package internal

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apperrors "agent-lab/errors"
)

func TestLoad_Defaults(t *testing.T) {
	req := require.New(t)
	t.Setenv("OPENROUTER_API_KEY", "sk-test")

	config, err := Load()
	req.NoError(err)
	req.Equal("meta-llama/llama-3.1-8b-instruct:free", config.OpenRouterModel)
	req.Equal("https://openrouter.ai/api/v1", config.OpenRouterBaseURL)
	req.True(config.AgentEnabled)
	req.InDelta(0.7, config.AgentTemperature, 1e-9)
	req.Equal(2000, config.AgentMaxTokens)
	req.Equal(60*time.Second, config.AgentTimeout)
	req.Equal("vault", config.VaultDir)
	req.Equal(2*time.Second, config.PollInterval)
	req.Equal("INFO", config.LogLevel)
}

func TestLoad_MissingKeyWithAgentEnabled(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "")
	t.Setenv("AGENT_ENABLED", "true")

	_, err := Load()
	require.ErrorIs(t, err, apperrors.ErrMissingAPIKey)
}

func TestLoad_MissingKeyWithAgentDisabled(t *testing.T) {
	req := require.New(t)
	t.Setenv("OPENROUTER_API_KEY", "")
	t.Setenv("AGENT_ENABLED", "false")

	config, err := Load()
	req.NoError(err)
	req.False(config.AgentEnabled)
}

func TestLoad_RejectsBadLogLevel(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "sk-test")
	t.Setenv("LOG_LEVEL", "CHATTY")

	_, err := Load()
	require.ErrorContains(t, err, "config validation")
}

func TestVault_Ensure(t *testing.T) {
	req := require.New(t)

	root := filepath.Join(t.TempDir(), "vault")
	vault := NewVault(root)
	req.NoError(vault.Ensure())

	for _, dir := range []string{vault.Inbox, vault.Processed, vault.Actions, vault.Logs, vault.Archive, vault.Index} {
		info, err := os.Stat(dir)
		req.NoError(err)
		req.True(info.IsDir())
	}

	// Idempotent.
	req.NoError(vault.Ensure())
}
