package hostinstall

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(old) })
}

func TestInstallCreatesConfigForClaudeCode(t *testing.T) {
	chdir(t, t.TempDir())

	require.NoError(t, Install("claude-code"))

	raw, err := os.ReadFile(".mcp.json")
	require.NoError(t, err)

	var config map[string]any
	require.NoError(t, json.Unmarshal(raw, &config))

	servers := config["mcpServers"].(map[string]any)
	tilth := servers["tilth"].(map[string]any)
	assert.Equal(t, "tilth", tilth["command"])
}

func TestInstallPreservesExistingServers(t *testing.T) {
	chdir(t, t.TempDir())

	initial := `{"mcpServers": {"other": {"command": "other-tool"}}}`
	require.NoError(t, os.WriteFile(".mcp.json", []byte(initial), 0o644))

	require.NoError(t, Install("claude-code"))

	raw, err := os.ReadFile(".mcp.json")
	require.NoError(t, err)
	var config map[string]any
	require.NoError(t, json.Unmarshal(raw, &config))

	servers := config["mcpServers"].(map[string]any)
	assert.Contains(t, servers, "other")
	assert.Contains(t, servers, "tilth")
}

func TestInstallIsIdempotent(t *testing.T) {
	chdir(t, t.TempDir())

	require.NoError(t, Install("claude-code"))
	require.NoError(t, Install("claude-code"))

	raw, err := os.ReadFile(".mcp.json")
	require.NoError(t, err)
	var config map[string]any
	require.NoError(t, json.Unmarshal(raw, &config))
	servers := config["mcpServers"].(map[string]any)
	assert.Len(t, servers, 1)
}

func TestInstallCreatesNestedDirForCursor(t *testing.T) {
	chdir(t, t.TempDir())

	require.NoError(t, Install("cursor"))

	_, err := os.Stat(filepath.Join(".cursor", "mcp.json"))
	assert.NoError(t, err)
}

func TestInstallRejectsUnknownHost(t *testing.T) {
	chdir(t, t.TempDir())

	err := Install("vscode")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown host")
	assert.Contains(t, err.Error(), "claude-code")
}
