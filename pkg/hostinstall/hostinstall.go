// Package hostinstall implements the `install <host>` CLI subcommand:
// idempotently registering tilth as an MCP server in a host's JSON config,
// preserving whatever else is already there. Ported from
// original_source/src/install.rs, which this package's structure and error
// messages follow closely.
package hostinstall

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// SupportedHosts lists the hosts install.rs recognizes, in the order they
// should be printed in a usage/error message.
var SupportedHosts = []string{"claude-code", "cursor", "windsurf", "claude-desktop"}

// Install writes or merges a "tilth" entry under "mcpServers" into host's
// config file, creating parent directories and the file itself as needed,
// and preserving any pre-existing entries and unrelated top-level keys.
func Install(host string) error {
	configPath, err := configPathFor(host)
	if err != nil {
		return err
	}

	config := map[string]any{}
	if raw, err := os.ReadFile(configPath); err == nil {
		if err := json.Unmarshal(raw, &config); err != nil {
			return fmt.Errorf("hostinstall: invalid JSON in %s: %w", configPath, err)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("hostinstall: read %s: %w", configPath, err)
	}

	servers, ok := config["mcpServers"].(map[string]any)
	if !ok {
		servers = map[string]any{}
	}
	servers["tilth"] = map[string]any{
		"command": "tilth",
		"args":    []string{"--mcp"},
	}
	config["mcpServers"] = servers

	if dir := filepath.Dir(configPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("hostinstall: create %s: %w", dir, err)
		}
	}

	out, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("hostinstall: encode config: %w", err)
	}
	if err := os.WriteFile(configPath, out, 0o644); err != nil {
		return fmt.Errorf("hostinstall: write %s: %w", configPath, err)
	}

	fmt.Fprintf(os.Stderr, "tilth added to %s\n", configPath)
	return nil
}

func configPathFor(host string) (string, error) {
	switch host {
	case "claude-code":
		return ".mcp.json", nil
	case "cursor":
		return filepath.Join(".cursor", "mcp.json"), nil
	case "windsurf":
		return filepath.Join(".windsurf", "mcp.json"), nil
	case "claude-desktop":
		return claudeDesktopPath()
	default:
		return "", fmt.Errorf("hostinstall: unknown host %q; supported: %s", host, strings.Join(SupportedHosts, ", "))
	}
}

func claudeDesktopPath() (string, error) {
	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("hostinstall: resolve home directory: %w", err)
		}
		return filepath.Join(home, "Library", "Application Support", "Claude", "claude_desktop_config.json"), nil
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			return "", fmt.Errorf("hostinstall: APPDATA not set")
		}
		return filepath.Join(appData, "Claude", "claude_desktop_config.json"), nil
	default:
		return "", fmt.Errorf("hostinstall: claude-desktop config path unknown on %s", runtime.GOOS)
	}
}
