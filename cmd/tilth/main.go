// Command tilth is the CLI and MCP-server front end for the outline and
// symbol-search engine: a positional query plus --scope/--limit/--depth
// flags resolves to a file outline, a directory map, or a symbol report.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	tilth "github.com/tilth-dev/tilth"
	"github.com/tilth-dev/tilth/pkg/cache"
	"github.com/tilth-dev/tilth/pkg/hostinstall"
	"github.com/tilth-dev/tilth/pkg/mcpserver"
	"github.com/tilth-dev/tilth/pkg/util"
)

const version = "0.1.0-dev"

func main() {
	setupLogger()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "install":
		runInstall(os.Args[2:])
	case "watch":
		runWatch(os.Args[2:])
	case "version":
		fmt.Printf("tilth %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		runQuery(os.Args[1:])
	}
}

// setupLogger builds the ambient logger from TILTH_LOG_LEVEL/TILTH_LOG_FORMAT
// and installs it as the slog default, so every package that falls back to
// slog.Default() (sourcecache, walkjob) logs at the level and format the
// operator asked for. Output always goes to stderr: stdout is reserved for
// query results and, in --mcp mode, the JSON-RPC stream itself.
func setupLogger() {
	cfg := util.DefaultLoggerConfig()
	cfg.Output = os.Stderr

	if v := os.Getenv("TILTH_LOG_LEVEL"); v != "" {
		cfg.Level = util.LogLevel(strings.ToLower(v))
	}
	if v := os.Getenv("TILTH_LOG_FORMAT"); v != "" {
		cfg.Format = util.LogFormat(strings.ToLower(v))
	}

	util.SetDefault(util.NewLogger(cfg))
}

func runQuery(args []string) {
	var query, scope string
	var limit, depth *int
	useMCP := false

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--mcp":
			useMCP = true
		case "--scope":
			if i+1 < len(args) {
				i++
				scope = args[i]
			}
		case "--limit":
			if i+1 < len(args) {
				i++
				if n, err := strconv.Atoi(args[i]); err == nil {
					limit = &n
				}
			}
		case "--depth":
			if i+1 < len(args) {
				i++
				if n, err := strconv.Atoi(args[i]); err == nil {
					depth = &n
				}
			}
		default:
			if !strings.HasPrefix(args[i], "--") && query == "" {
				query = args[i]
			}
		}
	}

	outlineCache := cache.New()

	if useMCP {
		srv := mcpserver.NewServer(outlineCache, os.Getenv("TILTH_LOG_PATH"))
		defer srv.Close()
		if err := srv.ServeStdio(); err != nil {
			fmt.Fprintf(os.Stderr, "tilth: server error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if query == "" {
		fmt.Fprintln(os.Stderr, "usage: tilth <query> [--scope dir] [--limit n] [--depth n]")
		os.Exit(1)
	}

	out, err := tilth.Run(query, scope, limit, depth, outlineCache)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tilth: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(out)
}

func runInstall(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(os.Stderr, "usage: tilth install <%s>\n", strings.Join(hostinstall.SupportedHosts, "|"))
		os.Exit(1)
	}
	if err := hostinstall.Install(args[0]); err != nil {
		fmt.Fprintf(os.Stderr, "tilth: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: tilth <query> [--scope dir] [--limit n] [--depth n] [--mcp]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  install <host>   Register tilth as an MCP server for host")
	fmt.Println("  watch <path>     Re-render an outline on every save (best-effort)")
	fmt.Println("  version          Print version")
	fmt.Println("  help             Show this help message")
	fmt.Println()
	fmt.Println("Env:")
	fmt.Println("  TILTH_LOG_LEVEL   debug|info|warn|error (default info)")
	fmt.Println("  TILTH_LOG_FORMAT  json|text (default json)")
}
