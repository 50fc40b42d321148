package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"shellmate/internal/adapter/executor"
	"shellmate/internal/adapter/history"
	"shellmate/internal/adapter/sysinfo"
	"shellmate/internal/infra/config"
	"shellmate/internal/infra/logger"
	"shellmate/internal/infra/tracer"
	"shellmate/internal/usecase/shell"
	"shellmate/internal/usecase/translate"
)

var version = "dev"

func main() {
	if len(os.Args) >= 2 {
		switch os.Args[1] {
		case "--help", "-h", "help":
			showUsage()
			return
		case "version":
			fmt.Println("shellmate", version)
			return
		}
	}

	if len(os.Args) < 2 || strings.HasPrefix(os.Args[1], "-") {
		if err := runREPL(); err != nil {
			fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
			os.Exit(1)
		}
		return
	}

	switch os.Args[1] {
	case "serve":
		if err := runServe(); err != nil {
			fmt.Fprintf(os.Stderr, "serve: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\nRun 'shellmate --help' for usage information.\n", os.Args[1])
		os.Exit(1)
	}
}

func showUsage() {
	fmt.Println(`shellmate - Interactive terminal with natural language commands

USAGE:
    shellmate [COMMAND] [FLAGS]

COMMANDS:
    serve       Run the web terminal server
    version     Print the version

    (no command) - Run the interactive terminal

FLAGS:
    -h, --help         Show this help message
    --config PATH      Specify config file path (default: ./config.yaml)
    --ai               Start with AI interpretation enabled
    --no-ai            Start with AI interpretation disabled
    --addr ADDR        Listen address for 'serve' (e.g. :5000)

CONFIGURATION:
    Config file: ./config.yaml
    Environment: SHELLMATE_* variables override config

EXAMPLES:
    shellmate                    # Interactive terminal
    shellmate --ai               # Interactive terminal, AI mode on
    shellmate serve --addr :8080 # Web terminal on port 8080`)
}

// cliFlags holds optional CLI flags.
type cliFlags struct {
	ConfigPath string
	Addr       string
	AI         *bool
}

// parseFlags extracts --config, --addr, --ai/--no-ai from os.Args.
func parseFlags() cliFlags {
	flags := cliFlags{ConfigPath: "./config.yaml"}
	boolPtr := func(v bool) *bool { return &v }
	for i := 1; i < len(os.Args); i++ {
		switch {
		case os.Args[i] == "--config" && i+1 < len(os.Args):
			flags.ConfigPath = os.Args[i+1]
			i++
		case strings.HasPrefix(os.Args[i], "--config="):
			flags.ConfigPath = strings.TrimPrefix(os.Args[i], "--config=")
		case os.Args[i] == "--addr" && i+1 < len(os.Args):
			flags.Addr = os.Args[i+1]
			i++
		case strings.HasPrefix(os.Args[i], "--addr="):
			flags.Addr = strings.TrimPrefix(os.Args[i], "--addr=")
		case os.Args[i] == "--ai":
			flags.AI = boolPtr(true)
		case os.Args[i] == "--no-ai":
			flags.AI = boolPtr(false)
		}
	}
	return flags
}

// runtime bundles the wired application components.
type runtime struct {
	cfg        *config.Config
	log        *slog.Logger
	engine     *shell.Engine
	translator *translate.Translator
	sessions   *shell.Manager
	store      *history.SQLiteStore

	closers []func() error
}

// build loads configuration and wires the engine, translator, sessions
// and optional persistent history store.
func build(ctx context.Context, flags cliFlags) (*runtime, error) {
	cfg, err := config.Load(flags.ConfigPath)
	if err != nil {
		return nil, err
	}
	if flags.Addr != "" {
		cfg.Server.Addr = flags.Addr
	}
	if flags.AI != nil {
		cfg.AI.Enabled = *flags.AI
	}

	log, closeLog, err := logger.New(cfg.Logger)
	if err != nil {
		return nil, err
	}

	rt := &runtime{cfg: cfg, log: log}
	rt.closers = append(rt.closers, closeLog)

	shutdownTracer, err := tracer.Setup(ctx, cfg.Tracer)
	if err != nil {
		rt.close()
		return nil, err
	}
	rt.closers = append(rt.closers, func() error { return shutdownTracer(context.Background()) })

	collector := sysinfo.New()
	registry := shell.NewRegistry(collector)
	runner := executor.NewLocal(cfg.Executor.Timeout, log)
	rt.engine = shell.NewEngine(registry, runner, log)
	rt.translator = translate.New(log)
	rt.sessions = shell.NewManager()

	if cfg.History.Enabled {
		if err := os.MkdirAll(filepath.Dir(cfg.History.Path), 0o700); err != nil {
			log.Warn("create history dir", "path", cfg.History.Path, "error", err)
		} else if store, err := history.NewSQLiteStore(cfg.History.Path); err != nil {
			log.Warn("open history store", "path", cfg.History.Path, "error", err)
		} else {
			rt.store = store
			rt.closers = append(rt.closers, store.Close)
		}
	}

	return rt, nil
}

// close releases runtime resources in reverse acquisition order.
func (rt *runtime) close() {
	for i := len(rt.closers) - 1; i >= 0; i-- {
		if err := rt.closers[i](); err != nil {
			fmt.Fprintf(os.Stderr, "shutdown: %v\n", err)
		}
	}
}
