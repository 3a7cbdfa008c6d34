package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"notable/internal/app"
	"notable/internal/backend"
	"notable/internal/config"
	"notable/internal/logging"
	"notable/internal/session"
	"notable/internal/store"
)

const usageText = `notable is a terminal client for a hosted notes backend.

Usage:
  notable [command] [flags]

Commands:
  ui       run the terminal UI (default)
  init     write an example config file
  config   print the config file path
  version  print the build version
  help     show help

UI flags:
  --backend-url   override the configured backend URL
  --anon-key      override the configured anon key
  --log-level     override the configured log level
`

const version = "dev"

const exampleConfig = `[backend]
url = "YOUR_BACKEND_URL"
anon_key = "YOUR_BACKEND_ANON_KEY"

[logging]
level = "info"
`

func printUsage() {
	fmt.Fprint(os.Stderr, usageText)
}

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		exitOnErr("ui", runUI(nil))
		return
	}

	switch args[0] {
	case "-h", "--help", "help":
		printUsage()
	case "ui":
		exitOnErr("ui", runUI(args[1:]))
	case "init":
		exitOnErr("init", runInit(args[1:]))
	case "config":
		exitOnErr("config", runConfig(args[1:]))
	case "version":
		fmt.Fprintln(os.Stdout, buildVersion())
	default:
		if args[0][0] == '-' {
			exitOnErr("ui", runUI(args))
			return
		}
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", args[0])
		printUsage()
		os.Exit(2)
	}
}

func runUI(args []string) error {
	fs := flag.NewFlagSet("ui", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	backendURL := fs.String("backend-url", "", "override the configured backend URL")
	anonKey := fs.String("anon-key", "", "override the configured anon key")
	logLevel := fs.String("log-level", "", "override the configured log level")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if *backendURL != "" {
		cfg.Backend.URL = *backendURL
	}
	if *anonKey != "" {
		cfg.Backend.AnonKey = *anonKey
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}

	// No client is constructed and nothing touches the network until the
	// config passes validation.
	if err := cfg.Validate(); err != nil {
		if path, pathErr := config.ConfigPath(); pathErr == nil {
			return fmt.Errorf("%w\n(run `notable init`, then edit %s)", err, path)
		}
		return err
	}

	logger, closer, logErr := openLogger(cfg)
	if closer != nil {
		defer closer.Close()
	}
	if logErr != nil {
		fmt.Fprintf(os.Stderr, "logging disabled: %v\n", logErr)
	}

	sessionPath, err := config.SessionPath()
	if err != nil {
		return err
	}
	client := backend.New(cfg.BackendURL(), cfg.AnonKey())
	manager := session.NewManager(client, store.NewFileSessionStore(sessionPath), logger.With(logging.F("component", "session")))
	api := app.NewClientAPI(manager, client)

	logger.Info("starting ui", logging.F("backend", cfg.BackendURL()), logging.F("version", buildVersion()))
	return app.Run(api, api, logger.With(logging.F("component", "ui")))
}

func openLogger(cfg config.Config) (logging.Logger, interface{ Close() error }, error) {
	path, err := cfg.LogFile()
	if err != nil {
		return logging.Nop(), nil, err
	}
	logger, closer, err := logging.NewFile(path, logging.ParseLevel(cfg.LogLevel()))
	if err != nil {
		return logging.Nop(), nil, err
	}
	return logger, closer, nil
}

func runInit(args []string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	force := fs.Bool("force", false, "overwrite an existing config file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	path, err := config.ConfigPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil && !*force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(exampleConfig), 0o600); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "wrote %s\nedit it and replace the placeholder backend credentials\n", path)
	return nil
}

func runConfig(args []string) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	path, err := config.ConfigPath()
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, path)
	return nil
}

func exitOnErr(label string, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "%s error: %v\n", label, err)
	os.Exit(1)
}

func buildVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		var revision string
		var modified string
		for _, setting := range info.Settings {
			switch setting.Key {
			case "vcs.revision":
				revision = setting.Value
			case "vcs.modified":
				modified = setting.Value
			}
		}
		if revision != "" {
			if modified == "true" {
				return revision + "-dirty"
			}
			return revision
		}
	}
	return version
}
