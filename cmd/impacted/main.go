package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"impacted/internal/config"
	"impacted/internal/core/errors"
)

var (
	configPath   = flag.String("config", "./impacted.toml", "Path to config file")
	pkgName      = flag.String("package", "", "Dotted package name to analyze (overrides config)")
	testsPackage = flag.String("tests-package", "", "Dotted tests package name (overrides config)")
	testsDir     = flag.String("tests-dir", "", "Directory containing test files (overrides config)")
	rootDir      = flag.String("root", "", "Project root directory (overrides config)")
	gitMode      = flag.String("mode", "", "Git mode: unstaged or branch (overrides config)")
	baseBranch   = flag.String("base-branch", "", "Base branch for branch mode (overrides config)")
	watch        = flag.Bool("watch", false, "Re-run the analysis whenever watched files change")
	ui           = flag.Bool("ui", false, "Enable terminal UI mode (implies -watch)")
	listModules  = flag.Bool("list-modules", false, "Dump the affects graph adjacency and exit")
	recentRuns   = flag.Int("recent", 0, "Print the N most recent runs from history and exit")
	verbose      = flag.Bool("verbose", false, "Enable verbose logging")
	version      = flag.Bool("version", false, "Print version and exit")
)

const VERSION = "1.0.0"

func main() {
	flag.Parse()

	if *version {
		fmt.Printf("impacted v%s\n", VERSION)
		os.Exit(0)
	}

	// Setup logging. Results go to stdout, diagnostics to stderr, so the
	// output can be piped straight into a test runner.
	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}

	logOutput := os.Stderr
	if *ui {
		// In UI mode, avoid terminal logs corrupting the TUI.
		logPath := resolveLogPath()
		if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to create log dir for %s: %v\n", logPath, err)
		} else if f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600); err == nil {
			logOutput = f
		} else {
			fmt.Fprintf(os.Stderr, "warning: failed to open log file %s: %v\n", logPath, err)
		}
	}

	logger := slog.New(slog.NewTextHandler(logOutput, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	cfg, err := loadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	applyFlagOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		if errors.IsCode(err, errors.CodeUsageError) {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	slog.Info("impacted: " + cfg.Summary())

	app, err := NewApp(cfg)
	if err != nil {
		slog.Error("failed to initialize", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	switch {
	case *recentRuns > 0:
		err = app.PrintRecentRuns(os.Stdout, *recentRuns)
	case *listModules:
		err = app.PrintGraph(os.Stdout)
	case *ui:
		err = runUI(app)
	case *watch:
		err = app.Watch(func(res *RunResult) {
			printResult(res)
		})
	default:
		var res *RunResult
		res, err = app.RunOnce()
		if err == nil {
			printResult(res)
		}
	}

	if err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(*configPath)
	if err != nil {
		// The config file is optional when everything arrives via flags.
		if os.IsNotExist(err) && *configPath == "./impacted.toml" {
			return config.Default(), nil
		}
		return nil, err
	}
	return cfg, nil
}

func applyFlagOverrides(cfg *config.Config) {
	if *pkgName != "" {
		cfg.Package = *pkgName
	}
	if *testsPackage != "" {
		cfg.TestsPackage = *testsPackage
	}
	if *testsDir != "" {
		cfg.TestsDir = *testsDir
	}
	if *rootDir != "" {
		cfg.RootDir = *rootDir
	}
	if *gitMode != "" {
		cfg.GitMode = *gitMode
	}
	if *baseBranch != "" {
		cfg.BaseBranch = *baseBranch
	}
}

func printResult(res *RunResult) {
	if len(res.ImpactedPaths) == 0 {
		slog.Info("no impacted tests found")
		return
	}
	for _, path := range res.ImpactedPaths {
		fmt.Println(path)
	}
}

func resolveLogPath() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "impacted", "impacted.log")
	}
	return filepath.Join(os.TempDir(), "impacted.log")
}
