package main

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"impacted/internal/config"
	"impacted/internal/discover"
	"impacted/internal/gitstate"
	"impacted/internal/graph"
	"impacted/internal/history"
	"impacted/internal/parser"
	"impacted/internal/resolver"
	"impacted/internal/shared/observability"
	"impacted/internal/shared/util"
	"impacted/internal/strategy"
	"impacted/internal/watcher"
)

// App wires discovery, parsing, strategies and history into the run loop.
type App struct {
	cfg        *config.Config
	discoverer *discover.Discoverer
	builder    *graph.Builder
	strategy   strategy.Strategy
	store      *history.Store
	limiter    *util.Limiter
}

// RunResult is everything one analysis run produced.
type RunResult struct {
	ChangedFiles    []string
	ChangedModules  []string
	ImpactedModules []string
	ImpactedPaths   []string
	PathsByModule   map[string]string
	Duration        time.Duration
}

func NewApp(cfg *config.Config) (*App, error) {
	discoverer := discover.NewDiscoverer(cfg.RootDir)
	p := parser.NewParser(parser.NewGrammarLoader())
	builder := graph.NewBuilder(discoverer, p)

	composite := strategy.NewComposite(
		strategy.NewGraphStrategy(builder),
		strategy.NewFixtureStrategy(discoverer, cfg.FixtureFiles),
	)

	app := &App{
		cfg:        cfg,
		discoverer: discoverer,
		builder:    builder,
		strategy:   composite,
		limiter:    util.NewLimiter(cfg.Watch.RatePerSecond, cfg.Watch.Burst),
	}

	if cfg.HistoryPath != "" {
		store, err := history.Open(cfg.HistoryPath)
		if err != nil {
			return nil, err
		}
		app.store = store
	}

	return app, nil
}

func (a *App) Close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			slog.Warn("failed to close history store", "error", err)
		}
	}
}

// RunOnce performs one full analysis: diff, resolve, impact, translate back
// to paths. An empty diff is a normal empty result.
func (a *App) RunOnce() (*RunResult, error) {
	start := time.Now()
	observability.RunsTotal.WithLabelValues(a.cfg.GitMode).Inc()

	mode, err := gitstate.ParseMode(a.cfg.GitMode)
	if err != nil {
		return nil, err
	}

	changedFiles, err := gitstate.FindModifiedFiles(a.cfg.RootDir, mode, a.cfg.BaseBranch)
	if err != nil {
		return nil, err
	}

	res := &RunResult{ChangedFiles: changedFiles}
	if len(changedFiles) == 0 {
		slog.Info("no modified files found for the chosen git state")
		a.finishRun(res, start)
		return res, nil
	}
	slog.Debug("modified files", "count", len(changedFiles))

	modules := a.modulesTable()
	pathResolver := resolver.NewPathResolver(a.cfg.RootDir, []string{a.cfg.Package, a.testsPackageName()}, modules)

	res.ChangedModules = pathResolver.FilesToModules(changedFiles)
	if len(res.ChangedModules) == 0 && !a.anyFixtureChanged(changedFiles) {
		slog.Info("no changed files resolved to known modules")
		a.finishRun(res, start)
		return res, nil
	}

	impacted, err := a.strategy.FindImpactedTests(strategy.Inputs{
		ChangedFiles:   changedFiles,
		ChangedModules: res.ChangedModules,
		Package:        a.cfg.Package,
		TestsPackage:   a.testsPackageName(),
		RootDir:        a.cfg.RootDir,
	})
	if err != nil {
		return nil, err
	}
	res.ImpactedModules = impacted
	res.ImpactedPaths = pathResolver.ModulesToFiles(impacted)
	res.PathsByModule = make(map[string]string, len(impacted))
	for _, name := range impacted {
		if path, ok := pathResolver.PathOf(name); ok {
			res.PathsByModule[name] = path
		}
	}

	if len(res.ImpactedModules) == 0 {
		slog.Info("no impacted tests found for the current change set")
	}

	a.finishRun(res, start)
	return res, nil
}

func (a *App) finishRun(res *RunResult, start time.Time) {
	res.Duration = time.Since(start)
	observability.AnalysisDuration.WithLabelValues("run").Observe(res.Duration.Seconds())
	observability.ImpactedTestsLastRun.Set(float64(len(res.ImpactedModules)))

	if a.store != nil {
		_, err := a.store.SaveRun(history.Run{
			GitMode:        a.cfg.GitMode,
			BaseBranch:     a.cfg.BaseBranch,
			ChangedFiles:   len(res.ChangedFiles),
			ChangedModules: len(res.ChangedModules),
			ImpactedTests:  res.ImpactedModules,
		})
		if err != nil {
			slog.Warn("failed to record run history", "error", err)
		}
	}
}

// Watch re-runs the analysis on every debounced batch of file changes. The
// limiter keeps rapid editor churn from stacking up full re-analyses.
func (a *App) Watch(onResult func(*RunResult)) error {
	res, err := a.RunOnce()
	if err != nil {
		return err
	}
	onResult(res)

	w, err := watcher.NewWatcher(a.cfg.Watch.Debounce, a.cfg.Watch.ExcludeDirs, a.cfg.Watch.ExcludeFiles, func(paths []string) {
		if !a.limiter.Allow(1) {
			slog.Debug("change batch dropped by rate limiter", "files", len(paths))
			return
		}
		slog.Debug("files changed, re-running analysis", "files", len(paths))
		a.discoverer.Invalidate()
		res, err := a.RunOnce()
		if err != nil {
			slog.Error("analysis failed", "error", err)
			return
		}
		onResult(res)
	})
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Watch(a.watchRoots()); err != nil {
		return err
	}

	select {} // watch mode runs until interrupted
}

// PrintGraph dumps the affects graph adjacency, one node per line.
func (a *App) PrintGraph(w io.Writer) error {
	affects, err := a.builder.Build(a.cfg.Package, a.testsPackageName())
	if err != nil {
		return err
	}
	for _, node := range affects.Nodes() {
		fmt.Fprintf(w, "%s -> [%s]\n", node, strings.Join(affects.Successors(node), ", "))
	}
	return nil
}

func (a *App) PrintRecentRuns(w io.Writer, limit int) error {
	if a.store == nil {
		return fmt.Errorf("no history store configured, set history_path in impacted.toml")
	}
	runs, err := a.store.RecentRuns(limit)
	if err != nil {
		return err
	}
	for _, run := range runs {
		fmt.Fprintf(w, "%s  %s  mode=%s changed=%d impacted=%d\n",
			run.Timestamp.Format(time.RFC3339), run.ID[:8], run.GitMode, run.ChangedFiles, len(run.ImpactedTests))
	}
	return nil
}

func (a *App) modulesTable() map[string]string {
	modules := a.discoverer.Discover(a.cfg.Package)
	if tests := a.testsPackageName(); tests != "" {
		for name, path := range a.discoverer.Discover(tests) {
			modules[name] = path
		}
	}
	return modules
}

// testsPackageName prefers the explicit tests package and falls back to the
// tests directory's base name.
func (a *App) testsPackageName() string {
	if a.cfg.TestsPackage != "" {
		return a.cfg.TestsPackage
	}
	if a.cfg.TestsDir != "" {
		return filepath.Base(filepath.Clean(a.cfg.TestsDir))
	}
	return ""
}

func (a *App) anyFixtureChanged(files []string) bool {
	for _, file := range files {
		base := filepath.Base(file)
		for _, name := range a.cfg.FixtureFiles {
			if base == name {
				return true
			}
		}
	}
	return false
}

func (a *App) watchRoots() []string {
	roots := []string{filepath.Join(a.cfg.RootDir, strings.Split(a.cfg.Package, ".")[0])}
	if a.cfg.TestsDir != "" {
		dir := a.cfg.TestsDir
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(a.cfg.RootDir, dir)
		}
		roots = append(roots, dir)
	} else if a.cfg.TestsPackage != "" {
		roots = append(roots, filepath.Join(a.cfg.RootDir, strings.Split(a.cfg.TestsPackage, ".")[0]))
	}
	return roots
}
