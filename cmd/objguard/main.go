package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/viant/afs"
	"github.com/viant/objguard/analyzer"
	"github.com/viant/objguard/baseline"
	"github.com/viant/objguard/config"
	"github.com/viant/objguard/finding"
	"github.com/viant/objguard/inspector/javascript"
	"github.com/viant/objguard/linter"
	"github.com/viant/objguard/report"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	exitClean    = 0
	exitFindings = 1
	exitError    = 2
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	configURL      string
	format         string
	baseline       string
	updateBaseline bool
	rules          listValue
	guards         listValue
	skipTests      bool
	verbose        bool
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts := &options{}
	flags := flag.NewFlagSet("objguard", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVar(&opts.configURL, "config", "", "configuration file (.yaml, .yml or .ini)")
	flags.StringVar(&opts.format, "format", "", "output format: text, json or yaml")
	flags.StringVar(&opts.baseline, "baseline", "", "baseline database of accepted findings")
	flags.BoolVar(&opts.updateBaseline, "update-baseline", false, "record current findings in the baseline and exit")
	flags.Var(&opts.rules, "rule", "enable a rule, repeatable")
	flags.Var(&opts.guards, "guard", "guard utility function name for "+analyzer.NoObjectUpdateID+", repeatable")
	flags.BoolVar(&opts.skipTests, "skip-tests", false, "skip *.test.* and *.spec.* files")
	flags.BoolVar(&opts.verbose, "v", false, "debug logging")
	flags.Usage = func() {
		fmt.Fprintf(stderr, "usage: objguard [flags] [file or directory ...]\n")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitClean
		}
		return exitError
	}
	locations := flags.Args()
	if len(locations) == 0 {
		locations = []string{"."}
	}

	logger := newLogger(opts.verbose, stderr)
	defer func() { _ = logger.Sync() }()

	result, err := lint(ctx, opts, locations, logger, stdout)
	if err != nil {
		fmt.Fprintf(stderr, "objguard: %v\n", err)
		return exitError
	}
	if result == nil || len(result.Findings) == 0 {
		return exitClean
	}
	return exitFindings
}

func lint(ctx context.Context, opts *options, locations []string, logger *zap.Logger, stdout io.Writer) (*finding.Result, error) {
	fs := afs.New()
	cfg, err := loadConfig(ctx, fs, opts.configURL, locations[0])
	if err != nil {
		return nil, err
	}
	for _, id := range opts.rules {
		cfg.Enable(id)
	}
	if len(opts.guards) > 0 {
		cfg.Enable(analyzer.NoObjectUpdateID, opts.guards...)
	}
	if opts.format != "" {
		cfg.Format = opts.format
	}
	if opts.baseline != "" {
		cfg.Baseline = opts.baseline
	}
	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	if opts.updateBaseline && cfg.Baseline == "" {
		return nil, fmt.Errorf("-update-baseline requires a baseline location")
	}

	lintOptions := []linter.Option{linter.WithLogger(logger), linter.WithFS(fs), linter.WithConfig(cfg)}
	if opts.skipTests {
		lintOptions = append(lintOptions, linter.WithSkipTests())
	}
	var store *baseline.Store
	if cfg.Baseline != "" {
		if store, err = baseline.Open(cfg.Baseline); err != nil {
			return nil, err
		}
		defer store.Close()
		if !opts.updateBaseline {
			lintOptions = append(lintOptions, linter.WithBaseline(store))
		}
	}

	result, err := linter.New(lintOptions...).Lint(ctx, locations...)
	if err != nil {
		return nil, err
	}
	if opts.updateBaseline {
		return nil, updateBaseline(ctx, store, result, logger.With(zap.String("location", cfg.Baseline)))
	}
	if err = report.Write(stdout, result, cfg.Format); err != nil {
		return nil, err
	}
	return result, nil
}

// updateBaseline records current findings and drops accepted ones no longer reported in linted files
func updateBaseline(ctx context.Context, store *baseline.Store, result *finding.Result, logger *zap.Logger) error {
	if err := store.Record(ctx, result.Findings); err != nil {
		return err
	}
	byPath := map[string][]*finding.Finding{}
	for _, f := range result.Findings {
		byPath[f.Path] = append(byPath[f.Path], f)
	}
	pruned := 0
	for _, path := range result.Paths {
		count, err := store.Prune(ctx, path, byPath[path])
		if err != nil {
			return fmt.Errorf("failed to prune baseline for %v: %w", path, err)
		}
		pruned += count
	}
	total, err := store.Count(ctx)
	if err != nil {
		return err
	}
	logger.Info("baseline updated",
		zap.Int("recorded", len(result.Findings)),
		zap.Int("pruned", pruned),
		zap.Int("accepted", total))
	return nil
}

// loadConfig reads configURL, or discovers a configuration file next to the first location
func loadConfig(ctx context.Context, fs afs.Service, configURL, location string) (*config.Config, error) {
	if configURL != "" {
		return config.Load(ctx, fs, configURL)
	}
	root := location
	if javascript.IsSource(location) {
		root = filepath.Dir(location)
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	cfg, _, err := config.Discover(ctx, fs, root)
	return cfg, err
}

func newLogger(verbose bool, w io.Writer) *zap.Logger {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	encoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	return zap.New(zapcore.NewCore(encoder, zapcore.AddSync(w), level)).Named("objguard")
}
