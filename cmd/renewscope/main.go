package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/renewscope/pkg/classifier"
	"github.com/umputun/renewscope/pkg/cleanup"
	"github.com/umputun/renewscope/pkg/config"
	"github.com/umputun/renewscope/pkg/content"
	"github.com/umputun/renewscope/pkg/fetcher"
	"github.com/umputun/renewscope/pkg/fields"
	"github.com/umputun/renewscope/pkg/llm"
	"github.com/umputun/renewscope/pkg/repository"
	"github.com/umputun/renewscope/pkg/scheduler"
	"github.com/umputun/renewscope/pkg/sheet"
	"github.com/umputun/renewscope/pkg/trainer"
	"github.com/umputun/renewscope/server"
)

// Opts with all CLI options
type Opts struct {
	Config  string `short:"c" long:"config" env:"CONFIG" description:"yaml config file, built-in defaults if not set"`
	Listen  string `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides config"`
	Train   string `long:"train" description:"ingest training spreadsheet (xlsx or csv) and exit"`
	Export  string `long:"export" description:"write project registry to xlsx file and exit"`
	RunOnce bool   `long:"run-once" description:"run a single batch over enabled sources and exit"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	if opts.NoColor {
		color.NoColor = true
	}
	setupLog(opts.Debug)
	log.Printf("[INFO] starting renewscope version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts)
	cancel()
	if err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}
	log.Print("[INFO] shutdown complete")
}

// run executes the mode selected by opts: training, export, single batch or the service
func run(ctx context.Context, opts Opts) error {
	cfg, err := loadConfig(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}
	if cfg.LLM.APIKey != "" {
		setupLog(opts.Debug, cfg.LLM.APIKey)
	}

	tr, err := trainer.New(cfg.Training.Profile)
	if err != nil {
		return fmt.Errorf("failed to load training profile: %w", err)
	}
	if opts.Train != "" {
		stats, err := tr.Ingest(ctx, opts.Train)
		if err != nil {
			return fmt.Errorf("failed to ingest %s: %w", opts.Train, err)
		}
		log.Printf("[INFO] training file %s ingested, %d of %d rows used, profile %s",
			opts.Train, stats.RowsUsed, stats.RowsRead, cfg.Training.Profile)
		return nil
	}

	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := repos.Close(); err != nil {
			log.Printf("[WARN] failed to close database: %v", err)
		}
	}()

	if opts.Export != "" {
		return exportRegistry(ctx, repos, opts.Export)
	}

	seeded, err := repos.Source.SeedDefaults(ctx, cfg.Sources)
	if err != nil {
		return fmt.Errorf("failed to seed sources: %w", err)
	}
	if seeded > 0 {
		log.Printf("[INFO] seeded %d sources", seeded)
	}

	sched := scheduler.NewScheduler(repos.Source, newProcessor(cfg, repos, tr), repos.Article, scheduler.Config{
		UpdateInterval:         cfg.Schedule.UpdateInterval,
		SourceDelay:            cfg.Schedule.SourceDelay,
		MaxRuntime:             cfg.Schedule.MaxRuntime,
		MaxConsecutiveFailures: cfg.Schedule.MaxConsecutiveFailures,
		RunOnStart:             cfg.Schedule.RunOnStart,
		ArticleRetention:       cfg.Schedule.ArticleRetention,
	})
	defer sched.Stop()

	if opts.RunOnce {
		p, err := sched.RunBatch(ctx)
		if err != nil {
			return fmt.Errorf("batch %s failed after %d of %d sources: %w", p.RunID, p.Processed, p.Total, err)
		}
		log.Printf("[INFO] batch %s done, %d sources, %d projects added in %v", p.RunID, p.Processed, p.ProjectsAdded, p.Elapsed)
		return nil
	}

	deps := server.Deps{
		DB:        server.NewRepositoryAdapter(repos),
		Scheduler: sched,
		Trainer:   tr,
		Cleaner:   cleanup.New(repos.Project),
	}
	if cfg.LLM.Enabled() {
		deps.Reviewer = llm.NewReviewer(cfg.LLM)
		log.Printf("[INFO] llm review enabled, model %s", cfg.LLM.Model)
	}
	srv := server.New(server.Config{
		Listen:  cfg.Server.Listen,
		Timeout: cfg.Server.Timeout,
		Version: revision,
		Debug:   opts.Debug,
	}, deps)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sched.Run(gctx)
		return nil
	})
	g.Go(func() error { return srv.Run(gctx) })
	return g.Wait()
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// newProcessor assembles the per-source pipeline from configuration
func newProcessor(cfg *config.Config, repos *repository.Repositories, tr *trainer.Trainer) *scheduler.SourceProcessor {
	return scheduler.NewSourceProcessor(scheduler.ProcessorConfig{
		Fetcher: fetcher.New(fetcher.Options{
			Timeout:       cfg.Fetcher.Timeout,
			UserAgent:     cfg.Fetcher.UserAgent,
			MaxCandidates: cfg.Fetcher.MaxCandidates,
			CategoryHops:  cfg.Fetcher.CategoryHops,
			RespectRobots: cfg.Fetcher.RespectRobots,
		}),
		Extractor: content.NewHTTPExtractor(content.Options{
			Timeout:       cfg.Extraction.Timeout,
			UserAgent:     cfg.Extraction.UserAgent,
			MinTextLength: cfg.Extraction.MinTextLength,
		}),
		Classifier: classifier.New(classifier.Params{
			CountryThreshold:  cfg.Classifier.CountryThreshold,
			CategoryThreshold: cfg.Classifier.CategoryThreshold,
			PipelineThreshold: cfg.Classifier.PipelineThreshold,
			UseSimilarity:     cfg.Classifier.UseSimilarity,
			SimilarityWeight:  cfg.Classifier.SimilarityWeight,
		}, tr),
		FieldExtractor: fields.New(cfg.Currency.USDINR),
		Projects:       repos.Project,
		Articles:       repos.Article,
		Rejections:     repos.Rejection,
		RateLimit:      cfg.Extraction.RateLimit,
	})
}

// exportRegistry writes all projects and sources to an xlsx file
func exportRegistry(ctx context.Context, repos *repository.Repositories, path string) (err error) {
	projects, err := repos.Project.List(ctx, repository.ProjectFilter{})
	if err != nil {
		return fmt.Errorf("failed to list projects: %w", err)
	}
	sources, err := repos.Source.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list sources: %w", err)
	}

	fh, err := os.Create(path) //nolint:gosec // path comes from CLI flag
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if closeErr := fh.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("failed to close %s: %w", path, closeErr))
		}
	}()

	if err := sheet.Export(fh, projects, sources); err != nil {
		return fmt.Errorf("failed to export: %w", err)
	}
	log.Printf("[INFO] exported %d projects and %d sources to %s", len(projects), len(sources), path)
	return nil
}

func setupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
