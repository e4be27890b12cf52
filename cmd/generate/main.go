package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/edu-fixtures/internal/generator"
	"github.com/noah-isme/edu-fixtures/internal/media"
	"github.com/noah-isme/edu-fixtures/internal/spec"
	"github.com/noah-isme/edu-fixtures/internal/sqlout"
	"github.com/noah-isme/edu-fixtures/pkg/config"
	appErrors "github.com/noah-isme/edu-fixtures/pkg/errors"
	"github.com/noah-isme/edu-fixtures/pkg/logger"
)

func main() {
	specFlag := flag.String("spec", "", "path to the universe spec file (overrides SPEC_FILE)")
	outFlag := flag.String("out", "", "path of the generated SQL script (overrides OUTPUT_FILE)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if *specFlag != "" {
		cfg.Paths.SpecFile = *specFlag
	} else if flag.NArg() > 0 {
		cfg.Paths.SpecFile = flag.Arg(0)
	}
	if *outFlag != "" {
		cfg.Paths.OutputFile = *outFlag
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	today := time.Now()
	if cfg.Today != "" {
		today, err = time.Parse("2006-01-02", cfg.Today)
		if err != nil {
			logr.Fatal("invalid TODAY override, expected YYYY-MM-DD", zap.String("today", cfg.Today))
		}
	}

	logr.Info("generation starting",
		zap.String("spec", cfg.Paths.SpecFile),
		zap.String("output", cfg.Paths.OutputFile),
		zap.Int64("seed", cfg.Seed),
		zap.Time("today", today))

	store, err := spec.Load(cfg.Paths.SpecFile)
	if err != nil {
		fail(logr, "spec file unreadable", err)
	}
	for _, w := range store.Warnings() {
		logr.Warn("spec file anomaly", zap.String("detail", w))
	}

	genCfg, err := generator.BuildConfig(store, cfg.Volumes)
	if err != nil {
		fail(logr, "spec file invalid", err)
	}

	catalog, err := media.Scan(cfg.Paths.MediaDir, cfg.Media.SupabaseBaseURL, cfg.Media.SupabaseBucket,
		rand.New(rand.NewSource(cfg.Seed)))
	if err != nil {
		fail(logr, "media directory invalid", err)
	}

	sink := sqlout.NewSink(cfg.Volumes.InsertChunkSize)
	gen := generator.New(genCfg, catalog, sink, cfg.Seed, today, logr)

	runErr := gen.Run()
	if runErr == nil {
		sink.AppendSnippets(cfg.Paths.SnippetDir, "tail.sql")
	}

	// Completed phases are written out even when a later phase failed, so a
	// partial script is available for inspection.
	if err := sink.WriteFile(cfg.Paths.OutputFile); err != nil {
		fail(logr, "could not write output script", err)
	}

	if runErr != nil {
		fail(logr, "generation aborted, partial script written", runErr)
	}

	logr.Info("script written",
		zap.String("output", cfg.Paths.OutputFile),
		zap.Int("statements", len(sink.Statements())),
		zap.Int("warnings", sink.WarningCount()))
}

func fail(logr *zap.Logger, msg string, err error) {
	appErr := appErrors.FromError(err)
	logr.Error(msg, zap.String("code", appErr.Code), zap.Error(err))
	fmt.Fprintf(os.Stderr, "%s: %v\n", msg, err)
	logr.Sync() //nolint:errcheck
	os.Exit(1)
}
