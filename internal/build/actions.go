// Package build wires the corpus build command.
package build

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/pemistahl/lingua-go"
	"github.com/urfave/cli/v2"

	"github.com/kotobalab/aozoracb/models"
	"github.com/kotobalab/aozoracb/pkg/metadata"
	"github.com/kotobalab/aozoracb/pkg/pipeline"
	"github.com/kotobalab/aozoracb/pkg/report"
	"github.com/kotobalab/aozoracb/pkg/tokenizer"
)

// languageSampleRunes bounds how much text the detector sees per work;
// detection quality plateaus well before that.
const languageSampleRunes = 1000

// BuildAction runs the full corpus build: catalog in, tokenized text files
// and augmented catalog out.
func BuildAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	logLevel := slog.LevelInfo
	if cfg.Quiet {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	startTime := time.Now()

	store, err := report.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to open report database: %w", err)
	}
	defer store.Close()

	// The segmenter loads its dictionary once here and is shared across
	// every file.
	seg, err := tokenizer.NewKagome()
	if err != nil {
		return fmt.Errorf("failed to initialize tokenizer: %w", err)
	}

	catalog, err := os.Open(cfg.SourceCSV)
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	idx, err := metadata.BuildIndex(csv.NewReader(catalog), metadata.Options{
		OriginColumn: cfg.OriginColumn,
		SourcePrefix: cfg.SourcePrefix,
	})
	catalog.Close()
	if err != nil {
		// A *SchemaError lands here too: a catalog without the origin
		// column cannot be partially processed.
		return fmt.Errorf("failed to build index: %w", err)
	}
	logger.Info("catalog indexed", "works", idx.Len(), "catalog", cfg.SourceCSV)

	runID, err := store.BeginRun(cfg.SourceCSV)
	if err != nil {
		return fmt.Errorf("failed to begin run: %w", err)
	}

	runner := &pipeline.Runner{
		Root:   cfg.LocalRoot,
		OutDir: cfg.OutputDir,
		Seg:    seg,
		Store:  store,
		RunID:  runID,
		Logger: logger,
	}
	if cfg.DetectLanguage {
		runner.Language = languageChecker()
	}

	counts, err := runner.Run(idx)
	if err != nil {
		return fmt.Errorf("corpus build failed: %w", err)
	}
	if err := store.FinishRun(runID, counts); err != nil {
		logger.Error("failed to finish run record", "error", err)
	}

	out, err := os.Create(cfg.ResolvedOutputCSV())
	if err != nil {
		return fmt.Errorf("failed to create output catalog: %w", err)
	}
	defer out.Close()
	if err := idx.WriteCSV(out); err != nil {
		return fmt.Errorf("failed to write output catalog: %w", err)
	}

	logger.Info("run complete",
		"run_id", runID,
		"visited", counts.Visited,
		"tokenized", counts.Tokenized,
		"missing", counts.Missing,
		"unextractable", counts.Unextractable,
		"failed", counts.Failed,
		"output_catalog", cfg.ResolvedOutputCSV(),
		"duration", time.Since(startTime).Round(time.Millisecond).String(),
	)
	return nil
}

// loadConfig resolves the effective config: defaults, then the YAML file,
// then CLI flag overrides.
func loadConfig(c *cli.Context) (*models.Config, error) {
	cfg := models.DefaultConfig()

	if path := c.String("config"); path != "" {
		loaded, err := models.LoadConfig(path)
		if err != nil {
			if os.IsNotExist(err) && !c.IsSet("config") {
				// Implicit default config file; absence is fine.
				loaded = nil
			} else {
				return nil, fmt.Errorf("failed to load config: %w", err)
			}
		}
		if loaded != nil {
			cfg = loaded
		}
	}

	if c.IsSet("catalog") {
		cfg.SourceCSV = c.String("catalog")
	}
	if c.IsSet("origin-column") {
		cfg.OriginColumn = c.String("origin-column")
	}
	if c.IsSet("source-prefix") {
		cfg.SourcePrefix = c.String("source-prefix")
	}
	if c.IsSet("root") {
		cfg.LocalRoot = c.String("root")
	}
	if c.IsSet("output-dir") {
		cfg.OutputDir = c.String("output-dir")
	}
	if c.IsSet("output-catalog") {
		cfg.OutputCSV = c.String("output-catalog")
	}
	if c.IsSet("database") {
		cfg.Database = c.String("database")
	}
	if c.IsSet("detect-language") {
		cfg.DetectLanguage = c.Bool("detect-language")
	}
	if c.Bool("quiet") {
		cfg.Quiet = true
	}
	return cfg, nil
}

// languageChecker builds the lingua detector once and returns the per-work
// check. The corpus should be Japanese throughout; anything else recorded in
// the report is worth an operator's look.
func languageChecker() pipeline.LanguageFunc {
	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(lingua.Japanese, lingua.English, lingua.Chinese, lingua.Korean).
		Build()

	return func(text string) string {
		runes := []rune(text)
		if len(runes) > languageSampleRunes {
			runes = runes[:languageSampleRunes]
		}
		lang, ok := detector.DetectLanguageOf(string(runes))
		if !ok {
			return ""
		}
		return strings.ToLower(lang.IsoCode639_1().String())
	}
}
