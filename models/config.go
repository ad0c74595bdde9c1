// Package models defines data structures for configuration.
package models

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds one corpus build's settings. All values have defaults
// mirroring the standard Aozora Bunko mirror layout; a YAML config file and
// CLI flags override them.
type Config struct {
	// SourceCSV is the catalog table listing every work.
	SourceCSV string `yaml:"source_csv"`
	// OriginColumn is the catalog column holding each work's origin URL.
	OriginColumn string `yaml:"origin_column"`
	// SourcePrefix is the origin-URL prefix for in-scope works; rows
	// without it are ignored.
	SourcePrefix string `yaml:"source_prefix"`
	// LocalRoot is the directory the HTML mirror lives under.
	LocalRoot string `yaml:"local_root"`
	// OutputDir receives the tokenized text files.
	OutputDir string `yaml:"output_dir"`
	// OutputCSV is the augmented catalog; empty means "t-" + SourceCSV
	// basename in the current directory.
	OutputCSV string `yaml:"output_csv"`
	// Database is the run-report SQLite file.
	Database string `yaml:"database"`
	// DetectLanguage enables recording each work's detected language in
	// the run report.
	DetectLanguage bool `yaml:"detect_language"`
	// Quiet restricts logging to errors.
	Quiet bool `yaml:"quiet"`
}

// DefaultConfig returns the standard mirror settings.
func DefaultConfig() *Config {
	return &Config{
		SourceCSV:    "list_person_all_extended_utf8.csv",
		OriginColumn: "XHTML/HTMLファイルURL",
		SourcePrefix: "https://www.aozora.gr.jp/cards",
		LocalRoot:    filepath.Join("aozorabunko_html", "cards"),
		OutputDir:    "tokenized",
		Database:     "aozoracb.db",
	}
}

// LoadConfig reads path over the defaults. A missing file is not an error
// when path is the implicit default name; an explicitly requested file must
// exist, which callers enforce by checking os.IsNotExist themselves.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ResolvedOutputCSV returns the output table path, deriving it from the
// source name when unset.
func (c *Config) ResolvedOutputCSV() string {
	if c.OutputCSV != "" {
		return c.OutputCSV
	}
	return "t-" + filepath.Base(c.SourceCSV)
}
