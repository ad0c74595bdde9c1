// Package pipeline drives the corpus build: it reconciles the metadata index
// against the local file tree and turns each located work into a tokenized
// plain-text file.
package pipeline

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kotobalab/aozoracb/pkg/extract"
	"github.com/kotobalab/aozoracb/pkg/jptext"
	"github.com/kotobalab/aozoracb/pkg/metadata"
	"github.com/kotobalab/aozoracb/pkg/report"
	"github.com/kotobalab/aozoracb/pkg/ruby"
	"github.com/kotobalab/aozoracb/pkg/tokenizer"
)

// LanguageFunc reports the language of an extracted text, as an ISO 639-1
// code or empty when undecided. Optional; results go to the report store
// only and never gate processing.
type LanguageFunc func(text string) string

// Runner holds one run's shared resources. Seg is constructed once and
// reused for every file; nothing else is shared across files.
type Runner struct {
	// Root is the local mirror directory FileIDs resolve under.
	Root string
	// OutDir receives one UTF-8 text file per tokenized work. Created if
	// absent.
	OutDir string
	// Seg segments each line of extracted text.
	Seg tokenizer.Segmenter
	// Store, when non-nil, records every visited FileID under RunID.
	Store *report.Store
	RunID int64
	// Language, when non-nil, is applied to each extracted text.
	Language LanguageFunc
	// Logger defaults to slog.Default().
	Logger *slog.Logger
	// Now stamps the time-processed column; defaults to time.Now.
	Now func() time.Time
}

// outcome is the terminal state of one FileID.
type outcome struct {
	status     string
	reason     string
	outputFile string
	language   string
}

// Run visits every FileID in index order. Works that tokenize get an output
// file and their index row extended; everything else is skipped and the run
// continues. Only the output directory failing to exist is fatal, since no
// file could succeed.
func (r *Runner) Run(idx *metadata.Index) (report.Counts, error) {
	var counts report.Counts

	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if err := os.MkdirAll(r.OutDir, 0750); err != nil {
		return counts, fmt.Errorf("failed to create output directory: %w", err)
	}

	for _, id := range idx.FileIDs() {
		out := r.processOne(idx, id)
		counts.Visited++

		switch out.status {
		case report.StatusTokenized:
			counts.Tokenized++
			logger.Debug("tokenized", "file_id", id, "output", out.outputFile)
		case report.StatusMissing:
			counts.Missing++
			logger.Debug("local file missing", "file_id", id)
		case report.StatusUnextractable:
			counts.Unextractable++
			logger.Info("unextractable", "file_id", id, "reason", out.reason)
		case report.StatusFailed:
			counts.Failed++
			logger.Error("file failed", "file_id", id, "reason", out.reason)
		}

		if r.Store != nil {
			if err := r.Store.RecordFile(r.RunID, id, out.status, out.reason, out.outputFile, out.language); err != nil {
				logger.Error("failed to record outcome", "file_id", id, "error", err)
			}
		}
	}

	return counts, nil
}

// processOne runs the per-file state machine:
// Pending -> Located/Missing -> Extracted/Unextractable -> Tokenized/Failed.
// A panic while handling one file degrades that file to Failed; no single
// bad document aborts the run.
func (r *Runner) processOne(idx *metadata.Index, id string) (out outcome) {
	defer func() {
		if rec := recover(); rec != nil {
			out = outcome{status: report.StatusFailed, reason: fmt.Sprintf("panic: %v", rec)}
		}
	}()

	path := LocalPath(r.Root, id)
	fi, err := os.Stat(path)
	if err != nil || !fi.Mode().IsRegular() {
		return outcome{status: report.StatusMissing, reason: "no local file"}
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return outcome{status: report.StatusFailed, reason: fmt.Sprintf("read: %v", err)}
	}

	text := ruby.Strip(jptext.DecodeShiftJIS(raw))
	res := extract.Body(text)
	if res.Skip != extract.SkipNone {
		return outcome{status: report.StatusUnextractable, reason: res.Skip.String()}
	}

	lines := strings.Split(res.Text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(r.Seg.Segment(line))
	}
	tokenized := strings.TrimSpace(strings.Join(lines, "\n"))

	name := OutputFilename(id)
	if err := os.WriteFile(filepath.Join(r.OutDir, name), []byte(tokenized), 0644); err != nil {
		return outcome{status: report.StatusFailed, reason: fmt.Sprintf("write: %v", err)}
	}

	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	idx.Append(id, name, now().UTC().Format(time.RFC3339))

	out = outcome{status: report.StatusTokenized, outputFile: name}
	if r.Language != nil {
		out.language = r.Language(res.Text)
	}
	return out
}

// LocalPath resolves a FileID to its path in the local mirror: the flattened
// "-" separators become path separators again under root. A FileID whose
// original path segments themselves contained "-" resolves wrong and shows
// up as a missing file; the corpus does not use such names.
func LocalPath(root, id string) string {
	return filepath.Join(root, filepath.FromSlash(strings.ReplaceAll(id, "-", "/")))
}

// OutputFilename derives the flat output name for a FileID: the marker
// prefix, the FileID with its extension swapped for .txt.
func OutputFilename(id string) string {
	return "t-" + strings.TrimSuffix(id, ".html") + ".txt"
}
