// Package ruby removes ruby (furigana) annotations from Aozora Bunko markup
// while preserving the annotated base text.
//
// Three conventions exist in the corpus. Modern files use <ruby> tags, with
// the gloss inside <rt> (and rendering fallback parentheses inside <rp>).
// Very old files use an inline convention instead: the marker <!R> before the
// base word, followed by the gloss in full-width parentheses. Everything else
// carries no ruby at all.
package ruby

import (
	"regexp"
	"strings"
)

// Dialect identifies which ruby convention a document uses.
type Dialect int

const (
	None Dialect = iota
	Modern
	Legacy
)

func (d Dialect) String() string {
	switch d {
	case Modern:
		return "modern"
	case Legacy:
		return "legacy"
	default:
		return "none"
	}
}

const (
	modernMarker = "<ruby"
	legacyMarker = "<!R>"
)

// modernPattern matches one whole <ruby> span. The base word may or may not
// be wrapped in <rb>; the gloss starts at the first <rt> or <rp> and runs
// through </ruby>. (?s) so glosses containing newlines still match.
var modernPattern = regexp.MustCompile(`(?s)<ruby[^>]*>(?:<rb[^>]*>)?(.*?)(?:</rb>)?<r[tp][^>]*>.*?</ruby>`)

// legacyPattern matches the inline convention: marker, base word, gloss in
// full-width parentheses. Non-greedy, so the first following （ starts the
// gloss and the first ） after it ends the match. Glosses containing a nested
// full-width paren are not representable in this grammar; the original corpus
// tooling had the same limitation and the behavior is pinned by tests rather
// than corrected.
var legacyPattern = regexp.MustCompile(`<!R>(.*?)（.*?）`)

// Detect classifies a whole document by the first convention found. Modern
// wins over Legacy when both markers appear; mixed-dialect documents are not
// supported. Detection is global per document, never per occurrence.
func Detect(raw string) Dialect {
	if strings.Contains(raw, modernMarker) {
		return Modern
	}
	if strings.Contains(raw, legacyMarker) {
		return Legacy
	}
	return None
}

// Strip removes every ruby annotation from raw, keeping only the base text of
// each annotated word. Text outside matched spans passes through unchanged.
// For None-dialect documents Strip returns its input as-is.
func Strip(raw string) string {
	switch Detect(raw) {
	case Modern:
		return modernPattern.ReplaceAllString(raw, "$1")
	case Legacy:
		return legacyPattern.ReplaceAllString(raw, "$1")
	default:
		return raw
	}
}
