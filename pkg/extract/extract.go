// Package extract locates a work's body content inside an Aozora Bunko HTML
// document and flattens it to plain text.
package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// mainTextSelector matches the container that modern files wrap the work's
// body in. Files from before the convention have no such container and only
// a <body>.
const mainTextSelector = ".main_text"

// selfClosingBreak appears in very old files that use <br /> instead of <p>
// for layout; left in place it turns into runs of blank lines.
const selfClosingBreak = "<br />"

// SkipReason says why a document yielded no text.
type SkipReason int

const (
	// SkipNone means the document was not skipped.
	SkipNone SkipReason = iota
	// SkipAmbiguous means more than one main-text container was found.
	SkipAmbiguous
	// SkipEmpty means neither the container nor the body fallback produced
	// any text.
	SkipEmpty
)

func (r SkipReason) String() string {
	switch r {
	case SkipAmbiguous:
		return "ambiguous structure"
	case SkipEmpty:
		return "empty body"
	default:
		return ""
	}
}

// Result is the outcome of one extraction. Exactly one of Text being
// non-empty or Skip being set holds; an empty Text with SkipNone never
// leaves Body.
type Result struct {
	Text string
	Skip SkipReason
}

// Body extracts the flattened body text of one document. Ruby glosses inside
// the main-text container (<rt>, <rp>) are dropped before flattening; inline
// ruby in legacy documents must already have been stripped from the raw
// markup, since it does not survive tree construction in a recoverable form.
//
// Resolution is two-tier: exactly one main-text container wins; with none,
// the first <body> is used; more than one container is treated as
// unprocessable rather than guessed at.
func Body(html string) Result {
	html = strings.ReplaceAll(html, selfClosingBreak, "")

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return Result{Skip: SkipEmpty}
	}

	sel := doc.Find(mainTextSelector)
	switch sel.Length() {
	case 1:
		sel.Find("rt,rp").Remove()
		return textOrEmpty(sel.Text())
	case 0:
		body := doc.Find("body").First()
		if body.Length() == 0 {
			return Result{Skip: SkipEmpty}
		}
		return textOrEmpty(body.Text())
	default:
		return Result{Skip: SkipAmbiguous}
	}
}

func textOrEmpty(text string) Result {
	if strings.TrimSpace(text) == "" {
		return Result{Skip: SkipEmpty}
	}
	return Result{Text: text}
}
