// Package tokenizer word-segments lines of Japanese text.
package tokenizer

// Segmenter re-renders one line of text with word boundaries marked by
// spaces. Implementations must be deterministic and side-effect-free; the
// driver calls Segment once per line and never inspects the segmentation
// beyond joining lines back together. Lines never contain embedded line
// breaks.
type Segmenter interface {
	Segment(line string) string
}

// Func adapts a plain function to Segmenter, mainly for tests.
type Func func(string) string

func (f Func) Segment(line string) string {
	return f(line)
}
