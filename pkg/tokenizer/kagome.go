package tokenizer

import (
	"fmt"
	"strings"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

// Kagome segments text with the kagome morphological analyzer and the IPA
// dictionary, producing wakati-style space-joined tokens. Construction loads
// the dictionary and is expensive; build one per run and share it across
// files.
type Kagome struct {
	t *tokenizer.Tokenizer
}

// NewKagome builds a ready-to-use segmenter.
func NewKagome() (*Kagome, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, fmt.Errorf("failed to build kagome tokenizer: %w", err)
	}
	return &Kagome{t: t}, nil
}

func (k *Kagome) Segment(line string) string {
	return strings.Join(k.t.Wakati(line), " ")
}
