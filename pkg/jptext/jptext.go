// Package jptext decodes the legacy Shift-JIS encoding the corpus files are
// stored in.
package jptext

import (
	"strings"

	"golang.org/x/text/encoding/japanese"
)

// DecodeShiftJIS converts raw Shift-JIS bytes to a UTF-8 string. Decoding is
// lossy: byte sequences that are not valid Shift-JIS are dropped from the
// output rather than failing the file. Corpus files occasionally carry a few
// stray bytes and losing those is preferable to losing the work.
func DecodeShiftJIS(raw []byte) string {
	decoded, err := japanese.ShiftJIS.NewDecoder().Bytes(raw)
	if err != nil {
		// The decoder substitutes rather than errors for bad input;
		// treat a hard failure like fully undecodable content.
		return ""
	}
	return strings.ReplaceAll(string(decoded), "�", "")
}
