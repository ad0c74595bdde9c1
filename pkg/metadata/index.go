// Package metadata builds and serializes the per-work metadata index from the
// Aozora Bunko catalog CSV.
package metadata

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Derived column names appended to the source header. Values are only ever
// appended to rows whose work was tokenized; unprocessed rows stay at their
// original width, which is how the output table marks them.
const (
	ColTokenizedFilename = "Tokenized Filename"
	ColTimeProcessed     = "Time Processed (UTC)"
)

// Row is one catalog row, opaque beyond the origin-URL column. Field count is
// deliberately not validated against the header; short and long rows pass
// through as-is.
type Row []string

// SchemaError reports a source table whose header lacks the required origin
// column. It is the only fatal condition in index building: a mismatched
// catalog cannot be partially processed.
type SchemaError struct {
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("source table has no %q column", e.Column)
}

// Options configures index construction.
type Options struct {
	// OriginColumn is the header name of the column holding each work's
	// origin URL.
	OriginColumn string
	// SourcePrefix is the URL prefix identifying in-scope works. Rows whose
	// origin lacks it are out of domain and silently excluded. The FileID is
	// the origin URL with this prefix removed.
	SourcePrefix string
}

// Index maps FileID to catalog row, preserving catalog order. The header is
// a separate field, never an entry in the row map.
type Index struct {
	Header []string

	order []string
	rows  map[string]Row
}

// BuildIndex reads the catalog from r and returns the FileID index. The
// header row is required and must contain opts.OriginColumn, else a
// *SchemaError is returned. Rows whose origin URL does not contain
// opts.SourcePrefix are excluded. A FileID seen twice keeps its first row.
func BuildIndex(r *csv.Reader, opts Options) (*Index, error) {
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog header: %w", err)
	}

	originIdx := -1
	for i, name := range header {
		if name == opts.OriginColumn {
			originIdx = i
			break
		}
	}
	if originIdx < 0 {
		return nil, &SchemaError{Column: opts.OriginColumn}
	}

	idx := &Index{
		Header: append(append([]string{}, header...), ColTokenizedFilename, ColTimeProcessed),
		rows:   make(map[string]Row),
	}

	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog row: %w", err)
		}
		if originIdx >= len(row) {
			continue
		}
		id, ok := FileID(row[originIdx], opts.SourcePrefix)
		if !ok {
			continue
		}
		if _, seen := idx.rows[id]; seen {
			// Re-listing of the same work; first occurrence wins.
			continue
		}
		idx.order = append(idx.order, id)
		idx.rows[id] = Row(row)
	}

	return idx, nil
}

// FileID derives the normalized work identifier from an origin URL: the part
// after prefix, with path separators flattened to "-". ok is false when the
// URL does not contain the prefix.
func FileID(originURL, prefix string) (id string, ok bool) {
	i := strings.Index(originURL, prefix)
	if i < 0 {
		return "", false
	}
	rest := strings.TrimPrefix(originURL[i+len(prefix):], "/")
	if rest == "" {
		return "", false
	}
	return strings.ReplaceAll(rest, "/", "-"), true
}

// FileIDs returns every FileID in catalog order.
func (idx *Index) FileIDs() []string {
	return idx.order
}

// Len reports the number of indexed works.
func (idx *Index) Len() int {
	return len(idx.order)
}

// Row returns the catalog row for id.
func (idx *Index) Row(id string) (Row, bool) {
	row, ok := idx.rows[id]
	return row, ok
}

// Append adds derived values to id's row. It is how the driver marks a work
// as successfully tokenized.
func (idx *Index) Append(id string, values ...string) {
	if row, ok := idx.rows[id]; ok {
		idx.rows[id] = append(row, values...)
	}
}

// WriteCSV serializes the index: header first, then every row in catalog
// order. Rows never touched by Append are emitted at their source width.
func (idx *Index) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(idx.Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, id := range idx.order {
		if err := cw.Write(idx.rows[id]); err != nil {
			return fmt.Errorf("failed to write row %s: %w", id, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
