package metadata

import (
	"bytes"
	"encoding/csv"
	"errors"
	"reflect"
	"strings"
	"testing"
)

const testPrefix = "https://example.org/cards"

func buildTestIndex(t *testing.T, csvText string) *Index {
	t.Helper()

	idx, err := BuildIndex(csv.NewReader(strings.NewReader(csvText)), Options{
		OriginColumn: "HTML File URL",
		SourcePrefix: testPrefix,
	})
	if err != nil {
		t.Fatalf("BuildIndex() failed: %v", err)
	}
	return idx
}

func TestBuildIndex(t *testing.T) {
	idx := buildTestIndex(t, `Author,Title,HTML File URL
夏目漱石,吾輩は猫である,https://example.org/cards/000148/files/789_14547.html
外部作品,よそ,https://elsewhere.example.com/works/1.html
森鴎外,舞姫,https://example.org/cards/000129/files/2078_15386.html
`)

	want := []string{"000148-files-789_14547.html", "000129-files-2078_15386.html"}
	if got := idx.FileIDs(); !reflect.DeepEqual(got, want) {
		t.Errorf("FileIDs() = %v, want %v", got, want)
	}

	row, ok := idx.Row("000129-files-2078_15386.html")
	if !ok {
		t.Fatal("Row() missing indexed FileID")
	}
	if row[0] != "森鴎外" {
		t.Errorf("row[0] = %q, want 森鴎外", row[0])
	}
}

func TestBuildIndex_MissingColumnIsSchemaError(t *testing.T) {
	r := csv.NewReader(strings.NewReader("Author,Title\na,b\n"))
	_, err := BuildIndex(r, Options{OriginColumn: "HTML File URL", SourcePrefix: testPrefix})

	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("BuildIndex() error = %v, want *SchemaError", err)
	}
	if schemaErr.Column != "HTML File URL" {
		t.Errorf("SchemaError.Column = %q", schemaErr.Column)
	}
}

func TestBuildIndex_HeaderGainsDerivedColumns(t *testing.T) {
	idx := buildTestIndex(t, "HTML File URL\n")

	want := []string{"HTML File URL", ColTokenizedFilename, ColTimeProcessed}
	if !reflect.DeepEqual(idx.Header, want) {
		t.Errorf("Header = %v, want %v", idx.Header, want)
	}
}

func TestBuildIndex_DuplicateFileIDFirstWins(t *testing.T) {
	idx := buildTestIndex(t, `Author,HTML File URL
first,https://example.org/cards/000001/files/1.html
second,https://example.org/cards/000001/files/1.html
`)

	if idx.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", idx.Len())
	}
	row, _ := idx.Row("000001-files-1.html")
	if row[0] != "first" {
		t.Errorf("row[0] = %q, want first occurrence retained", row[0])
	}
}

func TestBuildIndex_ShortRowsAccepted(t *testing.T) {
	// Rows are opaque beyond the origin column; width is never validated.
	idx := buildTestIndex(t, `Author,Title,HTML File URL,Extra
a,b,https://example.org/cards/000002/files/2.html
only-author
`)

	if idx.Len() != 1 {
		t.Errorf("Len() = %d, want 1 (short row has no origin field)", idx.Len())
	}
}

func TestFileID(t *testing.T) {
	tests := []struct {
		name   string
		url    string
		wantID string
		wantOK bool
	}{
		{
			name:   "standard origin URL",
			url:    "https://example.org/cards/000123/files/foo.html",
			wantID: "000123-files-foo.html",
			wantOK: true,
		},
		{
			name:   "prefix absent",
			url:    "https://elsewhere.example.com/cards/000123/files/foo.html",
			wantOK: false,
		},
		{
			name:   "prefix with nothing after it",
			url:    "https://example.org/cards",
			wantOK: false,
		},
		{
			name:   "empty url",
			url:    "",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := FileID(tt.url, testPrefix)
			if ok != tt.wantOK {
				t.Fatalf("FileID() ok = %v, want %v", ok, tt.wantOK)
			}
			if id != tt.wantID {
				t.Errorf("FileID() = %q, want %q", id, tt.wantID)
			}
		})
	}
}

func TestWriteCSV_OrderAndPartialRows(t *testing.T) {
	idx := buildTestIndex(t, `Author,HTML File URL
a,https://example.org/cards/1/files/a.html
b,https://example.org/cards/2/files/b.html
c,https://example.org/cards/3/files/c.html
`)

	// Only the middle work succeeded; appended out of visitation order on
	// purpose, emission order must still follow the catalog.
	idx.Append("2-files-b.html", "t-2-files-b.txt", "2026-08-29T00:00:00Z")

	var buf bytes.Buffer
	if err := idx.WriteCSV(&buf); err != nil {
		t.Fatalf("WriteCSV() failed: %v", err)
	}

	// Ragged rows are expected: unprocessed rows keep their source width.
	r := csv.NewReader(strings.NewReader(buf.String()))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		t.Fatalf("reading output failed: %v", err)
	}

	if len(records) != 4 {
		t.Fatalf("output rows = %d, want 4", len(records))
	}
	if records[1][0] != "a" || records[2][0] != "b" || records[3][0] != "c" {
		t.Errorf("row order = %v %v %v, want catalog order", records[1][0], records[2][0], records[3][0])
	}
	if len(records[1]) != 2 {
		t.Errorf("unprocessed row width = %d, want 2", len(records[1]))
	}
	if len(records[2]) != 4 || records[2][2] != "t-2-files-b.txt" {
		t.Errorf("processed row = %v, want derived values appended", records[2])
	}
}
