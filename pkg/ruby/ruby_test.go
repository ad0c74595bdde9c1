package ruby

import (
	"strings"
	"testing"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Dialect
	}{
		{
			name: "modern ruby tag",
			raw:  `<p><ruby><rb>漢字</rb><rt>かんじ</rt></ruby>を書く</p>`,
			want: Modern,
		},
		{
			name: "legacy inline marker",
			raw:  `本文<!R>次（つぎ）へ`,
			want: Legacy,
		},
		{
			name: "no ruby at all",
			raw:  `<p>ただの本文</p>`,
			want: None,
		},
		{
			name: "modern wins when both markers present",
			raw:  `<ruby>字<rt>じ</rt></ruby> と <!R>次（つぎ）`,
			want: Modern,
		},
		{
			name: "empty document",
			raw:  "",
			want: None,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Detect(tt.raw); got != tt.want {
				t.Errorf("Detect() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStrip_Modern(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "rb-wrapped base with rt and rp",
			raw:  `<ruby><rb>漢字</rb><rp>（</rp><rt>かんじ</rt><rp>）</rp></ruby>`,
			want: `漢字`,
		},
		{
			name: "bare base without rb wrapper",
			raw:  `<ruby>漢字<rt>かんじ</rt></ruby>`,
			want: `漢字`,
		},
		{
			name: "multiple annotations in one line",
			raw:  `<ruby><rb>今</rb><rt>いま</rt></ruby>は<ruby><rb>昔</rb><rt>むかし</rt></ruby>`,
			want: `今は昔`,
		},
		{
			name: "surrounding text untouched",
			raw:  `前置き<ruby><rb>字</rb><rt>じ</rt></ruby>後置き`,
			want: `前置き字後置き`,
		},
		{
			name: "gloss spanning a newline",
			raw:  "<ruby><rb>字</rb><rt>じ\n</rt></ruby>",
			want: `字`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Strip(tt.raw); got != tt.want {
				t.Errorf("Strip() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStrip_Legacy(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "single annotation",
			raw:  `<!R>次（つぎ）`,
			want: `次`,
		},
		{
			name: "annotation embedded in a sentence",
			raw:  `その<!R>次（つぎ）の日`,
			want: `その次の日`,
		},
		{
			name: "two annotations on one line",
			raw:  `<!R>昨日（きのう）と<!R>今日（きょう）`,
			want: `昨日と今日`,
		},
		{
			name: "marker without paired parens passes through",
			raw:  `<!R>次`,
			want: `<!R>次`,
		},
		{
			// Pinned limitation: the gloss grammar is non-greedy to the
			// first close paren, so a nested paren leaves a dangling tail.
			name: "nested paren in gloss terminates at first close",
			raw:  `<!R>字（じ（注））`,
			want: `字）`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Strip(tt.raw); got != tt.want {
				t.Errorf("Strip() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStrip_None(t *testing.T) {
	raw := `<p>ルビのない本文。（普通の括弧）も残る。</p>`
	if got := Strip(raw); got != raw {
		t.Errorf("Strip() altered None-dialect input: %q", got)
	}
}

func TestStrip_ModernIdempotent(t *testing.T) {
	raw := `冒頭<ruby><rb>漢字</rb><rp>（</rp><rt>かんじ</rt><rp>）</rp></ruby>末尾`
	once := Strip(raw)
	if strings.Contains(once, modernMarker) {
		t.Fatalf("ruby marker survived first pass: %q", once)
	}
	if twice := Strip(once); twice != once {
		t.Errorf("second pass changed output: %q -> %q", once, twice)
	}
}
