package jptext

import "testing"

func TestDecodeShiftJIS(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
		want string
	}{
		{
			name: "plain ascii passes through",
			raw:  []byte("<html>text</html>"),
			want: "<html>text</html>",
		},
		{
			// Shift-JIS for 猫 is 0x94 0x4C.
			name: "double-byte kanji",
			raw:  []byte{0x94, 0x4C},
			want: "猫",
		},
		{
			// A lone lead byte at end of input is invalid; it is
			// dropped, the surrounding text survives.
			name: "invalid sequence dropped",
			raw:  []byte{'a', 'b', 'c', 0x94},
			want: "abc",
		},
		{
			name: "empty input",
			raw:  nil,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DecodeShiftJIS(tt.raw); got != tt.want {
				t.Errorf("DecodeShiftJIS() = %q, want %q", got, tt.want)
			}
		})
	}
}
