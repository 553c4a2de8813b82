package cmd

import "testing"

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{"shorter than limit", "Whiskers", 24, "Whiskers"},
		{"exactly at limit", "Mochi", 5, "Mochi"},
		{"over limit", "A very long cat name", 10, "A very ..."},
		{"tiny limit", "Whiskers", 3, "Whi"},
		{"accented name over limit", "Héloïse-Ämélie", 10, "Héloïse..."},
		{"cjk name within limit", "たま", 5, "たま"},
		{"cjk name over limit", "たまちゃんのねこ", 6, "たまち..."},
		{"empty", "", 10, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncate(tt.input, tt.maxLen); got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
			}
		})
	}
}
