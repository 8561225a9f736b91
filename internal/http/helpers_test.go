package http

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatSom(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "0 so'm"},
		{"950", "950 so'm"},
		{"1000", "1 000 so'm"},
		{"1250000", "1 250 000 so'm"},
		{"1234.5", "1 234.5 so'm"},
		{"-700", "-700 so'm"},
		{"-1234567", "-1 234 567 so'm"},
	}
	for _, c := range cases {
		d, err := decimal.NewFromString(c.in)
		if err != nil {
			t.Fatalf("parse %q: %v", c.in, err)
		}
		if got := formatSom(d); got != c.want {
			t.Errorf("formatSom(%s) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestSanitizeInput(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"  MChJ Nur  ", "MChJ Nur"},
		{"a\x00b\x1fc", "abc"},
		{"line1\nline2", "line1\nline2"},
	}
	for _, c := range cases {
		if got := sanitizeInput(c.in); got != c.want {
			t.Errorf("sanitizeInput(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
