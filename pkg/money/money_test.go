package money

import "testing"

func TestFormatBRL(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{0, "R$ 0,00"},
		{500, "R$ 5,00"},
		{1050, "R$ 10,50"},
		{999, "R$ 9,99"},
		{123456, "R$ 1.234,56"},
		{100000000, "R$ 1.000.000,00"},
		{-1050, "R$ -10,50"},
	}
	for _, tc := range cases {
		if got := FormatBRL(tc.cents); got != tc.want {
			t.Fatalf("FormatBRL(%d) = %q, want %q", tc.cents, got, tc.want)
		}
	}
}

func TestFromCentsExact(t *testing.T) {
	if got := FromCents(199).StringFixed(2); got != "1.99" {
		t.Fatalf("expected 1.99 got %s", got)
	}
	if got := FromCents(3).StringFixed(2); got != "0.03" {
		t.Fatalf("expected 0.03 got %s", got)
	}
}
