package utils

import "testing"

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{150000, "$150,000.00"},
		{1234.5, "$1,234.50"},
		{0, "$0.00"},
		{99.999, "$100.00"},
		{-2500, "$-2,500.00"},
	}
	for _, tt := range tests {
		if got := FormatCurrency(tt.value); got != tt.want {
			t.Errorf("FormatCurrency(%f) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestFormatRatio(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{2.5, "2.50"},
		{0.6666666, "0.67"},
		{0, "0.00"},
		{10, "10.00"},
	}
	for _, tt := range tests {
		if got := FormatRatio(tt.value); got != tt.want {
			t.Errorf("FormatRatio(%f) = %q, want %q", tt.value, got, tt.want)
		}
	}
}
