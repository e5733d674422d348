package utils

import "testing"

func TestRoundFloat(t *testing.T) {
	tests := []struct {
		val       float64
		precision uint
		want      float64
	}{
		{2.344, 2, 2.34},
		{2.346, 2, 2.35},
		{123.456, 1, 123.5},
		{-2.346, 2, -2.35},
		{100, 2, 100},
	}
	for _, tt := range tests {
		if got := RoundFloat(tt.val, tt.precision); got != tt.want {
			t.Errorf("RoundFloat(%f, %d) = %f, want %f", tt.val, tt.precision, got, tt.want)
		}
	}
}

func TestToFloat(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
		ok   bool
	}{
		{"float64", 12.5, 12.5, true},
		{"int", 12, 12, true},
		{"numeric string", "12.5", 12.5, true},
		{"padded string", " 12.5 ", 12.5, true},
		{"garbage string", "twelve", 0, false},
		{"nil", nil, 0, false},
		{"bool", true, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToFloat(tt.in)
			if got != tt.want || ok != tt.ok {
				t.Errorf("ToFloat(%v) = (%f, %t), want (%f, %t)", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}
