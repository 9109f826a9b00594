package snsmodels

import "testing"

func TestNumberFromStringCoercesGarbageToZero(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"25.5", 25.5},
		{"-3.2", -3.2},
		{"60", 60},
		{" 18.5 ", 18.5},
		{"", 0},
		{"abc", 0},
		{"25.5C", 0},
		{"NaN%", 0},
	}

	for _, tc := range cases {
		if got := NumberFromString(tc.in); got != tc.want {
			t.Fatalf("NumberFromString(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestNumberFromValueCoercesGarbageToZero(t *testing.T) {
	cases := []struct {
		name string
		in   interface{}
		want float64
	}{
		{"float", 25.5, 25.5},
		{"numeric string", "60.0", 60},
		{"garbage string", "warm", 0},
		{"nil", nil, 0},
		{"bool", true, 0},
		{"object", map[string]interface{}{"v": 1}, 0},
	}

	for _, tc := range cases {
		if got := NumberFromValue(tc.in); got != tc.want {
			t.Fatalf("%s: NumberFromValue(%v) = %v, want %v", tc.name, tc.in, got, tc.want)
		}
	}
}

func TestFormatNumberRendersPlainDecimals(t *testing.T) {
	if got := FormatNumber(25.5); got != "25.5" {
		t.Fatalf("expected 25.5, got %q", got)
	}
	if got := FormatNumber(0); got != "0" {
		t.Fatalf("expected 0, got %q", got)
	}
}
