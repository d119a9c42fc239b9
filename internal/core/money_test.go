package core

import "testing"

func TestParseCents(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 100, true},
		{"1.0", 100, true},
		{"1.23", 123, true},
		{"1,23", 123, true},
		{"0", 0, true},
		{"0.01", 1, true},
		{"-300", -30000, true},
		{"-300.5", -30050, true},
		{"+12.34", 1234, true},
		{"1.005", 101, true}, // half-up rounding
		{"-1.005", -101, true},
		{" 2.50 ", 250, true},
		{".5", 50, true},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
		{"-", 0, false},
		{".", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseCents(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestCoerceCents(t *testing.T) {
	cases := []struct {
		in  string
		out int64
	}{
		{"-150", -15000},
		{"10.50", 1050},
		{"nan", 0},
		{"not a number", 0},
		{"", 0},
	}
	for _, tc := range cases {
		if got := CoerceCents(tc.in); got.Cents != tc.out {
			t.Fatalf("%q expected %d cents, got %d", tc.in, tc.out, got.Cents)
		}
	}
}

func TestMoneyString(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{0, "0.00"},
		{123, "1.23"},
		{-30050, "-300.50"},
		{100000, "1000.00"},
		{-5, "-0.05"},
	}
	for _, tc := range cases {
		if got := (Money{Cents: tc.cents}).String(); got != tc.want {
			t.Fatalf("%d expected %q, got %q", tc.cents, tc.want, got)
		}
	}
}

func TestMoneyRoundTrip(t *testing.T) {
	for _, cents := range []int64{0, 1, -1, 999, -30050, 123456789} {
		s := Money{Cents: cents}.String()
		got, err := ParseCents(s)
		if err != nil {
			t.Fatalf("%q: %v", s, err)
		}
		if got != cents {
			t.Fatalf("%q expected %d, got %d", s, cents, got)
		}
	}
}
