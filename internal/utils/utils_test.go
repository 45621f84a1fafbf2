package utils

import "testing"

func TestTruncateForLog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		limit  int
		expect string
	}{
		{
			name:   "returns empty when limit non-positive",
			input:  "hello world",
			limit:  0,
			expect: "",
		},
		{
			name:   "shorter than limit",
			input:  "hello",
			limit:  10,
			expect: "hello",
		},
		{
			name:   "truncates and adds ellipsis",
			input:  "hello world",
			limit:  5,
			expect: "hello...",
		},
		{
			name:   "trims surrounding whitespace",
			input:  "  spaced  ",
			limit:  5,
			expect: "space...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := TruncateForLog(tt.input, tt.limit); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestRound2(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input  float64
		expect float64
	}{
		{input: 0, expect: 0},
		{input: 0.125, expect: 0.13},
		{input: 66.6666, expect: 66.67},
		{input: 100, expect: 100},
		{input: -0.004, expect: 0},
	}

	for _, tt := range tests {
		if got := Round2(tt.input); got != tt.expect {
			t.Fatalf("Round2(%v): expected %v, got %v", tt.input, tt.expect, got)
		}
	}
}
