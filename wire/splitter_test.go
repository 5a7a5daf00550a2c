package wire_test

import (
	"bufio"
	"strings"
	"testing"

	"aqusens.io/nora/asrslink/wire"
)

func TestSplitter(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "Single request",
			input:    "T\n",
			expected: []string{"T"},
		},
		{
			name:     "Sample request with duration",
			input:    "S\n45\n",
			expected: []string{"S", "45"},
		},
		{
			name:     "CRLF terminated lines",
			input:    "C\r\nEE\r\n",
			expected: []string{"C", "EE"},
		},
		{
			name:     "Trailing data without newline",
			input:    "F\nP",
			expected: []string{"F", "P"},
		},
		{
			name:     "Empty line is kept as empty token",
			input:    "\nT\n",
			expected: []string{"", "T"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scanner := bufio.NewScanner(strings.NewReader(tt.input))
			scanner.Split(wire.Splitter)

			var got []string
			for scanner.Scan() {
				got = append(got, scanner.Text())
			}
			if err := scanner.Err(); err != nil {
				t.Fatalf("scanner error: %v", err)
			}

			if len(got) != len(tt.expected) {
				t.Fatalf("expected %d tokens, got %d: %q", len(tt.expected), len(got), got)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("token %d: expected %q, got %q", i, tt.expected[i], got[i])
				}
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		line     string
		expected wire.RequestType
	}{
		{"T", wire.TypeTide},
		{"S", wire.TypeSample},
		{"F", wire.TypeStopPump},
		{"P", wire.TypeStartPump},
		{"C", wire.TypeClock},
		{"EE", wire.TypeFault},
		{"EM", wire.TypeFault},
		{"EX", wire.TypeFault},
		{"E", wire.TypeUnknown},
		{"EEE", wire.TypeUnknown},
		{"X", wire.TypeUnknown},
		{"t", wire.TypeUnknown},
		{"", wire.TypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			if got := wire.Classify(tt.line); got != tt.expected {
				t.Errorf("Classify(%q) = %v, want %v", tt.line, got, tt.expected)
			}
		})
	}
}

func TestParseDuration(t *testing.T) {
	t.Run("Accepts decimal seconds", func(t *testing.T) {
		n, ok := wire.ParseDuration("45")
		if !ok || n != 45 {
			t.Errorf("expected 45, got %d (ok=%v)", n, ok)
		}
	})

	t.Run("Trims surrounding whitespace", func(t *testing.T) {
		n, ok := wire.ParseDuration(" 120\r")
		if !ok || n != 120 {
			t.Errorf("expected 120, got %d (ok=%v)", n, ok)
		}
	})

	t.Run("Accepts the longest representable duration", func(t *testing.T) {
		n, ok := wire.ParseDuration("9223372036")
		if !ok || int64(n) != wire.MaxDurationSeconds {
			t.Errorf("expected %d, got %d (ok=%v)", wire.MaxDurationSeconds, n, ok)
		}
	})

	for _, in := range []string{"", "-5", "4.5", "abc", "1e3", "9223372037", "99999999999999999999"} {
		t.Run("Rejects "+in, func(t *testing.T) {
			if _, ok := wire.ParseDuration(in); ok {
				t.Errorf("expected %q to be rejected", in)
			}
		})
	}
}

func TestTideReply(t *testing.T) {
	if got := wire.TideReply(wire.TideFailure); got != "W-1000" {
		t.Errorf("expected W-1000, got %q", got)
	}
}
