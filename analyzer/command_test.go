package analyzer_test

import (
	"testing"

	"aqusens.io/nora/asrslink/analyzer"
)

func TestCommandString(t *testing.T) {
	tests := []struct {
		cmd      analyzer.Command
		expected string
	}{
		{analyzer.SaveToDirectory("D:/Data/Raw/250101_120000"), "SaveToDirectory(D:/Data/Raw/250101_120000)"},
		{analyzer.StartPump(), "StartPump()"},
		{analyzer.StopPump(), "StopPump()"},
		{analyzer.StartSampleCollection(1), "StartSampleCollection(1)"},
		{analyzer.StopSampleCollection(), "StopSampleCollection()"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.cmd.String(); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		token    string
		minLen   int
		complete bool
		ok       bool
	}{
		{"Empty response", "", "startpump", 10, false, false},
		{"Shorter than minimum", "0start", "startpump", 10, false, false},
		{"Exact acknowledgment", "0startpump", "startpump", 10, true, true},
		{"Mixed case acknowledgment", "0StartPump()", "startpump", 10, true, true},
		{"Trailing content after token", "0SaveToDirectory(D:/x) done\r\n", "savetodirectory", 16, true, true},
		{"Wrong prefix byte", "1startpump", "startpump", 10, true, false},
		{"Wrong token", "0stoppump()", "startpump", 10, true, false},
		{"Complete but shorter than token", "0stop", "savetodirectory", 4, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			complete, ok := analyzer.Match(tt.content, tt.token, tt.minLen)
			if complete != tt.complete || ok != tt.ok {
				t.Errorf("Match(%q) = (%v, %v), want (%v, %v)", tt.content, complete, ok, tt.complete, tt.ok)
			}
		})
	}
}
