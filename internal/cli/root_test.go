package cli

import (
	"io"
	"testing"
)

func TestRootCommand(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	if root.Use != "floorplan" {
		t.Errorf("Use = %q, want %q", root.Use, "floorplan")
	}

	want := []string{"validate", "cost", "plan", "render", "explore", "history", "serve", "cache", "completion"}
	for _, name := range want {
		found := false
		for _, sub := range root.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestSetLogLevel(t *testing.T) {
	c := New(io.Discard, LogInfo)
	c.SetLogLevel(LogDebug)
	if c.Logger.GetLevel() != LogDebug {
		t.Errorf("level = %v, want debug", c.Logger.GetLevel())
	}
}

func TestParseFormats(t *testing.T) {
	got := parseFormats("")
	if len(got) != 1 || got[0] != "svg" {
		t.Errorf("parseFormats(\"\") = %v, want [svg]", got)
	}
	got = parseFormats("dot,pdf")
	if len(got) != 2 || got[0] != "dot" || got[1] != "pdf" {
		t.Errorf("parseFormats = %v", got)
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, npe, want string
	}{
		{"", "12V3H", "12V3H"},
		{"out/plan.svg", "12V3H", "out/plan"},
		{"out/plan", "12V3H", "out/plan"},
		{"plan.backup", "12V3H", "plan.backup"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.npe); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.npe, got, tt.want)
		}
	}
}
