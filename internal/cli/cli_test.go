package cli

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to json", "", []string{"json"}},
		{"single format", "json", []string{"json"}},
		{"multiple formats", "json,dot,text", []string{"json", "dot", "text"}},
		{"spaces around commas", "json, dot , text", []string{"json", "dot", "text"}},
		{"trailing comma", "json,", []string{"json"}},
		{"dot only", "dot", []string{"dot"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input)
			if len(got) != len(tt.want) {
				t.Errorf("parseFormats(%q) length = %d, want %d", tt.input, len(got), len(tt.want))
				return
			}
			for i, v := range got {
				if v != tt.want[i] {
					t.Errorf("parseFormats(%q)[%d] = %q, want %q", tt.input, i, v, tt.want[i])
				}
			}
		})
	}
}

func TestRootCommandSubcommands(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)
	root := c.RootCommand()

	if root.Use != appName {
		t.Errorf("root.Use = %q, want %q", root.Use, appName)
	}

	want := []string{"layout", "validate", "hittest", "inspect", "docs", "serve", "cache", "completion"}
	registered := make(map[string]bool)
	for _, sub := range root.Commands() {
		registered[sub.Name()] = true
	}

	for _, name := range want {
		if !registered[name] {
			t.Errorf("root command missing subcommand %q", name)
		}
	}

	if root.PersistentFlags().Lookup("verbose") == nil {
		t.Error("root command missing persistent --verbose flag")
	}
}

func TestRootCommandVerboseSwitchesLevel(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)
	root := c.RootCommand()

	if err := root.PersistentFlags().Set("verbose", "true"); err != nil {
		t.Fatalf("set verbose: %v", err)
	}
	root.PersistentPreRun(root, nil)

	if c.Logger.GetLevel() != log.DebugLevel {
		t.Errorf("level after --verbose = %v, want debug", c.Logger.GetLevel())
	}
}

func TestSetLogLevel(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)

	c.SetLogLevel(log.DebugLevel)
	if c.Logger.GetLevel() != log.DebugLevel {
		t.Errorf("level = %v, want debug", c.Logger.GetLevel())
	}

	c.SetLogLevel(log.InfoLevel)
	if c.Logger.GetLevel() != log.InfoLevel {
		t.Errorf("level = %v, want info", c.Logger.GetLevel())
	}
}
