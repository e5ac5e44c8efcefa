package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/prdeck/prdeck-desktop/internal/config"
)

func TestBuildRootSubcommands(t *testing.T) {
	root := buildRoot()
	want := map[string]bool{"run": false, "paths": false}
	for _, c := range root.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Fatalf("subcommand %q missing", name)
		}
	}
}

func TestPathsCommand(t *testing.T) {
	root := buildRoot()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs([]string{"paths"})
	if err := root.Execute(); err != nil {
		t.Fatalf("paths: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "graph") {
		t.Fatalf("unexpected paths output: %q", out)
	}
}

func TestLoadConfigDefaultWhenUnset(t *testing.T) {
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Graph.Port != config.DefaultGraphPort {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestHistoryPathExplicitOverride(t *testing.T) {
	cfg := config.Default()
	cfg.HistoryPath = "/tmp/custom.db"
	if got := historyPath(cfg); got != "/tmp/custom.db" {
		t.Fatalf("historyPath = %q", got)
	}
}

func TestHistoryPathDefaultDerived(t *testing.T) {
	got := historyPath(config.Default())
	if got == "" || !strings.HasSuffix(got, config.DefaultHistoryDBName) {
		t.Fatalf("derived history path = %q", got)
	}
}
