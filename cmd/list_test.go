package cmd

import (
	"encoding/json"
	"testing"

	"github.com/mj1618/focusprobe/internal/model"
)

func TestListCommand_Flags(t *testing.T) {
	flags := listCmd.Flags()

	tests := []struct {
		name     string
		flagType string
	}{
		{"apps", "bool"},
		{"pid", "int"},
		{"app", "string"},
	}

	for _, tt := range tests {
		f := flags.Lookup(tt.name)
		if f == nil {
			t.Errorf("expected flag %q not found", tt.name)
			continue
		}
		if f.Value.Type() != tt.flagType {
			t.Errorf("flag %q: expected type %q, got %q", tt.name, tt.flagType, f.Value.Type())
		}
	}
}

func TestListCommand_IsRegistered(t *testing.T) {
	for _, c := range rootCmd.Commands() {
		if c.Name() == "list" {
			return
		}
	}
	t.Error("list command not registered on root")
}

func TestListCommand_Simulated(t *testing.T) {
	out, err := execute(t, "list", "--simulate", "--format", "json")
	if err != nil {
		t.Fatal(err)
	}
	var windows []model.Window
	if err := json.Unmarshal([]byte(out), &windows); err != nil {
		t.Fatalf("output is not a JSON window list: %v\n%s", err, out)
	}
	if len(windows) != 1 || windows[0].App != "IntelliJ IDEA" {
		t.Errorf("unexpected windows: %+v", windows)
	}

	out, err = execute(t, "list", "--simulate", "--format", "json", "--apps", "--app", "Safari")
	if err != nil {
		t.Fatal(err)
	}
	var apps []appEntry
	if err := json.Unmarshal([]byte(out), &apps); err != nil {
		t.Fatal(err)
	}
	if len(apps) != 0 {
		t.Errorf("expected no apps for Safari, got %+v", apps)
	}
}
