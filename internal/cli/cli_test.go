package cli

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
)

func TestRootCommandSubcommands(t *testing.T) {
	c := New(&bytes.Buffer{}, LogInfo)
	root := c.RootCommand()

	want := map[string]bool{
		"search":     false,
		"serve":      false,
		"cache":      false,
		"completion": false,
	}
	for _, cmd := range root.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}

	if root.Use != appName {
		t.Errorf("root.Use = %q, want %q", root.Use, appName)
	}
}

func TestSetLogLevel(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, LogInfo)

	c.Logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Error("debug should be filtered at info level")
	}

	c.SetLogLevel(LogDebug)
	c.Logger.Debug("visible")
	if buf.Len() == 0 {
		t.Error("debug should pass after SetLogLevel(LogDebug)")
	}
}

func TestNewServiceNoCache(t *testing.T) {
	c := New(&bytes.Buffer{}, log.InfoLevel)

	if svc := c.newService("", true); svc == nil {
		t.Fatal("newService returned nil")
	}
	if svc := c.newService("http://localhost:1", false); svc == nil {
		t.Fatal("newService returned nil")
	}
}
