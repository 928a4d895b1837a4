package ui

import (
	"bytes"
	"strings"
	"testing"
)

func TestSetTheme(t *testing.T) {
	defer SetTheme("dark")
	tests := []struct{ name, want string }{
		{"light", "light"},
		{"none", "none"},
		{"dark", "dark"},
		{"neon", "dark"},
	}
	for _, tt := range tests {
		SetTheme(tt.name)
		if got := GetCurrentTheme().Name; got != tt.want {
			t.Errorf("SetTheme(%q) selected %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestInitTheme(t *testing.T) {
	defer SetTheme("dark")

	InitTheme(true)
	if GetCurrentTheme().Name != "none" {
		t.Error("InitTheme(true) should disable colours")
	}

	t.Setenv("NO_COLOR", "1")
	InitTheme(false)
	if GetCurrentTheme().Name != "none" {
		t.Error("NO_COLOR should disable colours")
	}
}

func TestNewStyles_PlainWriter(t *testing.T) {
	var buf bytes.Buffer
	styles := NewStyles(&buf)
	out := styles.Pass.Render("PASS")
	if strings.Contains(out, "\x1b[") {
		t.Errorf("non-terminal writer should not receive escape codes: %q", out)
	}
	if !strings.Contains(out, "PASS") {
		t.Errorf("rendered text lost: %q", out)
	}
}
