package menu

import (
	"strings"
	"testing"
)

func TestMenu_AddOption(t *testing.T) {
	m := NewMenu("Pick one")
	if err := m.AddOption("👍", "yes"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := m.AddOption("👎", "no"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.Options) != 2 {
		t.Fatalf("options = %d, want 2", len(m.Options))
	}

	if err := m.AddOption("👍", "duplicate"); err == nil {
		t.Error("expected duplicate emoji to be rejected")
	}
	if err := m.AddOption("not-an-emoji", "nope"); err == nil {
		t.Error("expected unparsable emoji to be rejected")
	}
}

func TestMenu_RemoveOption(t *testing.T) {
	m := NewMenu("Pick one")
	if err := m.AddOption("👍", "yes"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !m.RemoveOption("👍") {
		t.Error("expected removal of existing option to succeed")
	}
	if m.RemoveOption("👍") {
		t.Error("expected removal of absent option to fail")
	}
	if m.RemoveOption("garbage") {
		t.Error("expected removal with bad emoji to fail")
	}
}

func TestMenu_BuildEmbed_Disabled(t *testing.T) {
	m := NewMenu("Roles")
	m.Description = "Pick your roles"
	m.DescriptionMeta = "React below"
	m.MessageID = "555"
	m.ShowID = true
	if err := m.AddOption("👍", "Gamer"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	embed := m.BuildEmbed()
	if embed.Title != "Roles (Disabled)" {
		t.Errorf("title = %q, want disabled suffix", embed.Title)
	}
	if embed.Color != DefaultDisabledColor {
		t.Errorf("color = %#x, want disabled color", embed.Color)
	}
	if embed.Description != "Pick your roles\nReact below" {
		t.Errorf("description = %q", embed.Description)
	}
	if len(embed.Fields) != 1 {
		t.Fatalf("fields = %d, want 1", len(embed.Fields))
	}
	if !strings.Contains(embed.Fields[0].Value, "Gamer") {
		t.Errorf("field value = %q, want option text", embed.Fields[0].Value)
	}
	if embed.Footer == nil || embed.Footer.Text != "Menu ID: 555" {
		t.Errorf("footer = %+v, want menu id text", embed.Footer)
	}
}

func TestMenu_BuildEmbed_Enabled(t *testing.T) {
	m := NewMenu("Roles")
	m.Enabled = true

	embed := m.BuildEmbed()
	if embed.Title != "Roles" {
		t.Errorf("title = %q, want no suffix while enabled", embed.Title)
	}
	if embed.Color != DefaultEnabledColor {
		t.Errorf("color = %#x, want enabled color", embed.Color)
	}
	if embed.Footer != nil {
		t.Errorf("footer = %+v, want none when ShowID is off", embed.Footer)
	}
}

func TestMenu_Hooks(t *testing.T) {
	m := NewMenu("Base")
	m.Hooks.Title = func(*Menu) string { return "Custom Title" }
	m.Hooks.Color = func(*Menu) int { return 0x123456 }

	embed := m.BuildEmbed()
	if embed.Title != "Custom Title" {
		t.Errorf("title = %q, want hook output", embed.Title)
	}
	if embed.Color != 0x123456 {
		t.Errorf("color = %#x, want hook output", embed.Color)
	}
}
