package menu

import (
	"testing"

	"github.com/bwmarrin/discordgo"
)

func TestSelectMenu_Components(t *testing.T) {
	s := NewSelectMenu("Pronouns")
	s.MessageID = "200"
	s.Placeholder = "Choose..."
	s.MenuLabels = true
	s.Enabled = true
	if err := s.AddOption("🟣", "they/them"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.AddOption("🔵", "he/him"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rows := s.Components()
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want control row plus select row", len(rows))
	}

	control := rows[0].(discordgo.ActionsRow).Components[0].(discordgo.Button)
	if control.CustomID != "disable_200" {
		t.Errorf("control custom id = %q, want disable while enabled", control.CustomID)
	}

	sel := rows[1].(discordgo.ActionsRow).Components[0].(discordgo.SelectMenu)
	if sel.CustomID != "selectmenu_200" {
		t.Errorf("select custom id = %q", sel.CustomID)
	}
	if sel.Placeholder != "Choose..." {
		t.Errorf("placeholder = %q", sel.Placeholder)
	}
	if sel.Disabled {
		t.Error("select must be usable while the menu is enabled")
	}
	if sel.MaxValues != 2 {
		t.Errorf("max values = %d, want option count", sel.MaxValues)
	}
	if sel.MinValues == nil || *sel.MinValues != 0 {
		t.Errorf("min values = %v, want 0", sel.MinValues)
	}
	if len(sel.Options) != 2 {
		t.Fatalf("select options = %d, want 2", len(sel.Options))
	}
	if sel.Options[0].Label != "they/them" {
		t.Errorf("label = %q, want value with labels on", sel.Options[0].Label)
	}
	if sel.Options[0].Value != "🟣_200" {
		t.Errorf("value = %q", sel.Options[0].Value)
	}
}

func TestSelectMenu_Components_Disabled(t *testing.T) {
	s := NewSelectMenu("Pronouns")
	s.MessageID = "200"
	if err := s.AddOption("🟣", "they/them"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rows := s.Components()
	control := rows[0].(discordgo.ActionsRow).Components[0].(discordgo.Button)
	if control.CustomID != "enable_200" {
		t.Errorf("control custom id = %q, want enable while disabled", control.CustomID)
	}

	sel := rows[1].(discordgo.ActionsRow).Components[0].(discordgo.SelectMenu)
	if !sel.Disabled {
		t.Error("select must be disabled while the menu is disabled")
	}

	if sel.Options[0].Label != zeroWidthSpace {
		t.Errorf("label = %q, want hidden labels by default", sel.Options[0].Label)
	}
}
