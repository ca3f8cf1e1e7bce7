package menu

import (
	"context"

	"github.com/bwmarrin/discordgo"
)

// InteractionHandler is the caller-supplied callback for component
// interactions on a button or select menu. It runs only while the menu is
// enabled; enable/disable controls are handled before it is consulted.
type InteractionHandler func(ctx context.Context, m Renderable, i *discordgo.InteractionCreate) error

// ReactionAddHandler is the caller-supplied callback for raw reactions
// added to a reaction menu.
type ReactionAddHandler func(ctx context.Context, m Renderable, r *discordgo.MessageReactionAdd) error

// ReactionRemoveHandler is the caller-supplied callback for raw reactions
// removed from a reaction menu.
type ReactionRemoveHandler func(ctx context.Context, m Renderable, r *discordgo.MessageReactionRemove) error

// InteractionHandling is implemented by variants that respond to component
// interactions.
type InteractionHandling interface {
	HandleInteraction(ctx context.Context, i *discordgo.InteractionCreate) error
}

// ReactionHandling is implemented by variants that respond to raw reaction
// gateway events.
type ReactionHandling interface {
	HandleReactionAdd(ctx context.Context, r *discordgo.MessageReactionAdd) error
	HandleReactionRemove(ctx context.Context, r *discordgo.MessageReactionRemove) error
}

// enableDisableButton returns the single control shown for the current state: a
// stop button while enabled, a start button while disabled.
func enableDisableButton(m *Menu) discordgo.MessageComponent {
	if m.Enabled {
		return discordgo.Button{
			Emoji:    &discordgo.ComponentEmoji{Name: "⏹️"},
			Style:    discordgo.DangerButton,
			CustomID: DisableCustomID(m.MessageID),
		}
	}
	return discordgo.Button{
		Emoji:    &discordgo.ComponentEmoji{Name: "▶️"},
		Style:    discordgo.SuccessButton,
		CustomID: EnableCustomID(m.MessageID),
	}
}

// chunkIntoRows groups components into action rows of at most five, the
// Discord per-row limit.
func chunkIntoRows(components []discordgo.MessageComponent) []discordgo.MessageComponent {
	var rows []discordgo.MessageComponent
	for len(components) > 0 {
		n := len(components)
		if n > 5 {
			n = 5
		}
		rows = append(rows, discordgo.ActionsRow{Components: components[:n]})
		components = components[n:]
	}
	return rows
}
