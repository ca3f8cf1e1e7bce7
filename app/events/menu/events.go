// Package menuevents defines the topics and payload shapes for menu
// lifecycle and dispatch events.
package menuevents

// Menu event topics.
const (
	MenuCreated     = "menu.created"
	MenuEnabled     = "menu.enabled"
	MenuDisabled    = "menu.disabled"
	MenuInteraction = "menu.interaction"
	MenuReaction    = "menu.reaction"
)

// MenuCreatedPayload is published after a menu message lands in a channel.
type MenuCreatedPayload struct {
	GuildID   string `json:"guild_id"`
	ChannelID string `json:"channel_id"`
	MenuID    string `json:"menu_id"`
	Kind      string `json:"kind"`
	Title     string `json:"title"`
}

// MenuStatePayload is published when a menu is enabled or disabled.
type MenuStatePayload struct {
	GuildID string `json:"guild_id"`
	MenuID  string `json:"menu_id"`
	Enabled bool   `json:"enabled"`
}

// MenuInteractionPayload is published for component interactions on a menu.
type MenuInteractionPayload struct {
	GuildID  string   `json:"guild_id"`
	MenuID   string   `json:"menu_id"`
	UserID   string   `json:"user_id"`
	CustomID string   `json:"custom_id"`
	Values   []string `json:"values,omitempty"`
}

// MenuReactionPayload is published for raw reaction events on a menu.
type MenuReactionPayload struct {
	GuildID string `json:"guild_id"`
	MenuID  string `json:"menu_id"`
	UserID  string `json:"user_id"`
	Emoji   string `json:"emoji"`
	Added   bool   `json:"added"`
}
