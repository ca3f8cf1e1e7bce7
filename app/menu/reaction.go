package menu

import (
	"context"

	"github.com/bwmarrin/discordgo"
)

// ReactionMenu is driven by raw reaction gateway events instead of message
// components. Options double as the reactions the bot seeds on the message.
type ReactionMenu struct {
	Menu

	AddHandler    ReactionAddHandler
	RemoveHandler ReactionRemoveHandler
}

// NewReactionMenu creates a reaction menu.
func NewReactionMenu(title string) *ReactionMenu {
	return &ReactionMenu{Menu: *NewMenu(title)}
}

func (r *ReactionMenu) Base() *Menu {
	return &r.Menu
}

func (r *ReactionMenu) Kind() Kind {
	return KindReaction
}

// Components returns nil: reaction menus carry no message components.
func (r *ReactionMenu) Components() []discordgo.MessageComponent {
	return nil
}

// BindHandlers attaches the reaction callbacks. Handlers are rebound after
// loading a menu from storage.
func (r *ReactionMenu) BindHandlers(add ReactionAddHandler, remove ReactionRemoveHandler) {
	r.AddHandler = add
	r.RemoveHandler = remove
}

// HandleReactionAdd invokes the bound add handler, if any.
func (r *ReactionMenu) HandleReactionAdd(ctx context.Context, event *discordgo.MessageReactionAdd) error {
	if r.AddHandler == nil {
		return nil
	}
	return r.AddHandler(ctx, r, event)
}

// HandleReactionRemove invokes the bound remove handler, if any.
func (r *ReactionMenu) HandleReactionRemove(ctx context.Context, event *discordgo.MessageReactionRemove) error {
	if r.RemoveHandler == nil {
		return nil
	}
	return r.RemoveHandler(ctx, r, event)
}

// ToDict returns the persisted form of the reaction menu.
func (r *ReactionMenu) ToDict() map[string]any {
	return r.baseToDict(KindReaction)
}

// ReactionMenuFromDict loads a reaction menu from its persisted form. The
// reaction handlers must be rebound by the caller.
func ReactionMenuFromDict(data map[string]any) (*ReactionMenu, error) {
	base, err := baseFromDict(data)
	if err != nil {
		return nil, err
	}
	return &ReactionMenu{Menu: *base}, nil
}
