package menus

import (
	"context"
	"errors"

	menuevents "github.com/reactable-club/discord-menu-bot/app/events/menu"
	"github.com/reactable-club/discord-menu-bot/app/menu"
	"github.com/reactable-club/discord-menu-bot/app/shared/storage"
	"github.com/reactable-club/discord-menu-bot/observability/attr"
	"github.com/bwmarrin/discordgo"
)

const (
	enabledNotice  = "Menu enabled!"
	disabledNotice = "Menu disabled!"
	inactiveNotice = "This menu is currently disabled!"
)

// HandleInteractionCreate routes a component interaction to the menu it
// belongs to. Interactions on messages that are not menus are ignored so
// other handlers on the session can claim them.
func (mm *menuManager) HandleInteractionCreate(ctx context.Context, i *discordgo.InteractionCreate) {
	if i == nil || i.Interaction == nil || i.Type != discordgo.InteractionMessageComponent {
		return
	}

	data := i.MessageComponentData()
	parsed, ok := menu.ParseCustomID(data.CustomID)
	if !ok {
		return
	}

	m, err := mm.registry.Get(ctx, parsed.MessageID)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			mm.logger.ErrorContext(ctx, "Menu lookup failed",
				attr.String("menu_id", parsed.MessageID),
				attr.Error(err),
			)
		}
		return
	}
	base := m.Base()

	switch parsed.Kind {
	case menu.CustomIDEnable:
		if _, err := mm.EnableMenu(ctx, m); err != nil {
			mm.logger.ErrorContext(ctx, "Failed to enable menu from control",
				attr.String("menu_id", base.MessageID),
				attr.Error(err),
			)
			return
		}
		mm.respondEphemeral(ctx, i, enabledNotice)
		return

	case menu.CustomIDDisable:
		if _, err := mm.DisableMenu(ctx, m); err != nil {
			mm.logger.ErrorContext(ctx, "Failed to disable menu from control",
				attr.String("menu_id", base.MessageID),
				attr.Error(err),
			)
			return
		}
		mm.respondEphemeral(ctx, i, disabledNotice)
		return
	}

	// Option buttons and select picks only fire while the menu is on.
	if !base.Enabled {
		mm.respondEphemeral(ctx, i, inactiveNotice)
		return
	}

	if handling, ok := m.(menu.InteractionHandling); ok {
		if err := handling.HandleInteraction(ctx, i); err != nil {
			mm.logger.ErrorContext(ctx, "Menu interaction handler failed",
				attr.String("menu_id", base.MessageID),
				attr.String("custom_id", data.CustomID),
				attr.Error(err),
			)
			return
		}
	}

	mm.touch(ctx, m)
	mm.publishMenuEvent(ctx, menuevents.MenuInteraction, menuevents.MenuInteractionPayload{
		GuildID:  base.GuildID,
		MenuID:   base.MessageID,
		UserID:   interactionUserID(i),
		CustomID: data.CustomID,
		Values:   data.Values,
	}, base)
}

// HandleReactionAdd routes a raw reaction-add event to the reaction menu it
// landed on. The bot's own seed reactions are ignored.
func (mm *menuManager) HandleReactionAdd(ctx context.Context, r *discordgo.MessageReactionAdd) {
	if r == nil {
		return
	}

	m, err := mm.registry.Get(ctx, r.MessageID)
	if err != nil {
		return
	}
	base := m.Base()

	if mm.isSelf(r.UserID) || !base.Enabled {
		return
	}

	if opt := base.OptionByEmoji(r.Emoji); opt != nil {
		opt.ReactionCount++
	}

	if handling, ok := m.(menu.ReactionHandling); ok {
		if err := handling.HandleReactionAdd(ctx, r); err != nil {
			mm.logger.ErrorContext(ctx, "Reaction add handler failed",
				attr.String("menu_id", base.MessageID),
				attr.String("emoji", r.Emoji.Name),
				attr.Error(err),
			)
			return
		}
	}

	mm.touch(ctx, m)
	mm.publishMenuEvent(ctx, menuevents.MenuReaction, menuevents.MenuReactionPayload{
		GuildID: base.GuildID,
		MenuID:  base.MessageID,
		UserID:  r.UserID,
		Emoji:   menu.EmojiFromComponent(r.Emoji).Key(),
		Added:   true,
	}, base)
}

// HandleReactionRemove routes a raw reaction-remove event to the reaction
// menu it came from.
func (mm *menuManager) HandleReactionRemove(ctx context.Context, r *discordgo.MessageReactionRemove) {
	if r == nil {
		return
	}

	m, err := mm.registry.Get(ctx, r.MessageID)
	if err != nil {
		return
	}
	base := m.Base()

	if mm.isSelf(r.UserID) || !base.Enabled {
		return
	}

	if opt := base.OptionByEmoji(r.Emoji); opt != nil && opt.ReactionCount > 0 {
		opt.ReactionCount--
	}

	if handling, ok := m.(menu.ReactionHandling); ok {
		if err := handling.HandleReactionRemove(ctx, r); err != nil {
			mm.logger.ErrorContext(ctx, "Reaction remove handler failed",
				attr.String("menu_id", base.MessageID),
				attr.String("emoji", r.Emoji.Name),
				attr.Error(err),
			)
			return
		}
	}

	mm.touch(ctx, m)
	mm.publishMenuEvent(ctx, menuevents.MenuReaction, menuevents.MenuReactionPayload{
		GuildID: base.GuildID,
		MenuID:  base.MessageID,
		UserID:  r.UserID,
		Emoji:   menu.EmojiFromComponent(r.Emoji).Key(),
		Added:   false,
	}, base)
}

// respondEphemeral acknowledges an interaction with a message only the
// interacting user sees.
func (mm *menuManager) respondEphemeral(ctx context.Context, i *discordgo.InteractionCreate, content string) {
	err := mm.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		mm.logger.WarnContext(ctx, "Failed to respond to interaction", attr.Error(err))
	}
}

// touch re-arms the registry TTL so menus that keep seeing traffic stay
// live.
func (mm *menuManager) touch(ctx context.Context, m menu.Renderable) {
	if err := mm.registry.Set(ctx, m.Base().MessageID, m); err != nil {
		mm.logger.WarnContext(ctx, "Failed to refresh menu registration",
			attr.String("menu_id", m.Base().MessageID),
			attr.Error(err),
		)
	}
}

// isSelf reports whether the user is the bot itself.
func (mm *menuManager) isSelf(userID string) bool {
	bot, err := mm.session.GetBotUser()
	if err != nil {
		return false
	}
	return bot.ID == userID
}

func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}
