package menus

import (
	"context"
	"fmt"

	discord "github.com/reactable-club/discord-menu-bot/app/discordgo"
	menuevents "github.com/reactable-club/discord-menu-bot/app/events/menu"
	"github.com/reactable-club/discord-menu-bot/app/menu"
	"github.com/reactable-club/discord-menu-bot/observability/attr"
	"github.com/bwmarrin/discordgo"
)

const placeholderContent = "Building menu..."

// SendMenu sends a menu into a channel. The message is sent as a
// placeholder first so the menu learns its message ID, which every
// component custom ID embeds, then edited into its rendered form.
func (mm *menuManager) SendMenu(ctx context.Context, channelID string, m menu.Renderable) (MenuOperationResult, error) {
	return mm.operationWrapper(ctx, "send_menu", func(ctx context.Context) (MenuOperationResult, error) {
		base := m.Base()
		if base.MessageID != "" {
			return MenuOperationResult{Failure: "menu already sent"}, nil
		}

		msg, err := mm.session.ChannelMessageSend(channelID, placeholderContent)
		if err != nil {
			return MenuOperationResult{Error: err}, fmt.Errorf("failed to send menu placeholder: %w", err)
		}

		base.MessageID = msg.ID
		base.ChannelID = channelID
		if base.GuildID == "" && mm.config != nil {
			base.GuildID = mm.config.GetGuildID()
		}
		base.Enabled = base.AutoEnable

		if err := mm.renderMenu(ctx, m); err != nil {
			return MenuOperationResult{Error: err}, err
		}

		if m.Kind() == menu.KindReaction && base.Enabled {
			mm.reconcileReactions(ctx, m)
		}

		if err := mm.registry.Set(ctx, base.MessageID, m); err != nil {
			return MenuOperationResult{Error: err}, err
		}
		if err := mm.store.Save(ctx, m); err != nil {
			return MenuOperationResult{Error: err}, err
		}

		mm.publishMenuEvent(ctx, menuevents.MenuCreated, menuevents.MenuCreatedPayload{
			GuildID:   base.GuildID,
			ChannelID: base.ChannelID,
			MenuID:    base.MessageID,
			Kind:      string(m.Kind()),
			Title:     base.Title,
		}, base)

		mm.logger.InfoContext(ctx, "Menu sent",
			attr.String("menu_id", base.MessageID),
			attr.String("channel_id", channelID),
			attr.String("kind", string(m.Kind())),
		)

		return MenuOperationResult{Success: base.MessageID}, nil
	})
}

// UpdateMenu re-renders a sent menu in place after its options or text
// changed, and persists the new state.
func (mm *menuManager) UpdateMenu(ctx context.Context, m menu.Renderable) (MenuOperationResult, error) {
	return mm.operationWrapper(ctx, "update_menu", func(ctx context.Context) (MenuOperationResult, error) {
		base := m.Base()
		if base.MessageID == "" {
			return MenuOperationResult{Error: menu.ErrNotSent}, menu.ErrNotSent
		}

		if err := mm.renderMenu(ctx, m); err != nil {
			return MenuOperationResult{Error: err}, err
		}
		if m.Kind() == menu.KindReaction && base.Enabled {
			mm.reconcileReactions(ctx, m)
		}
		if err := mm.store.Save(ctx, m); err != nil {
			return MenuOperationResult{Error: err}, err
		}

		return MenuOperationResult{Success: base.MessageID}, nil
	})
}

// EnableMenu turns a menu on. Unlike DisableMenu it fails on an unsent
// menu, since enabling only means anything once components exist.
func (mm *menuManager) EnableMenu(ctx context.Context, m menu.Renderable) (MenuOperationResult, error) {
	return mm.operationWrapper(ctx, "enable_menu", func(ctx context.Context) (MenuOperationResult, error) {
		base := m.Base()
		if base.MessageID == "" {
			return MenuOperationResult{Error: menu.ErrNotSent}, menu.ErrNotSent
		}
		if base.Enabled {
			return MenuOperationResult{Success: base.MessageID}, nil
		}

		base.Enabled = true
		if err := mm.renderMenu(ctx, m); err != nil {
			base.Enabled = false
			return MenuOperationResult{Error: err}, err
		}
		if m.Kind() == menu.KindReaction {
			mm.reconcileReactions(ctx, m)
		}
		if err := mm.store.Save(ctx, m); err != nil {
			return MenuOperationResult{Error: err}, err
		}

		mm.publishMenuEvent(ctx, menuevents.MenuEnabled, menuevents.MenuStatePayload{
			GuildID: base.GuildID,
			MenuID:  base.MessageID,
			Enabled: true,
		}, base)

		return MenuOperationResult{Success: base.MessageID}, nil
	})
}

// DisableMenu turns a menu off. Disabling an unsent menu is a no-op.
func (mm *menuManager) DisableMenu(ctx context.Context, m menu.Renderable) (MenuOperationResult, error) {
	return mm.operationWrapper(ctx, "disable_menu", func(ctx context.Context) (MenuOperationResult, error) {
		base := m.Base()
		if base.MessageID == "" {
			return MenuOperationResult{Failure: "menu not sent"}, nil
		}
		if !base.Enabled {
			return MenuOperationResult{Success: base.MessageID}, nil
		}

		base.Enabled = false
		if err := mm.renderMenu(ctx, m); err != nil {
			base.Enabled = true
			return MenuOperationResult{Error: err}, err
		}
		if m.Kind() == menu.KindReaction {
			if err := mm.session.MessageReactionsRemoveAll(base.ChannelID, base.MessageID); err != nil {
				mm.logger.WarnContext(ctx, "Failed to clear reactions on disable",
					attr.String("menu_id", base.MessageID),
					attr.Error(err),
				)
			}
		}
		if err := mm.store.Save(ctx, m); err != nil {
			return MenuOperationResult{Error: err}, err
		}

		mm.publishMenuEvent(ctx, menuevents.MenuDisabled, menuevents.MenuStatePayload{
			GuildID: base.GuildID,
			MenuID:  base.MessageID,
			Enabled: false,
		}, base)

		return MenuOperationResult{Success: base.MessageID}, nil
	})
}

// renderMenu edits the menu's message to its current embed and components.
func (mm *menuManager) renderMenu(ctx context.Context, m menu.Renderable) error {
	base := m.Base()
	content := ""
	embeds := []*discordgo.MessageEmbed{base.BuildEmbed()}
	components := m.Components()
	if components == nil {
		components = []discordgo.MessageComponent{}
	}

	err := discord.RetryDiscordAPI(mm.logger, "edit_menu_message", func() error {
		_, err := mm.session.ChannelMessageEditComplex(&discordgo.MessageEdit{
			Channel:    base.ChannelID,
			ID:         base.MessageID,
			Content:    &content,
			Embeds:     &embeds,
			Components: &components,
		})
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to render menu %s: %w", base.MessageID, err)
	}
	return nil
}

// reconcileReactions makes the message's bot reactions match the option
// set: each option emoji gets seeded, and stray emojis picked up while the
// option set changed are cleared entirely. Reconciliation is best effort
// per emoji, so one deleted custom emoji cannot wedge the whole menu.
func (mm *menuManager) reconcileReactions(ctx context.Context, m menu.Renderable) {
	base := m.Base()

	for _, opt := range base.Options {
		emoji := opt.Emoji
		err := discord.RetryDiscordAPI(mm.logger, "seed_reaction", func() error {
			return mm.session.MessageReactionAdd(base.ChannelID, base.MessageID, emoji.APIName())
		})
		if err != nil {
			mm.logger.WarnContext(ctx, "Failed to seed reaction",
				attr.String("menu_id", base.MessageID),
				attr.String("emoji", emoji.Key()),
				attr.Error(err),
			)
		}
	}

	msg, err := mm.session.ChannelMessage(base.ChannelID, base.MessageID)
	if err != nil {
		mm.logger.WarnContext(ctx, "Failed to inspect menu message for stray reactions",
			attr.String("menu_id", base.MessageID),
			attr.Error(err),
		)
		return
	}
	for _, reaction := range msg.Reactions {
		if reaction.Emoji == nil {
			continue
		}
		if base.OptionByEmoji(*reaction.Emoji) != nil {
			continue
		}
		stray := menu.EmojiFromComponent(*reaction.Emoji)
		if err := mm.session.MessageReactionsRemoveEmoji(base.ChannelID, base.MessageID, stray.APIName()); err != nil {
			mm.logger.WarnContext(ctx, "Failed to clear stray reaction",
				attr.String("menu_id", base.MessageID),
				attr.String("emoji", stray.Key()),
				attr.Error(err),
			)
		}
	}
}
