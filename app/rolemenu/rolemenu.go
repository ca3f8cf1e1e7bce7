// Package rolemenu builds reaction menus that grant and revoke guild roles.
package rolemenu

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"

	discord "github.com/reactable-club/discord-menu-bot/app/discordgo"
	"github.com/reactable-club/discord-menu-bot/app/menu"
	"github.com/reactable-club/discord-menu-bot/observability/attr"
	"github.com/bwmarrin/discordgo"
)

var roleMentionPattern = regexp.MustCompile(`<@&(\d+)>`)

// ExtractRoleID pulls the role ID out of a role mention like <@&123>.
func ExtractRoleID(s string) (string, bool) {
	match := roleMentionPattern.FindStringSubmatch(s)
	if match == nil {
		return "", false
	}
	return match[1], true
}

// RoleMenu is a reaction menu whose options are role mentions. Reacting
// grants the mentioned role, un-reacting revokes it, and reactions that
// match no option are removed.
type RoleMenu struct {
	*menu.ReactionMenu

	session discord.Session
	logger  *slog.Logger
}

// New creates a role menu with its reaction handlers bound.
func New(session discord.Session, logger *slog.Logger, title string) *RoleMenu {
	rm := &RoleMenu{
		ReactionMenu: menu.NewReactionMenu(title),
		session:      session,
		logger:       logger,
	}
	rm.BindHandlers(rm.handleAdd, rm.handleRemove)
	return rm
}

// Attach rebinds the role handlers onto a reaction menu loaded from
// storage.
func Attach(session discord.Session, logger *slog.Logger, loaded *menu.ReactionMenu) *RoleMenu {
	rm := &RoleMenu{
		ReactionMenu: loaded,
		session:      session,
		logger:       logger,
	}
	rm.BindHandlers(rm.handleAdd, rm.handleRemove)
	return rm
}

// AddRole adds an option mapping an emoji to a role mention.
func (rm *RoleMenu) AddRole(emojiInput, roleMention string) error {
	if _, ok := ExtractRoleID(roleMention); !ok {
		return fmt.Errorf("%q is not a role mention", roleMention)
	}
	return rm.AddOption(emojiInput, roleMention)
}

func (rm *RoleMenu) handleAdd(ctx context.Context, m menu.Renderable, r *discordgo.MessageReactionAdd) error {
	base := m.Base()
	opt := base.OptionByEmoji(r.Emoji)
	if opt == nil {
		// Unknown reactions are cleaned up to keep the option set readable.
		emoji := menu.EmojiFromComponent(r.Emoji)
		if err := rm.session.MessageReactionRemove(base.ChannelID, base.MessageID, emoji.APIName(), r.UserID); err != nil {
			rm.logger.WarnContext(ctx, "Failed to remove stray reaction",
				attr.String("menu_id", base.MessageID),
				attr.String("emoji", emoji.Key()),
				attr.Error(err),
			)
		}
		return nil
	}

	roleID, ok := ExtractRoleID(opt.Value)
	if !ok {
		return fmt.Errorf("option %s holds no role mention: %q", opt.Key(), opt.Value)
	}

	if err := rm.session.GuildMemberRoleAdd(base.GuildID, r.UserID, roleID); err != nil {
		return fmt.Errorf("failed to grant role %s to %s: %w", roleID, r.UserID, err)
	}

	rm.logger.InfoContext(ctx, "Granted role from menu",
		attr.String("menu_id", base.MessageID),
		attr.String("user_id", r.UserID),
		attr.String("role_id", roleID),
	)
	return nil
}

func (rm *RoleMenu) handleRemove(ctx context.Context, m menu.Renderable, r *discordgo.MessageReactionRemove) error {
	base := m.Base()
	opt := base.OptionByEmoji(r.Emoji)
	if opt == nil {
		return nil
	}

	roleID, ok := ExtractRoleID(opt.Value)
	if !ok {
		return fmt.Errorf("option %s holds no role mention: %q", opt.Key(), opt.Value)
	}

	if err := rm.session.GuildMemberRoleRemove(base.GuildID, r.UserID, roleID); err != nil {
		return fmt.Errorf("failed to revoke role %s from %s: %w", roleID, r.UserID, err)
	}

	rm.logger.InfoContext(ctx, "Revoked role from menu",
		attr.String("menu_id", base.MessageID),
		attr.String("user_id", r.UserID),
		attr.String("role_id", roleID),
	)
	return nil
}
