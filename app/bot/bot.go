// Package bot wires the Discord gateway, the menu manager, and the
// Watermill router into one runnable unit.
package bot

import (
	"context"
	"fmt"
	"log/slog"

	discord "github.com/reactable-club/discord-menu-bot/app/discordgo"
	menuevents "github.com/reactable-club/discord-menu-bot/app/events/menu"
	"github.com/reactable-club/discord-menu-bot/app/menu/discord/menus"
	"github.com/reactable-club/discord-menu-bot/config"
	"github.com/reactable-club/discord-menu-bot/eventbus"
	"github.com/reactable-club/discord-menu-bot/observability/attr"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/bwmarrin/discordgo"
)

type DiscordBot struct {
	Session         discord.Session
	Logger          *slog.Logger
	Config          *config.Config
	Manager         menus.MenuManager
	WatermillRouter *message.Router
	EventBus        eventbus.EventBus
}

func NewDiscordBot(session discord.Session, cfg *config.Config, logger *slog.Logger, eventBus eventbus.EventBus, router *message.Router, manager menus.MenuManager) (*DiscordBot, error) {
	if session == nil {
		return nil, fmt.Errorf("session cannot be nil")
	}
	if manager == nil {
		return nil, fmt.Errorf("manager cannot be nil")
	}
	logger.InfoContext(context.Background(), "Creating DiscordBot")
	return &DiscordBot{
		Session:         session,
		Logger:          logger,
		Config:          cfg,
		Manager:         manager,
		WatermillRouter: router,
		EventBus:        eventBus,
	}, nil
}

// Run restores persisted menus, hooks the gateway handlers up, starts the
// router, and opens the Discord session. It returns once the bot is
// running; cancellation of ctx shuts everything down.
func (bot *DiscordBot) Run(ctx context.Context) error {
	restored, err := bot.Manager.RestoreMenus(ctx)
	if err != nil {
		bot.Logger.ErrorContext(ctx, "Failed to restore menus", attr.Error(err))
		return err
	}
	bot.Logger.InfoContext(ctx, "Menus restored", attr.Int("count", restored))

	bot.registerPersistenceHandlers(ctx)

	bot.Session.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		bot.Manager.HandleInteractionCreate(ctx, i)
	})
	bot.Session.AddHandler(func(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
		bot.Manager.HandleReactionAdd(ctx, r)
	})
	bot.Session.AddHandler(func(s *discordgo.Session, r *discordgo.MessageReactionRemove) {
		bot.Manager.HandleReactionRemove(ctx, r)
	})
	bot.Session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		bot.Logger.InfoContext(ctx, "Discord bot is connected and ready.")
	})

	if bot.WatermillRouter != nil {
		go func() {
			if err := bot.WatermillRouter.Run(ctx); err != nil {
				bot.Logger.ErrorContext(ctx, "Watermill router stopped", attr.Error(err))
			}
		}()
	}

	if err := bot.Session.Open(); err != nil {
		bot.Logger.ErrorContext(ctx, "Error opening discord connection", attr.Error(err))
		return err
	}

	bot.Logger.InfoContext(ctx, "Discord bot is now running.")

	go func() {
		<-ctx.Done()
		bot.Logger.Info("Shutting down Discord bot...")
		bot.Close()
	}()

	return nil
}

// registerPersistenceHandlers re-saves a menu whenever one of its events
// fires, so reaction counts and enable state survive restarts. Persistence
// failures are logged but not redelivered.
func (bot *DiscordBot) registerPersistenceHandlers(ctx context.Context) {
	if bot.WatermillRouter == nil || bot.EventBus == nil || bot.EventBus.Subscriber() == nil {
		return
	}

	topics := []string{
		menuevents.MenuEnabled,
		menuevents.MenuDisabled,
		menuevents.MenuInteraction,
		menuevents.MenuReaction,
	}
	for _, topic := range topics {
		bot.WatermillRouter.AddNoPublisherHandler(
			"persist_on_"+topic,
			topic,
			bot.EventBus.Subscriber(),
			func(msg *message.Message) error {
				menuID := msg.Metadata.Get("menu_id")
				if menuID == "" {
					return nil
				}
				if err := bot.Manager.PersistMenu(ctx, menuID); err != nil {
					bot.Logger.WarnContext(ctx, "Failed to persist menu after event",
						attr.String("menu_id", menuID),
						attr.Error(err),
					)
				}
				return nil
			},
		)
	}
}

func (b *DiscordBot) Close() {
	b.Logger.Info("Closing bot")
	if b.WatermillRouter != nil {
		if err := b.WatermillRouter.Close(); err != nil {
			b.Logger.Error("Failed to close Watermill router", attr.Error(err))
		}
	}
	if err := b.Session.Close(); err != nil {
		b.Logger.Error("Failed to close Discord session", attr.Error(err))
	}
	if b.EventBus != nil {
		if err := b.EventBus.Close(); err != nil {
			b.Logger.Error("Failed to close EventBus", attr.Error(err))
		}
	}
}
