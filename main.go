package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/bwmarrin/discordgo"
	"github.com/reactable-club/discord-menu-bot/app/bot"
	discord "github.com/reactable-club/discord-menu-bot/app/discordgo"
	"github.com/reactable-club/discord-menu-bot/app/health"
	"github.com/reactable-club/discord-menu-bot/app/menu"
	"github.com/reactable-club/discord-menu-bot/app/menu/discord/menus"
	"github.com/reactable-club/discord-menu-bot/app/shared/storage"
	"github.com/reactable-club/discord-menu-bot/config"
	"github.com/reactable-club/discord-menu-bot/eventbus"
	"github.com/reactable-club/discord-menu-bot/observability/attr"
	"go.opentelemetry.io/otel"
)

func main() {
	// Load configuration.
	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	eventBus, err := eventbus.NewEventBus(ctx, logger)
	if err != nil {
		log.Fatalf("Failed to create event bus: %v", err)
	}

	store, err := storage.NewSQLiteMenuStore(cfg.Storage.DSN)
	if err != nil {
		log.Fatalf("Failed to open menu store: %v", err)
	}
	registry := storage.NewRegistry[menu.Renderable](ctx, storage.DefaultRegistryTTL)

	// Create Discord session.
	discordSession, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		log.Fatalf("Failed to create Discord session: %v", err)
	}

	// Set Discord intents.
	discordSession.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMessageReactions

	discordSessionWrapper := discord.NewDiscordSession(discordSession, logger)

	// Create the Watermill message router.
	watermillRouter, err := message.NewRouter(message.RouterConfig{}, watermill.NewSlogLogger(logger))
	if err != nil {
		log.Fatalf("Failed to create Watermill router: %v", err)
	}

	manager, err := menus.NewMenuManager(
		discordSessionWrapper,
		eventBus,
		logger,
		cfg,
		registry,
		store,
		otel.Tracer(cfg.Service.Name),
	)
	if err != nil {
		log.Fatalf("Failed to create menu manager: %v", err)
	}

	discordBot, err := bot.NewDiscordBot(discordSessionWrapper, cfg, logger, eventBus, watermillRouter, manager)
	if err != nil {
		log.Fatalf("Failed to create Discord bot: %v", err)
	}

	if cfg.Service.HealthAddr != "" {
		healthHandler := health.NewHandler(cfg.Service.Name, registry.Len, func() error {
			return store.Ping(ctx)
		})
		go func() {
			if err := healthHandler.StartServer(cfg.Service.HealthAddr); err != nil {
				logger.Error("Health server stopped", attr.Error(err))
			}
		}()
	}

	go func() {
		if err := discordBot.Run(ctx); err != nil && err != context.Canceled {
			logger.ErrorContext(ctx, "Discord bot error", attr.Error(err))
			cancel()
		}
	}()

	// Handle graceful shutdown.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down gracefully...")
	cancel()

	discordBot.Close()

	if err := store.Close(); err != nil {
		logger.Error("Failed to close menu store", attr.Error(err))
	}

	logger.Info("Shutdown complete.")
}
