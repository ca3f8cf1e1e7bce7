// Package menus wires menu rendering to a live Discord session: sending,
// enable/disable toggling, persistence, and gateway event dispatch.
package menus

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	discord "github.com/reactable-club/discord-menu-bot/app/discordgo"
	"github.com/reactable-club/discord-menu-bot/app/menu"
	"github.com/reactable-club/discord-menu-bot/app/shared/storage"
	"github.com/reactable-club/discord-menu-bot/config"
	"github.com/reactable-club/discord-menu-bot/eventbus"
	"github.com/reactable-club/discord-menu-bot/observability/attr"
	"github.com/bwmarrin/discordgo"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// MenuManager owns every live menu: it sends them, flips their enabled
// state, dispatches gateway events to them, and keeps the store in sync.
type MenuManager interface {
	SendMenu(ctx context.Context, channelID string, m menu.Renderable) (MenuOperationResult, error)
	UpdateMenu(ctx context.Context, m menu.Renderable) (MenuOperationResult, error)
	EnableMenu(ctx context.Context, m menu.Renderable) (MenuOperationResult, error)
	DisableMenu(ctx context.Context, m menu.Renderable) (MenuOperationResult, error)
	RegisterMenu(ctx context.Context, m menu.Renderable) error
	GetMenu(ctx context.Context, menuID string) (menu.Renderable, error)
	RemoveMenu(ctx context.Context, menuID string) error
	PersistMenu(ctx context.Context, menuID string) error
	RestoreMenus(ctx context.Context) (int, error)
	HandleInteractionCreate(ctx context.Context, i *discordgo.InteractionCreate)
	HandleReactionAdd(ctx context.Context, r *discordgo.MessageReactionAdd)
	HandleReactionRemove(ctx context.Context, r *discordgo.MessageReactionRemove)
}

// MenuOperationResult is the outcome of a menu operation.
type MenuOperationResult struct {
	Success interface{}
	Failure interface{}
	Error   error
}

type menuManager struct {
	session          discord.Session
	publisher        eventbus.EventBus
	logger           *slog.Logger
	config           *config.Config
	registry         storage.RegistryInterface[menu.Renderable]
	store            storage.MenuStore
	tracer           trace.Tracer
	operationWrapper func(ctx context.Context, operationName string, fn func(context.Context) (MenuOperationResult, error)) (MenuOperationResult, error)
}

// NewMenuManager creates a new MenuManager instance.
func NewMenuManager(
	session discord.Session,
	publisher eventbus.EventBus,
	logger *slog.Logger,
	config *config.Config,
	registry storage.RegistryInterface[menu.Renderable],
	store storage.MenuStore,
	tracer trace.Tracer,
) (MenuManager, error) {
	if session == nil {
		return nil, fmt.Errorf("session cannot be nil")
	}
	if publisher == nil {
		return nil, fmt.Errorf("publisher cannot be nil")
	}
	if registry == nil {
		return nil, fmt.Errorf("registry cannot be nil")
	}
	if store == nil {
		return nil, fmt.Errorf("store cannot be nil")
	}
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("menus")
	}
	if logger != nil {
		logger.InfoContext(context.Background(), "Creating MenuManager")
	}

	return &menuManager{
		session:   session,
		publisher: publisher,
		logger:    logger,
		config:    config,
		registry:  registry,
		store:     store,
		tracer:    tracer,
		operationWrapper: func(ctx context.Context, operationName string, fn func(context.Context) (MenuOperationResult, error)) (MenuOperationResult, error) {
			return wrapMenuOperation(ctx, operationName, fn, logger, tracer)
		},
	}, nil
}

// wrapMenuOperation wraps menu operations with tracing, duration logging,
// and panic recovery.
func wrapMenuOperation(
	ctx context.Context,
	operationName string,
	fn func(context.Context) (MenuOperationResult, error),
	logger *slog.Logger,
	tracer trace.Tracer,
) (result MenuOperationResult, err error) {
	if fn == nil {
		return MenuOperationResult{}, fmt.Errorf("operation function is nil")
	}

	ctx, span := tracer.Start(ctx, fmt.Sprintf("menu.%s", operationName))
	defer span.End()

	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			result = MenuOperationResult{Error: err}
			span.RecordError(err)
			if logger != nil {
				logger.ErrorContext(ctx, "Recovered from panic in menu operation",
					attr.String("operation", operationName),
					attr.Error(err),
				)
			}
		}
	}()

	result, err = fn(ctx)
	duration := time.Since(start)

	if err != nil {
		span.RecordError(err)
		if logger != nil {
			logger.ErrorContext(ctx, "Menu operation failed",
				attr.String("operation", operationName),
				attr.Duration("duration", duration),
				attr.Error(err),
			)
		}
		return result, err
	}

	if result.Error != nil {
		span.RecordError(result.Error)
	}

	if logger != nil {
		logger.InfoContext(ctx, "Menu operation completed",
			attr.String("operation", operationName),
			attr.Duration("duration", duration),
		)
	}

	return result, nil
}

// RegisterMenu puts a menu under management without touching Discord. Used
// for menus whose message already exists, such as restored ones.
func (mm *menuManager) RegisterMenu(ctx context.Context, m menu.Renderable) error {
	base := m.Base()
	if base.MessageID == "" {
		return menu.ErrNotSent
	}
	return mm.registry.Set(ctx, base.MessageID, m)
}

// GetMenu returns the live menu with the given ID.
func (mm *menuManager) GetMenu(ctx context.Context, menuID string) (menu.Renderable, error) {
	return mm.registry.Get(ctx, menuID)
}

// RemoveMenu drops a menu from the registry and the store. The Discord
// message is left alone.
func (mm *menuManager) RemoveMenu(ctx context.Context, menuID string) error {
	mm.registry.Delete(ctx, menuID)
	return mm.store.Delete(ctx, menuID)
}

// PersistMenu saves the current state of a live menu.
func (mm *menuManager) PersistMenu(ctx context.Context, menuID string) error {
	m, err := mm.registry.Get(ctx, menuID)
	if err != nil {
		return fmt.Errorf("menu %s is not registered: %w", menuID, err)
	}
	return mm.store.Save(ctx, m)
}

// RestoreMenus loads every persisted menu into the registry and returns how
// many were restored. Handlers are not persisted; callers rebind them after
// restore.
func (mm *menuManager) RestoreMenus(ctx context.Context) (int, error) {
	menus, err := mm.store.LoadAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to restore menus: %w", err)
	}

	restored := 0
	for _, m := range menus {
		if err := mm.registry.Set(ctx, m.Base().MessageID, m); err != nil {
			mm.logger.WarnContext(ctx, "Skipping unrestorable menu",
				attr.String("menu_id", m.Base().MessageID),
				attr.Error(err),
			)
			continue
		}
		restored++
	}

	mm.logger.InfoContext(ctx, "Restored menus from store", attr.Int("count", restored))
	return restored, nil
}
