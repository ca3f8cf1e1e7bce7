package menus

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/reactable-club/discord-menu-bot/app/menu"
	"github.com/reactable-club/discord-menu-bot/observability/attr"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

// BuildMenuEventMessage builds a Watermill message carrying a menu event
// payload, stamped with the metadata downstream handlers route on.
func BuildMenuEventMessage(topic string, payload interface{}, guildID, menuID string) (*message.Message, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", topic, err)
	}

	msg := message.NewMessage(uuid.New().String(), payloadBytes)
	msg.Metadata.Set("correlation_id", uuid.New().String())
	msg.Metadata.Set("topic", topic)
	msg.Metadata.Set("message_type", topic+".v1")
	msg.Metadata.Set("domain", "discord")
	msg.Metadata.Set("guild_id", guildID)
	msg.Metadata.Set("menu_id", menuID)
	msg.Metadata.Set("emitted_at", time.Now().UTC().Format(time.RFC3339Nano))
	return msg, nil
}

// publishMenuEvent builds and publishes a menu event. Publishing is best
// effort; a failure is logged but never fails the operation that caused it.
func (mm *menuManager) publishMenuEvent(ctx context.Context, topic string, payload interface{}, base *menu.Menu) {
	msg, err := BuildMenuEventMessage(topic, payload, base.GuildID, base.MessageID)
	if err != nil {
		mm.logger.ErrorContext(ctx, "Failed to build menu event",
			attr.String("topic", topic),
			attr.Error(err),
		)
		return
	}
	if err := mm.publisher.Publish(topic, msg); err != nil {
		mm.logger.ErrorContext(ctx, "Failed to publish menu event",
			attr.String("topic", topic),
			attr.String("menu_id", base.MessageID),
			attr.Error(err),
		)
	}
}
