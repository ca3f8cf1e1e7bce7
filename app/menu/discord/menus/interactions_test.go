package menus

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	menuevents "github.com/reactable-club/discord-menu-bot/app/events/menu"
	"github.com/reactable-club/discord-menu-bot/app/menu"
	"github.com/reactable-club/discord-menu-bot/app/pollmenu"
	"github.com/reactable-club/discord-menu-bot/app/shared/testutils"
	"github.com/bwmarrin/discordgo"
	"go.uber.org/mock/gomock"
)

func componentInteraction(customID string, values ...string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type: discordgo.InteractionMessageComponent,
			Data: discordgo.MessageComponentInteractionData{
				CustomID: customID,
				Values:   values,
			},
			Member: &discordgo.Member{User: &discordgo.User{ID: "user-1"}},
		},
	}
}

func reactionAdd(messageID, userID, emojiName string) *discordgo.MessageReactionAdd {
	return &discordgo.MessageReactionAdd{
		MessageReaction: &discordgo.MessageReaction{
			MessageID: messageID,
			UserID:    userID,
			Emoji:     discordgo.Emoji{Name: emojiName},
		},
	}
}

func reactionRemove(messageID, userID, emojiName string) *discordgo.MessageReactionRemove {
	return &discordgo.MessageReactionRemove{
		MessageReaction: &discordgo.MessageReaction{
			MessageID: messageID,
			UserID:    userID,
			Emoji:     discordgo.Emoji{Name: emojiName},
		},
	}
}

func TestHandleInteractionCreate_EnableControl(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	b := menu.NewButtonMenu("Vote")
	b.MessageID = "100"
	b.ChannelID = "chan-1"
	if err := env.manager.RegisterMenu(ctx, b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	env.store.EXPECT().Save(gomock.Any(), b).Return(nil)

	var responded string
	env.session.InteractionRespondFunc = func(_ *discordgo.Interaction, resp *discordgo.InteractionResponse, _ ...discordgo.RequestOption) error {
		responded = resp.Data.Content
		if resp.Data.Flags&discordgo.MessageFlagsEphemeral == 0 {
			t.Error("control responses must be ephemeral")
		}
		return nil
	}

	env.manager.HandleInteractionCreate(ctx, componentInteraction("enable_100"))

	if !b.Enabled {
		t.Error("enable control must enable the menu")
	}
	if responded != enabledNotice {
		t.Errorf("response = %q, want %q", responded, enabledNotice)
	}
}

func TestHandleInteractionCreate_DisableControl(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	b := menu.NewButtonMenu("Vote")
	b.MessageID = "100"
	b.ChannelID = "chan-1"
	b.Enabled = true
	if err := env.manager.RegisterMenu(ctx, b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	env.store.EXPECT().Save(gomock.Any(), b).Return(nil)

	env.manager.HandleInteractionCreate(ctx, componentInteraction("disable_100"))

	if b.Enabled {
		t.Error("disable control must disable the menu")
	}
}

func TestHandleInteractionCreate_DisabledMenuOption(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	b := menu.NewButtonMenu("Vote")
	b.MessageID = "100"
	if err := b.AddOption("👍", "yes"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	handlerRan := false
	b.BindHandler(func(context.Context, menu.Renderable, *discordgo.InteractionCreate) error {
		handlerRan = true
		return nil
	})
	if err := env.manager.RegisterMenu(ctx, b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var responded string
	env.session.InteractionRespondFunc = func(_ *discordgo.Interaction, resp *discordgo.InteractionResponse, _ ...discordgo.RequestOption) error {
		responded = resp.Data.Content
		return nil
	}

	env.manager.HandleInteractionCreate(ctx, componentInteraction("👍_100"))

	if handlerRan {
		t.Error("option handler must not run while the menu is disabled")
	}
	if responded != inactiveNotice {
		t.Errorf("response = %q, want %q", responded, inactiveNotice)
	}
}

func TestHandleInteractionCreate_DispatchesOption(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	b := menu.NewButtonMenu("Vote")
	b.MessageID = "100"
	b.Enabled = true
	if err := b.AddOption("👍", "yes"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var gotCustomID string
	b.BindHandler(func(_ context.Context, _ menu.Renderable, i *discordgo.InteractionCreate) error {
		gotCustomID = i.MessageComponentData().CustomID
		return nil
	})
	if err := env.manager.RegisterMenu(ctx, b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	env.manager.HandleInteractionCreate(ctx, componentInteraction("👍_100"))

	if gotCustomID != "👍_100" {
		t.Errorf("handler custom id = %q", gotCustomID)
	}

	published := env.eventBus.Published(menuevents.MenuInteraction)
	if len(published) != 1 {
		t.Fatalf("published = %d, want one interaction event", len(published))
	}
	var payload menuevents.MenuInteractionPayload
	if err := json.Unmarshal(published[0].Payload, &payload); err != nil {
		t.Fatalf("failed to unmarshal payload: %v", err)
	}
	if payload.UserID != "user-1" || payload.CustomID != "👍_100" {
		t.Errorf("payload = %+v", payload)
	}
}

func TestHandleInteractionCreate_HandlerErrorSuppressesEvent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	b := menu.NewButtonMenu("Vote")
	b.MessageID = "100"
	b.Enabled = true
	b.BindHandler(func(context.Context, menu.Renderable, *discordgo.InteractionCreate) error {
		return errors.New("handler broke")
	})
	if err := env.manager.RegisterMenu(ctx, b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	env.manager.HandleInteractionCreate(ctx, componentInteraction("👍_100"))

	if len(env.eventBus.Published(menuevents.MenuInteraction)) != 0 {
		t.Error("no event must publish when the handler fails")
	}
}

func TestHandleInteractionCreate_ForeignMessageIgnored(t *testing.T) {
	env := newTestEnv(t)

	responded := false
	env.session.InteractionRespondFunc = func(*discordgo.Interaction, *discordgo.InteractionResponse, ...discordgo.RequestOption) error {
		responded = true
		return nil
	}

	env.manager.HandleInteractionCreate(context.Background(), componentInteraction("somebutton_999"))

	if responded {
		t.Error("interactions on unknown messages must be left alone")
	}
}

func TestHandleInteractionCreate_WrongType(t *testing.T) {
	env := newTestEnv(t)

	// A ping must not panic or touch anything.
	env.manager.HandleInteractionCreate(context.Background(), &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{Type: discordgo.InteractionPing},
	})
	env.manager.HandleInteractionCreate(context.Background(), nil)
}

func TestHandleReactionAdd(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	r := menu.NewReactionMenu("Poll")
	r.MessageID = "100"
	r.Enabled = true
	if err := r.AddOption("👍", "yes"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var handled bool
	r.BindHandlers(
		func(context.Context, menu.Renderable, *discordgo.MessageReactionAdd) error {
			handled = true
			return nil
		},
		nil,
	)
	if err := env.manager.RegisterMenu(ctx, r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	env.manager.HandleReactionAdd(ctx, reactionAdd("100", "user-1", "👍"))

	if !handled {
		t.Error("reaction handler must run")
	}
	if got := r.Option("👍").ReactionCount; got != 1 {
		t.Errorf("reaction count = %d, want 1", got)
	}
	if len(env.eventBus.Published(menuevents.MenuReaction)) != 1 {
		t.Error("expected a menu.reaction event")
	}
}

func TestHandleReactionAdd_BotIgnored(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	r := menu.NewReactionMenu("Poll")
	r.MessageID = "100"
	r.Enabled = true
	if err := r.AddOption("👍", "yes"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := env.manager.RegisterMenu(ctx, r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The fake session reports the bot user as "bot-user".
	env.manager.HandleReactionAdd(ctx, reactionAdd("100", "bot-user", "👍"))

	if got := r.Option("👍").ReactionCount; got != 0 {
		t.Errorf("reaction count = %d, want the bot's seed ignored", got)
	}
	if len(env.eventBus.Published(menuevents.MenuReaction)) != 0 {
		t.Error("bot reactions must not publish events")
	}
}

func TestHandleReactionAdd_DisabledIgnored(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	r := menu.NewReactionMenu("Poll")
	r.MessageID = "100"
	if err := r.AddOption("👍", "yes"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := env.manager.RegisterMenu(ctx, r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	env.manager.HandleReactionAdd(ctx, reactionAdd("100", "user-1", "👍"))

	if got := r.Option("👍").ReactionCount; got != 0 {
		t.Errorf("reaction count = %d, want disabled menus inert", got)
	}
}

func TestHandleReactionRemove(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	r := menu.NewReactionMenu("Poll")
	r.MessageID = "100"
	r.Enabled = true
	if err := r.AddOption("👍", "yes"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r.Option("👍").ReactionCount = 2
	if err := env.manager.RegisterMenu(ctx, r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	env.manager.HandleReactionRemove(ctx, reactionRemove("100", "user-1", "👍"))

	if got := r.Option("👍").ReactionCount; got != 1 {
		t.Errorf("reaction count = %d, want 1", got)
	}
}

func TestHandleReactionAdd_SingleChoicePollKeepsOtherVotes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	p := pollmenu.New(env.session, testutils.NoOpLogger(), "Lunch", true)
	p.MessageID = "100"
	p.ChannelID = "chan-1"
	p.Enabled = true
	if err := p.AddOption("🍕", "Pizza"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := p.AddOption("🌮", "Tacos"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := env.manager.RegisterMenu(ctx, p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	env.manager.HandleReactionAdd(ctx, reactionAdd("100", "user-2", "🌮"))
	env.manager.HandleReactionAdd(ctx, reactionAdd("100", "user-1", "🍕"))
	env.manager.HandleReactionAdd(ctx, reactionAdd("100", "user-1", "🌮"))
	// Discord echoes the poll's rejection removal back through the gateway.
	env.manager.HandleReactionRemove(ctx, reactionRemove("100", "user-1", "🌮"))

	if !containsCall(env.session.Trace(), "MessageReactionRemove") {
		t.Error("the second pick must be stripped from the message")
	}
	if got := p.Option("🌮").ReactionCount; got != 1 {
		t.Errorf("rejected option count = %d, want user-2's vote kept", got)
	}
	if got := p.Option("🍕").ReactionCount; got != 1 {
		t.Errorf("first pick count = %d, want 1", got)
	}
}

func TestHandleReactionRemove_NeverNegative(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	r := menu.NewReactionMenu("Poll")
	r.MessageID = "100"
	r.Enabled = true
	if err := r.AddOption("👍", "yes"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := env.manager.RegisterMenu(ctx, r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	env.manager.HandleReactionRemove(ctx, reactionRemove("100", "user-1", "👍"))

	if got := r.Option("👍").ReactionCount; got != 0 {
		t.Errorf("reaction count = %d, must not go negative", got)
	}
}
