package menu

import (
	"context"

	"github.com/bwmarrin/discordgo"
)

// ButtonMenu renders one button per option.
type ButtonMenu struct {
	Menu
	ButtonLabels bool
	ButtonStyle  discordgo.ButtonStyle

	Handler InteractionHandler
}

// NewButtonMenu creates a button menu with the primary button style.
func NewButtonMenu(title string) *ButtonMenu {
	return &ButtonMenu{
		Menu:        *NewMenu(title),
		ButtonStyle: discordgo.PrimaryButton,
	}
}

func (b *ButtonMenu) Base() *Menu {
	return &b.Menu
}

func (b *ButtonMenu) Kind() Kind {
	return KindButton
}

// BindHandler attaches the interaction callback. Handlers are rebound after
// loading a menu from storage.
func (b *ButtonMenu) BindHandler(h InteractionHandler) {
	b.Handler = h
}

// HandleInteraction invokes the bound handler, if any.
func (b *ButtonMenu) HandleInteraction(ctx context.Context, i *discordgo.InteractionCreate) error {
	if b.Handler == nil {
		return nil
	}
	return b.Handler(ctx, b, i)
}

// Components builds the action rows for the current menu state: the
// enable/disable control plus one button per option while enabled.
func (b *ButtonMenu) Components() []discordgo.MessageComponent {
	buttons := []discordgo.MessageComponent{enableDisableButton(&b.Menu)}

	if b.Enabled {
		for _, opt := range b.Options {
			label := ""
			if b.ButtonLabels {
				label = opt.Label()
			}
			buttons = append(buttons, discordgo.Button{
				Label:    label,
				Emoji:    opt.Emoji.Component(),
				Style:    b.ButtonStyle,
				CustomID: OptionCustomID(opt.Key(), b.MessageID),
			})
		}
	}

	return chunkIntoRows(buttons)
}

// ToDict returns the persisted form of the button menu.
func (b *ButtonMenu) ToDict() map[string]any {
	data := b.baseToDict(KindButton)
	data["button_style"] = int(b.ButtonStyle)
	data["button_labels"] = b.ButtonLabels
	return data
}

// ButtonMenuFromDict loads a button menu from its persisted form. The
// interaction handler must be rebound by the caller.
func ButtonMenuFromDict(data map[string]any) (*ButtonMenu, error) {
	base, err := baseFromDict(data)
	if err != nil {
		return nil, err
	}

	b := &ButtonMenu{
		Menu:         *base,
		ButtonLabels: dictBool(data, "button_labels"),
		ButtonStyle:  discordgo.PrimaryButton,
	}
	if _, ok := data["button_style"]; ok {
		b.ButtonStyle = discordgo.ButtonStyle(dictInt(data, "button_style"))
	}
	return b, nil
}
