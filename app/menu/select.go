package menu

import (
	"context"

	"github.com/bwmarrin/discordgo"
)

// SelectMenu renders all options inside a single Discord select component.
type SelectMenu struct {
	Menu
	MenuLabels  bool
	Placeholder string

	Handler InteractionHandler
}

// NewSelectMenu creates a select menu.
func NewSelectMenu(title string) *SelectMenu {
	return &SelectMenu{Menu: *NewMenu(title)}
}

func (s *SelectMenu) Base() *Menu {
	return &s.Menu
}

func (s *SelectMenu) Kind() Kind {
	return KindSelect
}

// BindHandler attaches the interaction callback. Handlers are rebound after
// loading a menu from storage.
func (s *SelectMenu) BindHandler(h InteractionHandler) {
	s.Handler = h
}

// HandleInteraction invokes the bound handler, if any.
func (s *SelectMenu) HandleInteraction(ctx context.Context, i *discordgo.InteractionCreate) error {
	if s.Handler == nil {
		return nil
	}
	return s.Handler(ctx, s, i)
}

// Components builds the enable/disable control and the select component.
// The select stays visible while disabled but cannot be used.
func (s *SelectMenu) Components() []discordgo.MessageComponent {
	options := make([]discordgo.SelectMenuOption, 0, len(s.Options))
	for _, opt := range s.Options {
		label := zeroWidthSpace
		if s.MenuLabels {
			label = opt.Label()
		}
		options = append(options, discordgo.SelectMenuOption{
			Label: label,
			Value: OptionCustomID(opt.Key(), s.MessageID),
			Emoji: opt.Emoji.Component(),
		})
	}

	minValues := 0
	selectComponent := discordgo.SelectMenu{
		CustomID:    SelectCustomID(s.MessageID),
		Placeholder: s.Placeholder,
		MinValues:   &minValues,
		MaxValues:   len(options),
		Options:     options,
		Disabled:    !s.Enabled,
	}

	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{enableDisableButton(&s.Menu)}},
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{selectComponent}},
	}
}

// ToDict returns the persisted form of the select menu.
func (s *SelectMenu) ToDict() map[string]any {
	data := s.baseToDict(KindSelect)
	data["menu_labels"] = s.MenuLabels
	data["placeholder"] = s.Placeholder
	return data
}

// SelectMenuFromDict loads a select menu from its persisted form. The
// interaction handler must be rebound by the caller.
func SelectMenuFromDict(data map[string]any) (*SelectMenu, error) {
	base, err := baseFromDict(data)
	if err != nil {
		return nil, err
	}
	return &SelectMenu{
		Menu:        *base,
		MenuLabels:  dictBool(data, "menu_labels"),
		Placeholder: dictString(data, "placeholder"),
	}, nil
}
