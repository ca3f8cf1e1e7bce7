// Package menu implements reactable message menus: embeds with options that
// users act on through buttons, select menus, or raw reactions.
package menu

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// Kind identifies the menu variant in persisted dictionaries.
type Kind string

const (
	KindButton   Kind = "button"
	KindSelect   Kind = "select"
	KindReaction Kind = "reaction"
)

// Default embed colors, matching the classic enabled/disabled palette.
const (
	DefaultEnabledColor  = 0x2ECC71
	DefaultDisabledColor = 0xE74C3C
)

// DefaultTitleDisabledSuffix is appended to the title while a menu is off.
const DefaultTitleDisabledSuffix = "Disabled"

// zeroWidthSpace keeps embed field names visually empty without upsetting
// the Discord API, which rejects empty strings.
const zeroWidthSpace = "​"

var (
	ErrDuplicateOption = errors.New("an option with that emoji already exists")
	ErrUnknownOption   = errors.New("no option with that emoji exists")
	ErrNotSent         = errors.New("menu has not been sent yet")
)

// Hooks are the overridable rendering points of a menu. Any nil hook falls
// back to the default rendering.
type Hooks struct {
	Title       func(*Menu) string
	Description func(*Menu) string
	OptionField func(*Menu, *Option) (name, value string)
	FooterText  func(*Menu) string
	Color       func(*Menu) int
}

// Menu holds the shared state of every menu variant.
type Menu struct {
	Title               string
	TitleDisabledSuffix string
	Description         string
	DescriptionMeta     string
	EnabledColor        int
	DisabledColor       int
	Options             []*Option
	UseInline           bool
	ShowID              bool
	AutoEnable          bool
	Enabled             bool

	MessageID string
	ChannelID string
	GuildID   string

	Hooks Hooks
}

// NewMenu creates a menu with the default suffix and colors.
func NewMenu(title string) *Menu {
	return &Menu{
		Title:               title,
		TitleDisabledSuffix: DefaultTitleDisabledSuffix,
		EnabledColor:        DefaultEnabledColor,
		DisabledColor:       DefaultDisabledColor,
	}
}

// ID returns the menu identifier: the ID of the message it lives in.
func (m *Menu) ID() string {
	return m.MessageID
}

// AddOption parses the emoji input and appends a new option. Duplicate
// emoji keys are rejected.
func (m *Menu) AddOption(emojiInput, value string) error {
	emoji, err := ParseEmoji(emojiInput)
	if err != nil {
		return err
	}
	return m.AddParsedOption(emoji, value)
}

// AddParsedOption appends an option for an already-parsed emoji.
func (m *Menu) AddParsedOption(emoji Emoji, value string) error {
	if m.Option(emoji.Key()) != nil {
		return fmt.Errorf("%w: %s", ErrDuplicateOption, emoji.Key())
	}
	m.Options = append(m.Options, &Option{Emoji: emoji, Value: value})
	return nil
}

// RemoveOption removes the option identified by the emoji input. It returns
// false when the emoji does not parse or no such option exists.
func (m *Menu) RemoveOption(emojiInput string) bool {
	emoji, err := ParseEmoji(emojiInput)
	if err != nil {
		return false
	}
	key := emoji.Key()
	for i, opt := range m.Options {
		if opt.Key() == key {
			m.Options = append(m.Options[:i], m.Options[i+1:]...)
			return true
		}
	}
	return false
}

// Option returns the option with the given key, or nil.
func (m *Menu) Option(key string) *Option {
	for _, opt := range m.Options {
		if opt.Key() == key {
			return opt
		}
	}
	return nil
}

// OptionByEmoji resolves a gateway emoji to the matching option, or nil.
func (m *Menu) OptionByEmoji(e discordgo.Emoji) *Option {
	return m.Option(EmojiFromComponent(e).Key())
}

// CurrentColor returns the embed color for the current enabled state.
func (m *Menu) CurrentColor() int {
	if hook := m.Hooks.Color; hook != nil {
		return hook(m)
	}
	if m.Enabled {
		return m.EnabledColor
	}
	return m.DisabledColor
}

// BuildEmbed renders the menu into an embed using the rendering hooks.
func (m *Menu) BuildEmbed() *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       m.generateTitle(),
		Description: m.generateDescription(),
		Color:       m.CurrentColor(),
	}

	for _, opt := range m.Options {
		name, value := m.generateOptionField(opt)
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   name,
			Value:  value,
			Inline: m.UseInline,
		})
	}

	if m.ShowID {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: m.generateFooterText()}
	}

	return embed
}

func (m *Menu) generateTitle() string {
	if hook := m.Hooks.Title; hook != nil {
		return hook(m)
	}
	if !m.Enabled && m.TitleDisabledSuffix != "" {
		return fmt.Sprintf("%s (%s)", m.Title, m.TitleDisabledSuffix)
	}
	return m.Title
}

func (m *Menu) generateDescription() string {
	if hook := m.Hooks.Description; hook != nil {
		return hook(m)
	}
	description := m.Description
	if m.DescriptionMeta != "" {
		description += "\n" + m.DescriptionMeta
	}
	return description
}

func (m *Menu) generateOptionField(opt *Option) (string, string) {
	if hook := m.Hooks.OptionField; hook != nil {
		return hook(m, opt)
	}
	return zeroWidthSpace, opt.FieldValue()
}

func (m *Menu) generateFooterText() string {
	if hook := m.Hooks.FooterText; hook != nil {
		return hook(m)
	}
	return fmt.Sprintf("Menu ID: %s", m.MessageID)
}
