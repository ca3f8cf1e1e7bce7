package menu

import (
	"fmt"
	"strings"

	"github.com/google/shlex"
)

// DefinitionError reports menu definition text that could not be parsed.
type DefinitionError struct {
	Text   string
	Reason string
}

func (e *DefinitionError) Error() string {
	return fmt.Sprintf("%s -> %s", e.Text, e.Reason)
}

// Definition is the parsed form of a menu definition command.
type Definition struct {
	Title       string
	Description string
	Options     []DefinitionOption
}

// DefinitionOption pairs an emoji token with its value.
type DefinitionOption struct {
	Emoji string
	Value string
}

// ParseDefinition extracts a menu title, description, and emoji/value option
// pairs from the text of a definition command. Multi-word sections must be
// enclosed in double quotes. A trailing emoji with no value is dropped.
func ParseDefinition(commandName, content string) (Definition, error) {
	if idx := strings.Index(content, commandName); idx >= 0 {
		content = content[idx+len(commandName):]
	}
	content = strings.TrimSpace(content)

	if strings.Count(content, `"`)%2 != 0 {
		return Definition{}, &DefinitionError{
			Text:   content,
			Reason: "there was an incorrect number of double quotes given, check that all quotes are properly closed",
		}
	}

	sections, err := shlex.Split(content)
	if err != nil {
		return Definition{}, &DefinitionError{Text: content, Reason: err.Error()}
	}
	if len(sections) < 2 {
		return Definition{}, &DefinitionError{
			Text:   content,
			Reason: "there was either no title or no description given, separate each with a space and quote multi-word sections",
		}
	}

	title := strings.TrimSpace(sections[0])
	if strings.Contains(title, "<@&") || strings.Contains(title, "<#") || strings.Contains(title, "<:") {
		return Definition{}, &DefinitionError{
			Text:   title,
			Reason: "title cannot contain a channel mention, a role mention or a custom discord emoji",
		}
	}

	def := Definition{
		Title:       title,
		Description: strings.TrimSpace(sections[1]),
	}

	rest := sections[2:]
	for i := 0; i+1 < len(rest); i += 2 {
		def.Options = append(def.Options, DefinitionOption{Emoji: rest[i], Value: rest[i+1]})
	}

	return def, nil
}

// MenuSetting customizes a menu built from a definition before its options
// are added.
type MenuSetting func(*Menu)

// WithAutoEnable makes the menu enable itself as soon as it is sent.
func WithAutoEnable() MenuSetting {
	return func(m *Menu) { m.AutoEnable = true }
}

// WithShowID appends the message ID to the embed once the menu is sent.
func WithShowID() MenuSetting {
	return func(m *Menu) { m.ShowID = true }
}

// WithDescriptionMeta sets the extra description line shown under the
// definition's description.
func WithDescriptionMeta(meta string) MenuSetting {
	return func(m *Menu) { m.DescriptionMeta = meta }
}

// MenuFromDefinition builds a base menu from a parsed definition, applying
// any settings and adding each option in order.
func MenuFromDefinition(def Definition, opts ...MenuSetting) (*Menu, error) {
	m := NewMenu(def.Title)
	m.Description = def.Description
	for _, opt := range opts {
		opt(m)
	}
	for _, opt := range def.Options {
		if err := m.AddOption(opt.Emoji, opt.Value); err != nil {
			return nil, fmt.Errorf("failed to add option %q: %w", opt.Emoji, err)
		}
	}
	return m, nil
}
