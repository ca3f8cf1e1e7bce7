package menu

import (
	"fmt"
	"strconv"

	"github.com/bwmarrin/discordgo"
)

// DictVersion is the version stamped into serialized menus. Version 1 dumps
// are loaded through ConvertV1ToV2 first.
const DictVersion = 2

// Renderable is the common surface of every menu variant: the registry, the
// store, and the manager all work against it.
type Renderable interface {
	Base() *Menu
	Kind() Kind
	ToDict() map[string]any
	Components() []discordgo.MessageComponent
}

// baseToDict serializes the fields shared by every variant.
func (m *Menu) baseToDict(kind Kind) map[string]any {
	options := make([]any, 0, len(m.Options))
	for _, opt := range m.Options {
		options = append(options, opt.ToDict())
	}
	return map[string]any{
		"version":               DictVersion,
		"kind":                  string(kind),
		"title":                 m.Title,
		"title_disabled_suffix": m.TitleDisabledSuffix,
		"description":           m.Description,
		"description_meta":      m.DescriptionMeta,
		"enabled_color":         m.EnabledColor,
		"disabled_color":        m.DisabledColor,
		"use_inline":            m.UseInline,
		"show_id":               m.ShowID,
		"auto_enable":           m.AutoEnable,
		"enabled":               m.Enabled,
		"message_id":            m.MessageID,
		"channel_id":            m.ChannelID,
		"guild_id":              m.GuildID,
		"options":               options,
	}
}

// baseFromDict loads the shared menu fields from a v2 dictionary.
func baseFromDict(data map[string]any) (*Menu, error) {
	m := NewMenu(dictString(data, "title"))
	if v, ok := data["title_disabled_suffix"]; ok {
		m.TitleDisabledSuffix = fmt.Sprint(v)
	}
	m.Description = dictString(data, "description")
	m.DescriptionMeta = dictString(data, "description_meta")
	if _, ok := data["enabled_color"]; ok {
		m.EnabledColor = dictInt(data, "enabled_color")
	}
	if _, ok := data["disabled_color"]; ok {
		m.DisabledColor = dictInt(data, "disabled_color")
	}
	m.UseInline = dictBool(data, "use_inline")
	m.ShowID = dictBool(data, "show_id")
	m.AutoEnable = dictBool(data, "auto_enable")
	m.Enabled = dictBool(data, "enabled")
	m.MessageID = dictString(data, "message_id")
	m.ChannelID = dictString(data, "channel_id")
	m.GuildID = dictString(data, "guild_id")

	rawOptions, _ := data["options"].([]any)
	for _, raw := range rawOptions {
		optDict, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("option entry is %T, want a dict", raw)
		}
		opt, err := optionFromDict(optDict)
		if err != nil {
			return nil, err
		}
		if m.Option(opt.Key()) != nil {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateOption, opt.Key())
		}
		m.Options = append(m.Options, opt)
	}

	return m, nil
}

// FromDict reconstructs a menu variant from its persisted v2 dictionary,
// dispatching on the "kind" field. Handlers are not part of the persisted
// form; callers rebind them before registering the menu.
func FromDict(data map[string]any) (Renderable, error) {
	switch Kind(dictString(data, "kind")) {
	case KindButton:
		return ButtonMenuFromDict(data)
	case KindSelect:
		return SelectMenuFromDict(data)
	case KindReaction:
		return ReactionMenuFromDict(data)
	default:
		return nil, fmt.Errorf("unknown menu kind %q", dictString(data, "kind"))
	}
}

// dictString reads a string field, stringifying numeric IDs from older
// dumps that stored message IDs as integers.
func dictString(data map[string]any, key string) string {
	switch v := data[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatInt(int64(v), 10)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return fmt.Sprint(v)
	}
}

// dictInt reads an integer field. JSON round-trips numbers as float64 and
// older dumps stored colors as strings; both forms load.
func dictInt(data map[string]any, key string) int {
	switch v := data[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

func dictBool(data map[string]any, key string) bool {
	b, _ := data[key].(bool)
	return b
}
