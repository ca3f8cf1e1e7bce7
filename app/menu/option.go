package menu

import "fmt"

// Option is a single selectable entry in a menu: an emoji paired with a
// value, plus a running count of how often it has been picked.
type Option struct {
	Emoji         Emoji
	Value         string
	Description   string
	ReactionCount int
}

// Key returns the option identifier, derived from its emoji.
func (o *Option) Key() string {
	return o.Emoji.Key()
}

// Label returns the human-readable text used for button and select labels.
func (o *Option) Label() string {
	if o.Value != "" {
		return o.Value
	}
	return o.Description
}

// FieldValue renders the option for an embed field.
func (o *Option) FieldValue() string {
	return fmt.Sprintf("%s **—** %s", o.Emoji.MessageFormat(), o.Label())
}

// ToDict returns the persisted v2 form of the option.
func (o *Option) ToDict() map[string]any {
	return map[string]any{
		"emoji":          o.Emoji.ToDict(),
		"value":          o.Value,
		"description":    o.Description,
		"reaction_count": o.ReactionCount,
	}
}

// optionFromDict loads an option from its persisted form. The payload lives
// under "value"; older dumps that only carried "description" still load.
func optionFromDict(data map[string]any) (*Option, error) {
	rawEmoji, ok := data["emoji"]
	if !ok {
		return nil, fmt.Errorf("option dict is missing an emoji")
	}

	var emoji Emoji
	var err error
	switch v := rawEmoji.(type) {
	case map[string]any:
		emoji, err = emojiFromDict(v)
	case string:
		emoji, err = ParseEmoji(v)
	default:
		err = fmt.Errorf("unsupported emoji form %T", rawEmoji)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load option emoji: %w", err)
	}

	value := dictString(data, "value")
	description := dictString(data, "description")
	if value == "" {
		value = description
	}

	return &Option{
		Emoji:         emoji,
		Value:         value,
		Description:   description,
		ReactionCount: dictInt(data, "reaction_count"),
	}, nil
}
