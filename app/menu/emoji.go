package menu

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/forPelevin/gomoji"
)

// customEmojiPattern matches custom Discord emojis in <a:name:id> form.
var customEmojiPattern = regexp.MustCompile(`^<(a?):([A-Za-z0-9_~]+):([0-9]+)>$`)

// Emoji is a universal emoji handle. Unicode emojis carry only a Name;
// custom Discord emojis carry a snowflake ID and an animated flag.
type Emoji struct {
	Name     string `json:"name"`
	ID       string `json:"id,omitempty"`
	Animated bool   `json:"animated,omitempty"`
}

// ParseEmoji converts user input into an Emoji. It accepts a unicode emoji
// literal or a custom emoji in <a:name:id> form.
func ParseEmoji(input string) (Emoji, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return Emoji{}, fmt.Errorf("empty emoji input")
	}

	if m := customEmojiPattern.FindStringSubmatch(input); m != nil {
		return Emoji{Name: m[2], ID: m[3], Animated: m[1] == "a"}, nil
	}

	if gomoji.ContainsEmoji(input) {
		return Emoji{Name: input}, nil
	}

	return Emoji{}, fmt.Errorf("%q is not a unicode emoji or a custom discord emoji", input)
}

// EmojiFromComponent converts a discordgo gateway emoji into an Emoji.
func EmojiFromComponent(e discordgo.Emoji) Emoji {
	return Emoji{Name: e.Name, ID: e.ID, Animated: e.Animated}
}

// Key returns the identifier used to key menu options: the snowflake ID for
// custom emojis, the literal emoji for unicode ones.
func (e Emoji) Key() string {
	if e.ID != "" {
		return e.ID
	}
	return e.Name
}

// IsCustom reports whether the emoji is a custom guild emoji.
func (e Emoji) IsCustom() bool {
	return e.ID != ""
}

// MessageFormat renders the emoji for message content and embed fields.
func (e Emoji) MessageFormat() string {
	if !e.IsCustom() {
		return e.Name
	}
	if e.Animated {
		return fmt.Sprintf("<a:%s:%s>", e.Name, e.ID)
	}
	return fmt.Sprintf("<:%s:%s>", e.Name, e.ID)
}

// APIName renders the emoji in the name:id form the reaction endpoints want.
func (e Emoji) APIName() string {
	if e.IsCustom() {
		return e.Name + ":" + e.ID
	}
	return e.Name
}

// Component converts the emoji for use in buttons and select options.
func (e Emoji) Component() *discordgo.ComponentEmoji {
	return &discordgo.ComponentEmoji{Name: e.Name, ID: e.ID, Animated: e.Animated}
}

// ToDict returns the persisted form of the emoji.
func (e Emoji) ToDict() map[string]any {
	return map[string]any{
		"name":     e.Name,
		"id":       e.ID,
		"animated": e.Animated,
	}
}

func emojiFromDict(data map[string]any) (Emoji, error) {
	name := dictString(data, "name")
	if name == "" {
		return Emoji{}, fmt.Errorf("emoji dict is missing a name")
	}
	return Emoji{
		Name:     name,
		ID:       dictString(data, "id"),
		Animated: dictBool(data, "animated"),
	}, nil
}
