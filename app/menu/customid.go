package menu

import "strings"

// Custom ID prefixes for the control components every interaction menu
// carries. Option buttons use "<optionKey>_<messageID>" instead.
const (
	enablePrefix  = "enable_"
	disablePrefix = "disable_"
	selectPrefix  = "selectmenu_"
)

// CustomIDKind classifies a parsed component custom ID.
type CustomIDKind int

const (
	CustomIDOption CustomIDKind = iota
	CustomIDEnable
	CustomIDDisable
	CustomIDSelect
)

// CustomID is the decoded form of a component custom ID.
type CustomID struct {
	Kind      CustomIDKind
	OptionKey string
	MessageID string
}

// EnableCustomID builds the custom ID of the enable control.
func EnableCustomID(messageID string) string {
	return enablePrefix + messageID
}

// DisableCustomID builds the custom ID of the disable control.
func DisableCustomID(messageID string) string {
	return disablePrefix + messageID
}

// SelectCustomID builds the custom ID of the select component.
func SelectCustomID(messageID string) string {
	return selectPrefix + messageID
}

// OptionCustomID builds the custom ID of an option button or select value.
func OptionCustomID(optionKey, messageID string) string {
	return optionKey + "_" + messageID
}

// ParseCustomID decodes a component custom ID. The message ID is always the
// segment after the last underscore; option keys never contain one because
// custom emojis key on their numeric ID and unicode emojis on the emoji
// itself.
func ParseCustomID(customID string) (CustomID, bool) {
	idx := strings.LastIndexByte(customID, '_')
	if idx <= 0 || idx == len(customID)-1 {
		return CustomID{}, false
	}

	messageID := customID[idx+1:]
	switch {
	case strings.HasPrefix(customID, enablePrefix):
		return CustomID{Kind: CustomIDEnable, MessageID: messageID}, true
	case strings.HasPrefix(customID, disablePrefix):
		return CustomID{Kind: CustomIDDisable, MessageID: messageID}, true
	case strings.HasPrefix(customID, selectPrefix):
		return CustomID{Kind: CustomIDSelect, MessageID: messageID}, true
	default:
		return CustomID{Kind: CustomIDOption, OptionKey: customID[:idx], MessageID: messageID}, true
	}
}
