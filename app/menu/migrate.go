package menu

// ConvertV1ToV2 converts a version 1 menu dictionary to the version 2 shape.
// The only structural change is the options field: v1 stored a map keyed by
// option ID with the payload under "descriptor", v2 stores a list with the
// payload under "value". Every other field copies through untouched.
func ConvertV1ToV2(v1 map[string]any) map[string]any {
	v2 := make(map[string]any, len(v1)+1)
	for key, value := range v1 {
		v2[key] = value
	}
	v2["version"] = DictVersion

	rawOptions, ok := v1["options"].(map[string]any)
	if !ok {
		v2["options"] = []any{}
		return v2
	}

	options := make([]any, 0, len(rawOptions))
	for key, rawOption := range rawOptions {
		option, ok := rawOption.(map[string]any)
		if !ok {
			continue
		}
		emoji := option["emoji"]
		if emoji == nil {
			// v1 keyed the map by the option's emoji.
			emoji = key
		}
		options = append(options, map[string]any{
			"emoji":          emoji,
			"value":          dictString(option, "descriptor"),
			"description":    dictString(option, "description"),
			"reaction_count": dictInt(option, "reaction_count"),
		})
	}
	v2["options"] = options

	return v2
}
