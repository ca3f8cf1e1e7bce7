package menu

import "testing"

func TestConvertV1ToV2(t *testing.T) {
	v1 := map[string]any{
		"title":       "Old Poll",
		"description": "From the before times",
		"options": map[string]any{
			"👍": map[string]any{
				"emoji":          map[string]any{"name": "👍"},
				"descriptor":     "yes",
				"reaction_count": 3,
			},
		},
	}

	v2 := ConvertV1ToV2(v1)

	if v2["title"] != "Old Poll" {
		t.Errorf("title = %v, want copied through", v2["title"])
	}
	if v2["description"] != "From the before times" {
		t.Errorf("description = %v, want copied through", v2["description"])
	}
	if v2["version"] != DictVersion {
		t.Errorf("version = %v, want %d", v2["version"], DictVersion)
	}

	options, ok := v2["options"].([]any)
	if !ok {
		t.Fatalf("options = %T, want a list", v2["options"])
	}
	if len(options) != 1 {
		t.Fatalf("options length = %d, want 1", len(options))
	}

	opt := options[0].(map[string]any)
	if opt["value"] != "yes" {
		t.Errorf("value = %v, want the v1 descriptor", opt["value"])
	}
	if opt["reaction_count"] != 3 {
		t.Errorf("reaction_count = %v, want 3", opt["reaction_count"])
	}
}

func TestConvertV1ToV2_Defaults(t *testing.T) {
	v2 := ConvertV1ToV2(map[string]any{
		"title": "Bare",
		"options": map[string]any{
			"x": map[string]any{"emoji": "👍", "descriptor": "something"},
		},
	})

	opt := v2["options"].([]any)[0].(map[string]any)
	if opt["reaction_count"] != 0 {
		t.Errorf("reaction_count default = %v, want 0", opt["reaction_count"])
	}
	if opt["description"] != "" {
		t.Errorf("description default = %v, want empty", opt["description"])
	}
}

// Early v1 dumps stored no emoji field inside the option payload; the map
// key carries it.
func TestConvertV1ToV2_EmojiFromKey(t *testing.T) {
	v2 := ConvertV1ToV2(map[string]any{
		"title": "Keyed",
		"options": map[string]any{
			"👍": map[string]any{"descriptor": "yes"},
		},
	})

	opt := v2["options"].([]any)[0].(map[string]any)
	if opt["emoji"] != "👍" {
		t.Errorf("emoji = %v, want the map key", opt["emoji"])
	}
}

func TestConvertV1ToV2_NoOptions(t *testing.T) {
	v2 := ConvertV1ToV2(map[string]any{"title": "Empty"})
	options, ok := v2["options"].([]any)
	if !ok || len(options) != 0 {
		t.Errorf("options = %v, want empty list", v2["options"])
	}
}

// A converted v1 dump must load through the v2 loader.
func TestConvertV1ToV2_LoadsAsV2(t *testing.T) {
	v1 := map[string]any{
		"kind":       string(KindReaction),
		"title":      "Legacy",
		"message_id": 555,
		"options": map[string]any{
			"👍": map[string]any{"emoji": map[string]any{"name": "👍"}, "descriptor": "yes", "reaction_count": "2"},
		},
	}

	loaded, err := FromDict(ConvertV1ToV2(v1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	opt := loaded.Base().Option("👍")
	if opt == nil {
		t.Fatal("expected the converted option to load")
	}
	if opt.Value != "yes" {
		t.Errorf("value = %q, want %q", opt.Value, "yes")
	}
	if opt.ReactionCount != 2 {
		t.Errorf("reaction count = %d, want coerced 2", opt.ReactionCount)
	}
	if loaded.Base().MessageID != "555" {
		t.Errorf("message id = %q, want stringified", loaded.Base().MessageID)
	}
}
