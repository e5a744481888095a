package model

import "testing"

func TestIntentsCoverAllCategories(t *testing.T) {
	if len(Intents) != 5 {
		t.Fatalf("expected 5 intent categories, got %d", len(Intents))
	}

	seen := map[Intent]bool{}
	for _, intent := range Intents {
		if intent.String() == "" {
			t.Fatalf("intent with empty name")
		}
		if seen[intent] {
			t.Fatalf("duplicate intent %s", intent)
		}
		seen[intent] = true
	}

	if !seen[IntentSimilarCrash] || IntentSimilarCrash.String() != "similar_crashes" {
		t.Fatalf("unexpected similar crash intent name")
	}
}
