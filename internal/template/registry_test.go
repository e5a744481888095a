package template

import (
	"strings"
	"testing"

	"github.com/skycopilot/backend/internal/model"
)

func TestNewRegistryCoversAllIntents(t *testing.T) {
	registry, err := NewRegistry()
	if err != nil {
		t.Fatalf("registry init failed: %v", err)
	}
	for _, intent := range model.Intents {
		tmpl := registry.Resolve("NO_SUCH_FLIGHT", intent)
		if tmpl.System == "" || tmpl.User == "" {
			t.Fatalf("empty template for intent %s", intent)
		}
	}
}

// 조각이 등록되지 않은 항공편도 intent 기본 템플릿으로 항상 해석된다.
func TestResolveWildcardFallback(t *testing.T) {
	registry, _ := NewRegistry()

	base := registry.Resolve("NO_SUCH_FLIGHT", model.IntentEmergency)
	if strings.Contains(base.System, "Flight-Specific Context") {
		t.Fatalf("unknown flight must not get a flight fragment")
	}
	if !strings.Contains(base.System, "{{flight_id}}") {
		t.Fatalf("base template missing flight_id slot")
	}
}

func TestResolveMergesFlightFragment(t *testing.T) {
	registry, _ := NewRegistry()

	tmpl := registry.Resolve("KAL801", model.IntentEmergency)
	if !strings.Contains(tmpl.System, "## Flight-Specific Context:") {
		t.Fatalf("expected merged fragment section")
	}
	if !strings.Contains(tmpl.System, "glide slope failure") {
		t.Fatalf("expected KAL801 context in template")
	}

	// 조각은 일부 intent에만 있을 수 있다. 없는 intent는 기본 템플릿이다.
	partial := registry.Resolve("CRASH_AF447", model.IntentDivertAirport)
	if strings.Contains(partial.System, "## Flight-Specific Context:") {
		t.Fatalf("CRASH_AF447 has no divert fragment, expected base template")
	}
}

func TestFillSubstitutesSlots(t *testing.T) {
	tmpl := Template{
		System: "copilot for {{flight_id}}",
		User:   "Flight ID: {{flight_id}}\nPilot Message: {{message}}",
	}

	system, user := Fill(tmpl, "KAL801", "terrain warning")
	if system != "copilot for KAL801" {
		t.Fatalf("unexpected system prompt: %q", system)
	}
	if user != "Flight ID: KAL801\nPilot Message: terrain warning" {
		t.Fatalf("unexpected user prompt: %q", user)
	}
	if strings.Contains(system+user, "{{") {
		t.Fatalf("unreplaced slots remain")
	}
}
