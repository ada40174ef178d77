package events

import (
	"testing"
	"time"

	"apidir/internal/domain"
)

func TestFormatTimestampUsesUTC(t *testing.T) {
	loc := time.FixedZone("offset", -7*60*60)
	input := time.Date(2024, time.March, 10, 15, 4, 5, 123456789, loc)

	formatted := formatTimestamp(input)
	expected := input.UTC().Format(time.RFC3339Nano)
	if formatted != expected {
		t.Fatalf("expected %s, got %s", expected, formatted)
	}
}

func TestEmitHelpersIgnoreNilSink(t *testing.T) {
	EmitDrawerChanged(nil, DrawerChangedEvent{})
	EmitProvidersUpdated(nil, nil, false)
	EmitSummaryUpdated(nil, "a", domain.ProviderSummary{})
	EmitRouteChanged(nil, RouteChangedEvent{}, time.Now())
	EmitDetailState(nil, DetailStateEvent{})
	EmitError(nil, "", "", "")
}

func TestRecorderKeepsOrder(t *testing.T) {
	rec := NewRecorder()

	EmitProvidersUpdated(rec, []domain.ProviderID{"a", "b"}, false)
	EmitError(rec, "NETWORK_ERROR", "Network error", "boom")
	EmitProvidersUpdated(rec, nil, true)

	all := rec.Events()
	if len(all) != 3 {
		t.Fatalf("expected 3 events, got %d", len(all))
	}
	first, ok := all[0].Payload.(ProvidersUpdatedEvent)
	if !ok {
		t.Fatalf("unexpected payload %T", all[0].Payload)
	}
	if len(first.Providers) != 2 || first.Providers[0] != "a" || first.Providers[1] != "b" {
		t.Fatalf("unexpected providers %v", first.Providers)
	}
	if got := rec.Named(EventProvidersUpdated); len(got) != 2 {
		t.Fatalf("expected 2 provider events, got %d", len(got))
	}
}
