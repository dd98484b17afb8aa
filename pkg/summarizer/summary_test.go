package summarizer

import (
	"testing"
	"time"
)

func TestNewSummary(t *testing.T) {
	before := time.Now()
	summary := NewSummary()
	after := time.Now()

	if summary.GeneratedAt.Before(before) || summary.GeneratedAt.After(after) {
		t.Errorf("GeneratedAt should be between %v and %v, got %v",
			before, after, summary.GeneratedAt)
	}
}

func TestBuilder(t *testing.T) {
	summary := NewBuilder().
		WithSettings(Settings{MaxLineCount: 20, MaxLength: 600, Font: "20px sans-serif"}).
		AddMessage(MessageInfo{ID: "a", Outcome: OutcomeImage}).
		AddMessage(MessageInfo{ID: "b", Outcome: OutcomeText}).
		AddMessage(MessageInfo{ID: "c", Outcome: OutcomeImage}).
		Build()

	if summary.Settings.MaxLength != 600 {
		t.Errorf("expected MaxLength 600, got %d", summary.Settings.MaxLength)
	}
	if len(summary.Messages) != 3 || summary.Messages[1].ID != "b" {
		t.Fatalf("messages should keep input order, got %+v", summary.Messages)
	}

	totals := summary.Totals()
	if totals[OutcomeImage] != 2 || totals[OutcomeText] != 1 || totals[OutcomeFallback] != 0 {
		t.Errorf("unexpected totals %v", totals)
	}
}
