package summary_test

import (
	"strings"
	"testing"

	"feedloom/internal/summary"
)

func TestMessagesShape(t *testing.T) {
	msgs := summary.Messages("article text", summary.Options{KeywordCount: 5, SummaryLength: 200, Language: "en"})
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].Role != "user" || msgs[0].Content != "article text" {
		t.Fatalf("unexpected first message: %+v", msgs[0])
	}
	if msgs[1].Role != "assistant" {
		t.Fatalf("unexpected instruction role: %q", msgs[1].Role)
	}
}

func TestInstructionCarriesSummaryMarker(t *testing.T) {
	tests := []struct {
		name   string
		lang   string
		marker string
	}{
		{"english", "en", "<br><br>Summary:"},
		{"chinese", "zh", "<br><br>总结:"},
		{"french", "fr", "<br><br>Summary:"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			msgs := summary.Messages("x", summary.Options{KeywordCount: 3, SummaryLength: 100, Language: tc.lang})
			if !strings.Contains(msgs[1].Content, tc.marker) {
				t.Fatalf("instruction missing %q: %q", tc.marker, msgs[1].Content)
			}
		})
	}
}

func TestInstructionUsesDisplayLanguageName(t *testing.T) {
	msgs := summary.Messages("x", summary.Options{KeywordCount: 3, SummaryLength: 100, Language: "fr"})
	if !strings.Contains(msgs[1].Content, "French") {
		t.Fatalf("expected display name French in instruction: %q", msgs[1].Content)
	}
	if strings.Contains(msgs[1].Content, "in fr ") {
		t.Fatalf("raw language tag leaked into instruction: %q", msgs[1].Content)
	}
}

func TestInstructionIncludesCounts(t *testing.T) {
	msgs := summary.Messages("x", summary.Options{KeywordCount: 7, SummaryLength: 150, Language: "en"})
	if !strings.Contains(msgs[1].Content, "7 keywords") {
		t.Fatalf("keyword count missing: %q", msgs[1].Content)
	}
	if !strings.Contains(msgs[1].Content, "150 words") {
		t.Fatalf("summary length missing: %q", msgs[1].Content)
	}
}
