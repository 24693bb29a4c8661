package completion

import (
	"strings"
	"testing"
)

func TestComposePrompt(t *testing.T) {
	t.Run("no history returns the system prompt alone", func(t *testing.T) {
		got := composePrompt("You are a classifier.", nil)
		if got != "You are a classifier." {
			t.Errorf("composePrompt = %q", got)
		}
	})

	t.Run("history folds in oldest first", func(t *testing.T) {
		got := composePrompt("Instructions.", []Message{
			{Role: RoleUser, Content: "first"},
			{Role: RoleAssistant, Content: "second"},
		})

		if !strings.HasPrefix(got, "Instructions.") {
			t.Errorf("system prompt must lead, got %q", got)
		}
		first := strings.Index(got, "[user]: first")
		second := strings.Index(got, "[assistant]: second")
		if first < 0 || second < 0 || first > second {
			t.Errorf("turns out of order in %q", got)
		}
	})
}
