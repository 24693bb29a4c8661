package conversations

import (
	"strings"
	"testing"

	"github.com/agentia/vendormail/pkg/query"
)

func TestRecentQueryOrdersBySeq(t *testing.T) {
	got := recentQuery(5)

	want := "SELECT c.id, c.thread_id, c.seq, c.role, c.content, c.created_at " +
		"FROM public.conversation_turns c WHERE c.thread_id = $1 ORDER BY c.seq DESC LIMIT 5"
	if got != want {
		t.Errorf("recentQuery(5) = %q, want %q", got, want)
	}
}

func TestDefaultSortBreaksTimestampTies(t *testing.T) {
	sql, _ := query.NewBuilder(projection, defaultSort).Build()

	if !strings.Contains(sql, "ORDER BY c.seq DESC") {
		t.Errorf("default listing must order by the insertion sequence, got %q", sql)
	}
}
