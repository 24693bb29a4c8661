package conversations

import (
	"net/url"

	"github.com/agentia/vendormail/pkg/query"
	"github.com/agentia/vendormail/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "conversation_turns", "c").
	Project("id", "ID").
	Project("thread_id", "ThreadID").
	Project("seq", "Seq").
	Project("role", "Role").
	Project("content", "Content").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field:      "Seq",
	Descending: true,
}

// Filters contains optional filtering criteria for conversation queries.
type Filters struct {
	ThreadID *string `json:"thread_id,omitempty"`
	Role     *string `json:"role,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("ThreadID", f.ThreadID).
		WhereEquals("Role", f.Role)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if v := values.Get("thread_id"); v != "" {
		f.ThreadID = &v
	}
	if v := values.Get("role"); v != "" {
		f.Role = &v
	}

	return f
}

func scanTurn(s repository.Scanner) (Turn, error) {
	var t Turn
	err := s.Scan(
		&t.ID,
		&t.ThreadID,
		&t.Seq,
		&t.Role,
		&t.Content,
		&t.CreatedAt,
	)
	return t, err
}
