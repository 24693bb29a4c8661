package conversations

import (
	"context"

	"github.com/agentia/vendormail/pkg/pagination"
)

// System defines the public contract for conversation memory operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Turn], error)

	// Append records a turn at the end of a thread.
	Append(ctx context.Context, threadID, role, content string) (*Turn, error)

	// Recent returns up to limit turns for a thread, newest first.
	Recent(ctx context.Context, threadID string, limit int) ([]Turn, error)
}
