package conversations

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/agentia/vendormail/pkg/pagination"
	"github.com/agentia/vendormail/pkg/query"
	"github.com/agentia/vendormail/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a conversation repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "conversations"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Turn], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Content")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count conversation turns: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanTurn)
	if err != nil {
		return nil, fmt.Errorf("query conversation turns: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Append(ctx context.Context, threadID, role, content string) (*Turn, error) {
	if role != RoleVendor && role != RoleAssistant {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRole, role)
	}

	q := `
		INSERT INTO conversation_turns(id, thread_id, role, content)
		VALUES ($1, $2, $3, $4)
		RETURNING id, thread_id, seq, role, content, created_at`

	args := []any{
		uuid.New(),
		strings.ToLower(strings.TrimSpace(threadID)),
		role,
		content,
	}

	t, err := repository.QueryOne(ctx, r.db, q, args, scanTurn)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	return &t, nil
}

// recentQuery selects the newest turns for a thread. Ordering is by the
// database-assigned seq so that turns written within the same timestamp
// resolution still come back in insertion order.
func recentQuery(limit int) string {
	return fmt.Sprintf(
		"SELECT %s FROM %s WHERE c.thread_id = $1 ORDER BY c.seq DESC LIMIT %d",
		projection.Columns(),
		projection.From(),
		limit,
	)
}

func (r *repo) Recent(ctx context.Context, threadID string, limit int) ([]Turn, error) {
	q := recentQuery(limit)

	items, err := repository.QueryMany(
		ctx,
		r.db,
		q,
		[]any{strings.ToLower(strings.TrimSpace(threadID))},
		scanTurn,
	)
	if err != nil {
		return nil, fmt.Errorf("query recent turns: %w", err)
	}
	return items, nil
}
