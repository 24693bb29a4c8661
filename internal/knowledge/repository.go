package knowledge

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/agentia/vendormail/pkg/repository"
)

type repo struct {
	db     *sql.DB
	logger *slog.Logger
}

// New creates a knowledge repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger) System {
	return &repo{
		db:     db,
		logger: logger.With("system", "knowledge"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

// Search uses websearch_to_tsquery so vendor-phrased questions work without
// tsquery operator syntax.
func (r *repo) Search(ctx context.Context, query string, k int) ([]Excerpt, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if k < 1 {
		k = 1
	}

	q := fmt.Sprintf(`
		SELECT k.content, k.source_label, k.page_number,
		       ts_rank(k.tsv, websearch_to_tsquery('english', $1)) AS rank
		FROM public.knowledge_chunks k
		WHERE k.tsv @@ websearch_to_tsquery('english', $1)
		ORDER BY rank DESC
		LIMIT %d`, k)

	items, err := repository.QueryMany(ctx, r.db, q, []any{query}, scanExcerpt)
	if err != nil {
		return nil, fmt.Errorf("search knowledge: %w", err)
	}

	return items, nil
}

func (r *repo) Count(ctx context.Context) (int, error) {
	var total int
	err := r.db.
		QueryRowContext(ctx, "SELECT COUNT(*) FROM public.knowledge_chunks").
		Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count knowledge chunks: %w", err)
	}
	return total, nil
}

func (r *repo) AddBatch(ctx context.Context, cmds []AddCommand) (int, error) {
	q := `
		INSERT INTO knowledge_chunks(id, source_label, page_number, content)
		VALUES ($1, $2, $3, $4)`

	stored, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (int, error) {
		count := 0
		for _, cmd := range cmds {
			if strings.TrimSpace(cmd.Content) == "" {
				continue
			}

			args := []any{uuid.New(), cmd.SourceLabel, cmd.PageNumber, cmd.Content}
			if _, err := tx.ExecContext(ctx, q, args...); err != nil {
				return 0, err
			}
			count++
		}

		if count == 0 {
			return 0, ErrEmptyContent
		}
		return count, nil
	})
	if err != nil {
		if errors.Is(err, ErrEmptyContent) {
			return 0, ErrEmptyContent
		}
		return 0, fmt.Errorf("add knowledge chunks: %w", err)
	}

	return stored, nil
}

func scanExcerpt(s repository.Scanner) (Excerpt, error) {
	var e Excerpt
	err := s.Scan(
		&e.Content,
		&e.SourceLabel,
		&e.PageNumber,
		&e.Rank,
	)
	return e, err
}
