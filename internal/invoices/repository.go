package invoices

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

// New creates an invoice repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "invoices"),
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
) (*pagination.PageResult[Invoice], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "InvoiceNumber", "Status")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count invoices: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanInvoice)
	if err != nil {
		return nil, fmt.Errorf("query invoices: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) FindByNumber(ctx context.Context, number string, vendorID uuid.UUID) (*Invoice, error) {
	q, args := query.
		NewBuilder(projection).
		WhereEquals("InvoiceNumber", strings.ToUpper(strings.TrimSpace(number))).
		WhereEquals("VendorID", vendorID).
		BuildSingleOrNull()

	i, err := repository.QueryOne(ctx, r.db, q, args, scanInvoice)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &i, nil
}

func (r *repo) Pending(ctx context.Context, vendorID uuid.UUID) ([]Invoice, error) {
	q, args := query.
		NewBuilder(projection, defaultSort).
		WhereEquals("VendorID", vendorID).
		WhereEquals("Status", StatusPending).
		Build()

	items, err := repository.QueryMany(ctx, r.db, q, args, scanInvoice)
	if err != nil {
		return nil, fmt.Errorf("query pending invoices: %w", err)
	}
	return items, nil
}

func (r *repo) Upsert(ctx context.Context, cmd CreateCommand) (*Invoice, error) {
	q := `
		INSERT INTO invoices(id, vendor_id, invoice_number, amount, currency, status, issue_date, due_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (vendor_id, invoice_number) DO UPDATE SET
			amount = EXCLUDED.amount,
			currency = EXCLUDED.currency,
			status = EXCLUDED.status,
			issue_date = EXCLUDED.issue_date,
			due_date = EXCLUDED.due_date
		RETURNING id, vendor_id, invoice_number, amount, currency, status, issue_date, due_date, created_at`

	args := []any{
		uuid.New(),
		cmd.VendorID,
		strings.ToUpper(strings.TrimSpace(cmd.InvoiceNumber)),
		cmd.Amount,
		cmd.Currency,
		cmd.Status,
		cmd.IssueDate,
		cmd.DueDate,
	}

	i, err := repository.QueryOne(ctx, r.db, q, args, scanInvoice)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	return &i, nil
}
