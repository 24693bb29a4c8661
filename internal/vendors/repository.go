package vendors

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

// New creates a vendor repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "vendors"),
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
) (*pagination.PageResult[Vendor], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Name", "ContactName", "Email")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count vendors: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanVendor)
	if err != nil {
		return nil, fmt.Errorf("query vendors: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Vendor, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	v, err := repository.QueryOne(ctx, r.db, q, args, scanVendor)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &v, nil
}

func (r *repo) FindByEmail(ctx context.Context, email string) (*Vendor, error) {
	q, args := query.
		NewBuilder(projection).
		WhereEquals("Email", strings.ToLower(strings.TrimSpace(email))).
		BuildSingleOrNull()

	v, err := repository.QueryOne(ctx, r.db, q, args, scanVendor)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &v, nil
}

func (r *repo) Upsert(ctx context.Context, cmd CreateCommand) (*Vendor, error) {
	q := `
		INSERT INTO vendors(id, vendor_ref, name, contact_name, email, phone, address, category)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (vendor_ref) DO UPDATE SET vendor_ref = EXCLUDED.vendor_ref
		RETURNING id, vendor_ref, name, contact_name, email, phone, address, category, status, created_at, updated_at`

	args := []any{
		uuid.New(),
		cmd.VendorRef,
		cmd.Name,
		cmd.ContactName,
		strings.ToLower(cmd.Email),
		cmd.Phone,
		cmd.Address,
		cmd.Category,
	}

	v, err := repository.QueryOne(ctx, r.db, q, args, scanVendor)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	return &v, nil
}

func (r *repo) UpdateContact(ctx context.Context, id uuid.UUID, field, value string) error {
	// The column name is interpolated, so membership in the closed set is
	// enforced here even though callers validate earlier.
	if !UpdatableFields[field] {
		return fmt.Errorf("%w: %s", ErrFieldNotAllowed, field)
	}

	q := fmt.Sprintf("UPDATE vendors SET %s = $1, updated_at = NOW() WHERE id = $2", field)

	if err := repository.ExecExpectOne(ctx, r.db, q, value, id); err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("vendor contact updated", "vendor_id", id, "field", field)
	return nil
}
