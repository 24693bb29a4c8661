package invoices

import (
	"context"

	"github.com/google/uuid"

	"github.com/agentia/vendormail/pkg/pagination"
)

// System defines the public contract for invoice domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Invoice], error)

	// FindByNumber looks up a single invoice scoped to a vendor.
	// Returns ErrNotFound when no matching row exists.
	FindByNumber(ctx context.Context, number string, vendorID uuid.UUID) (*Invoice, error)

	// Pending returns all pending invoices for a vendor, due date ascending.
	Pending(ctx context.Context, vendorID uuid.UUID) ([]Invoice, error)

	// Upsert registers an invoice by number and vendor, ignoring existing rows.
	Upsert(ctx context.Context, cmd CreateCommand) (*Invoice, error)
}
