package vendors

import (
	"context"

	"github.com/google/uuid"

	"github.com/agentia/vendormail/pkg/pagination"
)

// System defines the public contract for vendor domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Vendor], error)

	Find(ctx context.Context, id uuid.UUID) (*Vendor, error)

	// FindByEmail resolves a sender address to a vendor record.
	// Returns ErrNotFound when no vendor carries the address.
	FindByEmail(ctx context.Context, email string) (*Vendor, error)

	// Upsert registers a vendor by VendorRef, ignoring rows that already exist.
	Upsert(ctx context.Context, cmd CreateCommand) (*Vendor, error)

	// UpdateContact sets a single contact field. The field must be a member
	// of UpdatableFields; anything else returns ErrFieldNotAllowed.
	UpdateContact(ctx context.Context, id uuid.UUID, field, value string) error
}
