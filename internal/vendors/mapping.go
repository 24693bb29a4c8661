package vendors

import (
	"net/url"

	"github.com/agentia/vendormail/pkg/query"
	"github.com/agentia/vendormail/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "vendors", "v").
	Project("id", "ID").
	Project("vendor_ref", "VendorRef").
	Project("name", "Name").
	Project("contact_name", "ContactName").
	Project("email", "Email").
	Project("phone", "Phone").
	Project("address", "Address").
	Project("category", "Category").
	Project("status", "Status").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field: "Name",
}

// Filters contains optional filtering criteria for vendor queries.
// Nil fields are ignored. VendorRef, Category, and Status use exact matching;
// Name uses case-insensitive contains matching.
type Filters struct {
	VendorRef *string `json:"vendor_ref,omitempty"`
	Name      *string `json:"name,omitempty"`
	Category  *string `json:"category,omitempty"`
	Status    *string `json:"status,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("VendorRef", f.VendorRef).
		WhereContains("Name", f.Name).
		WhereEquals("Category", f.Category).
		WhereEquals("Status", f.Status)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if v := values.Get("vendor_ref"); v != "" {
		f.VendorRef = &v
	}
	if v := values.Get("name"); v != "" {
		f.Name = &v
	}
	if v := values.Get("category"); v != "" {
		f.Category = &v
	}
	if v := values.Get("status"); v != "" {
		f.Status = &v
	}

	return f
}

func scanVendor(s repository.Scanner) (Vendor, error) {
	var v Vendor
	err := s.Scan(
		&v.ID,
		&v.VendorRef,
		&v.Name,
		&v.ContactName,
		&v.Email,
		&v.Phone,
		&v.Address,
		&v.Category,
		&v.Status,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	return v, err
}
