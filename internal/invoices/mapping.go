package invoices

import (
	"net/url"

	"github.com/agentia/vendormail/pkg/query"
	"github.com/agentia/vendormail/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "invoices", "i").
	Project("id", "ID").
	Project("vendor_id", "VendorID").
	Project("invoice_number", "InvoiceNumber").
	Project("amount", "Amount").
	Project("currency", "Currency").
	Project("status", "Status").
	Project("issue_date", "IssueDate").
	Project("due_date", "DueDate").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field:      "DueDate",
	Descending: false,
}

// Filters contains optional filtering criteria for invoice queries.
// Nil fields are ignored; all use exact matching.
type Filters struct {
	VendorID      *string `json:"vendor_id,omitempty"`
	InvoiceNumber *string `json:"invoice_number,omitempty"`
	Status        *string `json:"status,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("VendorID", f.VendorID).
		WhereEquals("InvoiceNumber", f.InvoiceNumber).
		WhereEquals("Status", f.Status)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if v := values.Get("vendor_id"); v != "" {
		f.VendorID = &v
	}
	if v := values.Get("invoice_number"); v != "" {
		f.InvoiceNumber = &v
	}
	if v := values.Get("status"); v != "" {
		f.Status = &v
	}

	return f
}

func scanInvoice(s repository.Scanner) (Invoice, error) {
	var i Invoice
	err := s.Scan(
		&i.ID,
		&i.VendorID,
		&i.InvoiceNumber,
		&i.Amount,
		&i.Currency,
		&i.Status,
		&i.IssueDate,
		&i.DueDate,
		&i.CreatedAt,
	)
	return i, err
}
