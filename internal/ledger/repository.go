package ledger

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/agentia/vendormail/pkg/query"
	"github.com/agentia/vendormail/pkg/repository"
)

// The export projection joins each vendor with its invoices so the CSV can
// be rebuilt in the original column layout.
var exportProjection = query.
	NewProjectionMap("public", "vendors", "v").
	Project("vendor_ref", "VendorRef").
	Project("contact_name", "ContactName").
	Project("email", "Email").
	Project("phone", "Phone").
	Project("address", "Address").
	Project("name", "Company").
	Project("category", "Role").
	Join("public", "invoices", "i", "JOIN", "v.id = i.vendor_id").
	Project("invoice_number", "InvoiceNumber").
	Project("amount", "Amount").
	Project("status", "Status").
	Project("due_date", "DueDate").
	Project("issue_date", "InvoiceDate")

var exportSort = []query.SortField{
	{Field: "VendorRef"},
	{Field: "InvoiceNumber"},
}

func exportRows(ctx context.Context, db *sql.DB) ([]Row, error) {
	q, args := query.NewBuilder(exportProjection, exportSort...).Build()

	rows, err := repository.QueryMany(ctx, db, q, args, scanRow)
	if err != nil {
		return nil, fmt.Errorf("query ledger rows: %w", err)
	}
	return rows, nil
}

func scanRow(s repository.Scanner) (Row, error) {
	var (
		r       Row
		dueDate sql.NullTime
		invDate sql.NullTime
	)

	err := s.Scan(
		&r.VendorRef,
		&r.ContactName,
		&r.Email,
		&r.Phone,
		&r.Address,
		&r.Company,
		&r.Role,
		&r.InvoiceNumber,
		&r.Amount,
		&r.Status,
		&dueDate,
		&invDate,
	)
	if err != nil {
		return r, err
	}

	if dueDate.Valid {
		r.DueDate = dueDate.Time.Format("2006-01-02")
	}
	if invDate.Valid {
		r.InvoiceDate = invDate.Time.Format("2006-01-02")
	}

	return r, nil
}
