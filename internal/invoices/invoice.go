// Package invoices implements the invoice ledger domain: point lookups by
// invoice number and vendor, pending balance queries, and ingestion upserts.
package invoices

import (
	"time"

	"github.com/google/uuid"
)

// Invoice represents a row in the invoices table.
type Invoice struct {
	ID            uuid.UUID  `json:"id"`
	VendorID      uuid.UUID  `json:"vendor_id"`
	InvoiceNumber string     `json:"invoice_number"`
	Amount        float64    `json:"amount"`
	Currency      string     `json:"currency"`
	Status        string     `json:"status"`
	IssueDate     *time.Time `json:"issue_date"`
	DueDate       *time.Time `json:"due_date"`
	CreatedAt     time.Time  `json:"created_at"`
}

// CreateCommand carries the data needed to register an invoice during ledger ingestion.
type CreateCommand struct {
	VendorID      uuid.UUID
	InvoiceNumber string
	Amount        float64
	Currency      string
	Status        string
	IssueDate     *time.Time
	DueDate       *time.Time
}

// StatusPending marks invoices awaiting payment.
const StatusPending = "Pending"
