// Package ledger implements data exchange with the finance ledger: CSV
// ingestion into the vendor and invoice tables, email archive and policy
// document indexing into the knowledge base, and CSV re-export with blob
// archival after contact updates.
package ledger

// Row is one line of the ledger CSV: a vendor joined with one of its invoices.
type Row struct {
	VendorRef     string
	ContactName   string
	Email         string
	Phone         string
	Address       string
	Company       string
	Role          string
	InvoiceNumber string
	Amount        float64
	Status        string
	DueDate       string
	InvoiceDate   string
}

// exportHeader preserves the ledger CSV column layout expected by the
// finance side. Order matters.
var exportHeader = []string{
	"vendor_id",
	"name",
	"email",
	"phone",
	"address",
	"company",
	"role",
	"invoice_id",
	"amount",
	"status",
	"due_date",
	"invoice_date",
}

// File names the ingest directory is expected to contain.
const (
	LedgerFile  = "ledger_data.csv"
	LibraryFile = "library_data.csv"
	PolicyFile  = "policy.pdf"
)

const defaultCurrency = "USD"

// Source labels attached to knowledge chunks.
const (
	SourceEmailArchive = "email_archive"
	SourcePolicy       = "policy_document"
)
