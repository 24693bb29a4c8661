// Package vendors implements the vendor master domain: the authoritative
// record of suppliers, their contact details, and identity verification by
// sender address.
package vendors

import (
	"time"

	"github.com/google/uuid"
)

// Vendor represents a row in the vendors table. VendorRef carries the
// external ledger identifier (e.g. "V7755"); Name is the company name.
type Vendor struct {
	ID          uuid.UUID `json:"id"`
	VendorRef   string    `json:"vendor_ref"`
	Name        string    `json:"name"`
	ContactName string    `json:"contact_name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Address     string    `json:"address"`
	Category    string    `json:"category"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateCommand carries the data needed to register a vendor during ledger ingestion.
type CreateCommand struct {
	VendorRef   string
	Name        string
	ContactName string
	Email       string
	Phone       string
	Address     string
	Category    string
}

// UpdatableFields is the closed set of vendor columns a contact update may
// touch. Requests naming any other field are rejected before reaching SQL.
var UpdatableFields = map[string]bool{
	"phone":        true,
	"name":         true,
	"category":     true,
	"address":      true,
	"contact_name": true,
}
