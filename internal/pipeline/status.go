package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/agentia/vendormail/internal/completion"
	"github.com/agentia/vendormail/internal/invoices"
	"github.com/agentia/vendormail/internal/prompts"
	"github.com/agentia/vendormail/pkg/formatting"
)

// executeStatusLookup resolves an invoice number from the conversation and
// builds a full data context from the ledger. When no invoice can be
// identified the vendor's pending invoices are summarized instead. Every
// outcome is an informative string; this stage never records a failure.
func (o *Orchestrator) executeStatusLookup(ctx context.Context, log *slog.Logger, s State) Patch {
	number := o.extractInvoiceNumber(ctx, log, s)

	if number == "" {
		result := o.pendingSummary(ctx, log, s)
		return Patch{
			StructuredResult: ref(result),
			Audit:            []string{"Checked Pending Invoices"},
		}
	}

	log.Info("fetching invoice data", "invoice", number)

	inv, err := o.collab.Invoices.FindByNumber(ctx, number, s.Identity.ID)
	if err != nil {
		if !errors.Is(err, invoices.ErrNotFound) {
			log.Warn("invoice lookup failed", "invoice", number, "error", err)
		}
		result := fmt.Sprintf("Invoice %s not found in our records.", number)
		return Patch{
			StructuredResult: ref(result),
			Audit:            []string{"Checked Status for " + number},
		}
	}

	v := s.Identity
	result := fmt.Sprintf(
		"--- INVOICE DETAILS ---\n"+
			"Invoice ID: %s\n"+
			"Amount: %.2f %s\n"+
			"Status: %s\n"+
			"Due Date: %s\n"+
			"Invoice Date (Issue): %s\n\n"+
			"--- VENDOR PROFILE (Source: Ledger) ---\n"+
			"Vendor ID: %s\n"+
			"Company: %s\n"+
			"Contact Name: %s\n"+
			"Email: %s\n"+
			"Phone: %s\n"+
			"Address: %s\n"+
			"Role/Category: %s",
		inv.InvoiceNumber,
		inv.Amount, inv.Currency,
		inv.Status,
		formatDate(inv.DueDate),
		formatDate(inv.IssueDate),
		v.VendorRef,
		v.Name,
		v.ContactName,
		v.Email,
		v.Phone,
		v.Address,
		v.Category,
	)

	return Patch{
		StructuredResult: ref(result),
		Audit:            []string{"Checked Status for " + number},
	}
}

// extractInvoiceNumber asks the extractor for the invoice number, falling
// back to a pattern match over the email body when the model finds nothing.
func (o *Orchestrator) extractInvoiceNumber(ctx context.Context, log *slog.Logger, s State) string {
	number, err := o.extract(ctx, s.History,
		"The Invoice Number (e.g., INV-123) mentioned by the user.")
	if err != nil {
		log.Warn("invoice extraction failed", "error", err)
		number = ""
	}

	if number == "" || strings.Contains(number, "NOT_FOUND") {
		if fallback, ok := formatting.ExtractInvoiceNumber(s.Input.Body); ok {
			return fallback
		}
		return ""
	}

	return strings.ToUpper(number)
}

func (o *Orchestrator) pendingSummary(ctx context.Context, log *slog.Logger, s State) string {
	pending, err := o.collab.Invoices.Pending(ctx, s.Identity.ID)
	if err != nil {
		log.Warn("pending invoice lookup failed", "error", err)
		pending = nil
	}

	if len(pending) == 0 {
		return "I could not identify a specific invoice, and you have no pending invoices."
	}

	lines := make([]string, 0, len(pending))
	for _, inv := range pending {
		lines = append(lines, fmt.Sprintf("- %s: %.2f %s (Due: %s)",
			inv.InvoiceNumber, inv.Amount, inv.Currency, formatDate(inv.DueDate)))
	}

	return "Here are your pending invoices:\n" + strings.Join(lines, "\n")
}

// extract runs one deterministic extraction call, stripping quotes the
// model tends to wrap values in.
func (o *Orchestrator) extract(ctx context.Context, history []completion.Message, query string) (string, error) {
	out, err := o.collab.Extractor.Complete(ctx, prompts.Extraction(query), history)
	if err != nil {
		return "", err
	}
	return strings.Trim(strings.TrimSpace(out), `"'`), nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "N/A"
	}
	return t.Format("2006-01-02")
}
