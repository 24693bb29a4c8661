package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/agentia/vendormail/internal/vendors"
	"github.com/agentia/vendormail/pkg/formatting"
)

// executeUpdate extracts a FIELD:VALUE instruction from the conversation,
// validates it against the contact allow-list, and writes it through the
// identity store. Validation failures surface as rejection strings in the
// structured result; the stage itself always succeeds. A successful write
// additionally triggers the ledger CSV re-export, whose failure is logged
// but never shown to the vendor.
func (o *Orchestrator) executeUpdate(ctx context.Context, log *slog.Logger, s State) Patch {
	audit := []string{"Attempted Profile Update"}

	extracted, err := o.extract(ctx, s.History,
		"Extract the field to update (phone/address/contact_name) and the new value. Format: 'FIELD:VALUE'")
	if err != nil || !strings.Contains(extracted, ":") {
		if err != nil {
			log.Warn("update extraction failed", "error", err)
		}
		return Patch{
			StructuredResult: ref("I could not clarify what you want to update. Please specify Field and Value."),
			Audit:            audit,
		}
	}

	field, value, _ := strings.Cut(extracted, ":")
	field = strings.ToLower(strings.TrimSpace(field))
	value = strings.TrimSpace(value)

	if !vendors.UpdatableFields[field] {
		log.Warn("update rejected, field not allowed", "field", field)
		return Patch{
			StructuredResult: ref(fmt.Sprintf("Update Rejected: Field '%s' cannot be modified.", field)),
			Audit:            audit,
		}
	}

	if field == "phone" {
		clean, ok := formatting.NormalizePhone(value)
		if !ok {
			log.Warn("update rejected, invalid phone", "value", value)
			return Patch{
				StructuredResult: ref(fmt.Sprintf("Update Rejected: Phone number '%s' invalid.", value)),
				Audit:            audit,
			}
		}
		value = clean
	}

	if err := o.collab.Vendors.UpdateContact(ctx, s.Identity.ID, field, value); err != nil {
		log.Warn("contact update failed", "field", field, "error", err)
		return Patch{
			StructuredResult: ref("I could not apply your update due to a system error. Please try again later."),
			Audit:            audit,
		}
	}

	if err := o.collab.Ledger.Export(ctx); err != nil {
		log.Warn("ledger export after update failed", "error", err)
	} else {
		log.Info("ledger export triggered")
	}

	return Patch{
		StructuredResult: ref(fmt.Sprintf("Successfully updated %s to %s.", field, value)),
		Audit:            audit,
	}
}
