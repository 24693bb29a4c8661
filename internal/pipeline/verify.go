package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/agentia/vendormail/internal/vendors"
)

// verifyIdentity checks the sender against the vendor master. A lookup
// error is treated the same as not-found: the sender is unauthorized, the
// run continues to the rejection drafter.
func (o *Orchestrator) verifyIdentity(ctx context.Context, log *slog.Logger, s State) Patch {
	sender := strings.ToLower(strings.TrimSpace(s.Input.Sender))

	v, err := o.collab.Vendors.FindByEmail(ctx, sender)
	if err != nil {
		if errors.Is(err, vendors.ErrNotFound) {
			log.Warn("sender not in vendor master", "sender", sender)
		} else {
			log.Warn("identity lookup failed, treating as unauthorized", "error", err)
		}

		return Patch{
			Authorized: ref(false),
			Audit:      []string{"Security Check Failed"},
		}
	}

	log.Info("security check passed", "vendor_id", v.ID)

	return Patch{
		Authorized: ref(true),
		Identity:   v,
		Audit:      []string{"Security Check Passed"},
	}
}
