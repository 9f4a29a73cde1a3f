// Package rules holds the field-derivation logic that runs inside the
// entity-store write path. Every rule is a pure function over the old and
// incoming state so it can be exercised without a database.
package rules

import (
	"time"

	"github.com/energyportfolio/crm-service/internal/model"
)

// DeriveClient resolves the derived client fields before persistence.
// old is the persisted row, or nil when the record is new or could not be
// found; in the not-found case the lost date is left untouched.
func DeriveClient(old *model.Client, next model.Client, today time.Time) model.Client {
	day := dateOnly(today)

	if old == nil {
		if next.ID == 0 && next.IsLost {
			next.ClientLostDate = &day
		}
		return next
	}

	if old.IsLost != next.IsLost {
		if next.IsLost {
			next.ClientLostDate = &day
		} else {
			next.ClientLostDate = nil
		}
	} else {
		next.ClientLostDate = old.ClientLostDate
	}
	return next
}

// CascadeToLost reports whether every contract of the client must be
// bulk-set to LOST. The cascade is transition-triggered: it fires when a
// client flips to lost, or is created already lost, and not again on
// subsequent saves of an already-lost client.
func CascadeToLost(old *model.Client, next model.Client) bool {
	if !next.IsLost {
		return false
	}
	if old == nil {
		return next.ID == 0
	}
	return !old.IsLost
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
