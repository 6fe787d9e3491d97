package domain

import domerrors "github.com/ankurnehra/bodega/internal/domain/errors"

// Side names one of the two parties of a dual-consent record. SideA is the
// supplier on a supply link and the admin side on a membership; SideB is the
// purchaser and the member side.
type Side uint8

const (
	SideA Side = iota
	SideB
)

// TwoSided is the confirmation surface shared by supply links and
// memberships: two independent pending flags, one per party. A record is
// active only once both flags are cleared.
//
// TwoSided performs no authorization. Callers must have already filtered
// field edits down to the side(s) the actor may write.
type TwoSided interface {
	Pending(Side) bool
	SetPending(Side, bool)
}

// ConfirmationActive reports whether both sides have confirmed.
func ConfirmationActive(c TwoSided) bool {
	return !c.Pending(SideA) && !c.Pending(SideB)
}

// Confirm clears the named side's pending flag. Confirming an
// already-confirmed side is a no-op.
func Confirm(c TwoSided, s Side) {
	c.SetPending(s, false)
}

// Revoke re-raises the named side's pending flag, retracting a confirmation
// before the counterpart has confirmed. Once the record is active the
// handshake is locked; retraction must be modeled as deletion instead.
func Revoke(c TwoSided, s Side) error {
	if ConfirmationActive(c) {
		return domerrors.ErrConfirmationLocked
	}
	c.SetPending(s, true)
	return nil
}
