package domain

import "github.com/google/uuid"

// SupplyLinkID is a value object for supply link identity.
type SupplyLinkID struct{ uuid.UUID }

// NewSupplyLinkID creates a new SupplyLinkID from uuid.
func NewSupplyLinkID(id uuid.UUID) SupplyLinkID { return SupplyLinkID{UUID: id} }

// String returns the canonical string form.
func (s SupplyLinkID) String() string { return s.UUID.String() }

// CompanyRole is the fixed role a company holds on a supply link.
type CompanyRole string

const (
	RoleSupplier  CompanyRole = "supplier"
	RolePurchaser CompanyRole = "purchaser"
)

// CompanyRoles lists the two confirmer roles of a supply link.
var CompanyRoles = []CompanyRole{RoleSupplier, RolePurchaser}

// SupplyLink is a directed edge between two distinct companies. Both pending
// flags default to true on creation regardless of which side created the
// link; creating and confirming are distinct acts. At most one link exists
// per ordered (supplier, purchaser) pair.
type SupplyLink struct {
	ID                   SupplyLinkID
	SupplierID           CompanyID
	PurchaserID          CompanyID
	PendingSupplierConf  bool
	PendingPurchaserConf bool
}

// Pending implements TwoSided. SideA is the supplier.
func (l *SupplyLink) Pending(s Side) bool {
	if s == SideA {
		return l.PendingSupplierConf
	}
	return l.PendingPurchaserConf
}

// SetPending implements TwoSided.
func (l *SupplyLink) SetPending(s Side, v bool) {
	if s == SideA {
		l.PendingSupplierConf = v
		return
	}
	l.PendingPurchaserConf = v
}

// Active reports whether both companies have confirmed the link.
func (l *SupplyLink) Active() bool { return ConfirmationActive(l) }

// SideOf maps a company role to its confirmation side.
func (l *SupplyLink) SideOf(role CompanyRole) Side {
	if role == RoleSupplier {
		return SideA
	}
	return SideB
}

// CompanyFor returns the company holding the given role on this link.
func (l *SupplyLink) CompanyFor(role CompanyRole) CompanyID {
	if role == RoleSupplier {
		return l.SupplierID
	}
	return l.PurchaserID
}
