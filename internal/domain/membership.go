package domain

import (
	"time"

	"github.com/google/uuid"
)

// MembershipID is a value object for membership identity.
type MembershipID struct{ uuid.UUID }

// NewMembershipID creates a new MembershipID from uuid.
func NewMembershipID(id uuid.UUID) MembershipID { return MembershipID{UUID: id} }

// String returns the canonical string form.
func (m MembershipID) String() string { return m.UUID.String() }

// Membership relates one user to one company, at most once per pair. It
// follows the same dual-consent handshake as a supply link: the company's
// admins confirm one side, the member confirms the other, and the
// membership grants authorization only once both have.
type Membership struct {
	ID                MembershipID
	UserID            UserID
	CompanyID         CompanyID
	Admin             bool
	PendingAdminConf  bool
	PendingMemberConf bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Pending implements TwoSided. SideA is the admin side.
func (m *Membership) Pending(s Side) bool {
	if s == SideA {
		return m.PendingAdminConf
	}
	return m.PendingMemberConf
}

// SetPending implements TwoSided.
func (m *Membership) SetPending(s Side, v bool) {
	if s == SideA {
		m.PendingAdminConf = v
		return
	}
	m.PendingMemberConf = v
}

// Active reports whether both sides have confirmed. Pending memberships
// grant no authorization at all.
func (m *Membership) Active() bool { return ConfirmationActive(m) }
