package domain

import (
	"time"

	"github.com/google/uuid"
)

// CompanyID is a value object for company identity.
type CompanyID struct{ uuid.UUID }

// NewCompanyID creates a new CompanyID from uuid.
func NewCompanyID(id uuid.UUID) CompanyID { return CompanyID{UUID: id} }

// String returns the canonical string form.
func (c CompanyID) String() string { return c.UUID.String() }

// Company owns items and participates in supply links as supplier or
// purchaser. Name and code are unique across the platform.
type Company struct {
	ID        CompanyID
	Name      string
	Code      string
	StrAddr   string
	City      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
