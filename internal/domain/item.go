package domain

import "github.com/google/uuid"

// ItemID is a value object for item identity.
type ItemID struct{ uuid.UUID }

// NewItemID creates a new ItemID from uuid.
func NewItemID(id uuid.UUID) ItemID { return ItemID{UUID: id} }

// String returns the canonical string form.
func (i ItemID) String() string { return i.UUID.String() }

// Item is a catalog entry owned by exactly one company. Price is in
// minor currency units.
type Item struct {
	ID        ItemID
	CompanyID CompanyID
	Name      string
	RefCode   string
	Price     int
	UnitSize  string
}
