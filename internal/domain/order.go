package domain

import (
	"time"

	"github.com/google/uuid"
)

// OrderID is a value object for order identity.
type OrderID struct{ uuid.UUID }

// NewOrderID creates a new OrderID from uuid.
func NewOrderID(id uuid.UUID) OrderID { return OrderID{UUID: id} }

// String returns the canonical string form.
func (o OrderID) String() string { return o.UUID.String() }

// Order is placed by a member of the purchaser company against a supplier
// it holds an active supply link with. InvoiceNo is unique per supplier.
// AcceptedBy is set when a supplier admin accepts the order.
type Order struct {
	ID           OrderID
	SupplierID   CompanyID
	PurchaserID  CompanyID
	PlacedBy     UserID
	AcceptedBy   *UserID
	InvoiceNo    string
	Total        int
	Discount     int
	DiscountType string
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
