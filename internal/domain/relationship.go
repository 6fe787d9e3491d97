package domain

// Class is the relationship a user holds toward a target company, derived
// from active memberships and active supply links only.
type Class uint8

const (
	// SelfAdmin: active admin membership in the target company.
	SelfAdmin Class = iota
	// SelfMember: active non-admin membership in the target company.
	SelfMember
	// SupplierMember: active membership in a company that actively supplies
	// the target company.
	SupplierMember
	// PurchaserMember: active membership in a company that actively
	// purchases from the target company.
	PurchaserMember
	// Unaffiliated: none of the above.
	Unaffiliated
)

// String returns the class name for logs and metrics.
func (c Class) String() string {
	switch c {
	case SelfAdmin:
		return "self_admin"
	case SelfMember:
		return "self_member"
	case SupplierMember:
		return "supplier_member"
	case PurchaserMember:
		return "purchaser_member"
	case Unaffiliated:
		return "unaffiliated"
	}
	return "unknown"
}

// ClassSet is the full set of relationship classes a user holds toward a
// company. A user may hold several at once (e.g. SelfMember and
// PurchaserMember via a second company).
type ClassSet uint8

// NewClassSet builds a set from the given classes.
func NewClassSet(classes ...Class) ClassSet {
	var s ClassSet
	for _, c := range classes {
		s = s.Add(c)
	}
	return s
}

// Add returns the set with c included.
func (s ClassSet) Add(c Class) ClassSet { return s | 1<<c }

// Has reports whether c is in the set.
func (s ClassSet) Has(c Class) bool { return s&(1<<c) != 0 }

// IsEmpty reports whether no class is present.
func (s ClassSet) IsEmpty() bool { return s == 0 }

// Classes returns the members of the set in declaration order.
func (s ClassSet) Classes() []Class {
	var out []Class
	for c := SelfAdmin; c <= Unaffiliated; c++ {
		if s.Has(c) {
			out = append(out, c)
		}
	}
	return out
}
