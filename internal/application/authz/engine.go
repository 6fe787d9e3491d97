// Package authz computes relationship classes and authorization verdicts.
// It is the only place permission rules live; the façade consumes verdicts
// as-is and the confirmation protocol trusts fields were filtered here.
package authz

import "github.com/ankurnehra/bodega/internal/domain"

// Operation is a requested action on a resource.
type Operation uint8

const (
	OpList Operation = iota
	OpView
	OpCreate
	OpUpdate
	OpDelete
)

// String returns the operation name for logs and metrics.
func (o Operation) String() string {
	switch o {
	case OpList:
		return "list"
	case OpView:
		return "view"
	case OpCreate:
		return "create"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	}
	return "unknown"
}

// RedirectTarget tells the presentation layer where to send a denied actor.
// The distinction is a UX signal only: the item list implies "resource exists
// but is hidden", the company page implies "nothing relevant here".
type RedirectTarget uint8

const (
	RedirectNone RedirectTarget = iota
	RedirectCompanyPage
	RedirectItemList
)

// FieldScope is the allow-list of confirmation fields an actor may write in
// one call. The façade silently drops any edit outside the scope; it never
// trusts caller-supplied field sets.
type FieldScope uint8

const (
	FieldPendingSupplierConf FieldScope = 1 << iota
	FieldPendingPurchaserConf
	FieldPendingAdminConf
	FieldPendingMemberConf
)

// Has reports whether the scope grants the given field.
func (s FieldScope) Has(f FieldScope) bool { return s&f != 0 }

// Verdict is the engine's answer: allowed with a field-write scope, or
// denied with a redirect target. Verdicts carry no entity state.
type Verdict struct {
	Allowed  bool
	Scope    FieldScope
	Redirect RedirectTarget
	Reason   string
}

// Allow grants the operation with the given writable field scope.
func Allow(scope FieldScope) Verdict {
	return Verdict{Allowed: true, Scope: scope}
}

// Deny refuses the operation and names the redirect destination.
func Deny(redirect RedirectTarget, reason string) Verdict {
	return Verdict{Redirect: redirect, Reason: reason}
}

// AuthorizeItem maps the actor's relationship classes toward the owning
// company to a verdict for an item operation:
//
//   - SelfAdmin: everything.
//   - SelfMember, PurchaserMember: read only; writes bounce to the item
//     list. A purchaser may browse its supplier's catalog but not alter it;
//     plain staff membership is read-only.
//   - SupplierMember, Unaffiliated: nothing; bounce to the company page.
//     The supply relationship is one-directional — supplying a company
//     grants no visibility into that company's own inventory.
func AuthorizeItem(classes domain.ClassSet, op Operation) Verdict {
	switch {
	case classes.Has(domain.SelfAdmin):
		return Allow(0)
	case classes.Has(domain.SelfMember), classes.Has(domain.PurchaserMember):
		if op == OpList || op == OpView {
			return Allow(0)
		}
		return Deny(RedirectItemList, "read-only relationship to this catalog")
	default:
		return Deny(RedirectCompanyPage, "no relationship grants catalog access")
	}
}

// AuthorizeLink authorizes create/update/delete on a supply link given the
// actor's classes toward each named company. The actor must administer at
// least one side; the writable scope contains exactly the pending flag(s)
// of the administered side(s). An admin of both companies may write both
// flags in one call.
func AuthorizeLink(supplierClasses, purchaserClasses domain.ClassSet, op Operation) Verdict {
	var scope FieldScope
	if supplierClasses.Has(domain.SelfAdmin) {
		scope |= FieldPendingSupplierConf
	}
	if purchaserClasses.Has(domain.SelfAdmin) {
		scope |= FieldPendingPurchaserConf
	}
	if scope == 0 {
		return Deny(RedirectCompanyPage, "must administer a company named by the link")
	}
	switch op {
	case OpCreate, OpUpdate, OpDelete:
		return Allow(scope)
	default:
		return Deny(RedirectCompanyPage, "unsupported supply link operation")
	}
}

// AuthorizeMembership authorizes membership operations. The company's admins
// hold the admin side of the handshake; the member holds their own side.
// Either party may create (invite vs. join request) or delete (remove vs.
// leave); updates are scoped to the caller's flag(s).
func AuthorizeMembership(companyClasses domain.ClassSet, actorIsSubject bool, op Operation) Verdict {
	var scope FieldScope
	if companyClasses.Has(domain.SelfAdmin) {
		scope |= FieldPendingAdminConf
	}
	if actorIsSubject {
		scope |= FieldPendingMemberConf
	}
	if scope == 0 {
		return Deny(RedirectCompanyPage, "must administer the company or be the member")
	}
	switch op {
	case OpCreate, OpUpdate, OpDelete:
		return Allow(scope)
	default:
		return Deny(RedirectCompanyPage, "unsupported membership operation")
	}
}
