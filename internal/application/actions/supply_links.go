package actions

import (
	"context"

	"github.com/ankurnehra/bodega/internal/application/authz"
	"github.com/ankurnehra/bodega/internal/application/ports"
	"github.com/ankurnehra/bodega/internal/domain"
	domerrors "github.com/ankurnehra/bodega/internal/domain/errors"
	"github.com/google/uuid"
)

// LinkFlagEdits is the caller-supplied edit set for a supply link's
// confirmation flags. Nil means "not submitted". Edits outside the actor's
// granted scope are dropped without error before they reach the state
// machine.
type LinkFlagEdits struct {
	PendingSupplierConf  *bool
	PendingPurchaserConf *bool
}

// SupplyLinkActions performs create/update/delete on supply links.
type SupplyLinkActions struct {
	companies ports.CompanyRepository
	links     ports.SupplyLinkRepository
	resolver  *authz.Resolver
	tx        ports.TxManager
	queue     ports.TaskEnqueuer
}

func NewSupplyLinkActions(companies ports.CompanyRepository, links ports.SupplyLinkRepository, resolver *authz.Resolver, tx ports.TxManager, queue ports.TaskEnqueuer) *SupplyLinkActions {
	return &SupplyLinkActions{companies: companies, links: links, resolver: resolver, tx: tx, queue: queue}
}

// LinkResult carries the link on success.
type LinkResult struct {
	Result
	Link *domain.SupplyLink
}

// Create establishes a new link between two distinct companies. Both pending
// flags start true no matter which side's admin calls; any confirmation
// submitted alongside is applied through the scoped flag edits, so creating
// and confirming stay distinct acts that merely share a call.
func (a *SupplyLinkActions) Create(ctx context.Context, actorID domain.UserID, companyID, supplierID, purchaserID domain.CompanyID, edits LinkFlagEdits) (*LinkResult, error) {
	if supplierID == purchaserID {
		return nil, domerrors.ErrSelfSupply
	}
	supplier, err := a.companies.GetByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	purchaser, err := a.companies.GetByID(ctx, purchaserID)
	if err != nil {
		return nil, err
	}
	if supplier == nil || purchaser == nil {
		return &LinkResult{Result: notFound()}, nil
	}
	v, err := a.authorize(ctx, actorID, supplierID, purchaserID, authz.OpCreate)
	if err != nil {
		return nil, err
	}
	if !v.Allowed {
		return &LinkResult{Result: denied(companyID, v)}, nil
	}
	link := &domain.SupplyLink{
		ID:                   domain.NewSupplyLinkID(uuid.New()),
		SupplierID:           supplierID,
		PurchaserID:          purchaserID,
		PendingSupplierConf:  true,
		PendingPurchaserConf: true,
	}
	if verr := applyLinkEdits(link, v.Scope, edits); verr != nil {
		return &LinkResult{Result: validationFailed(verr, "Supply Link failed to be created.")}, nil
	}
	err = a.tx.WithinTx(ctx, func(ctx context.Context) error {
		return a.links.Create(ctx, link)
	})
	if verr := domerrors.AsValidation(err); verr != nil {
		return &LinkResult{Result: validationFailed(verr, "Supply Link failed to be created.")}, nil
	}
	if err != nil {
		return nil, err
	}
	_ = a.queue.EnqueueLinkInvite(ctx, link.ID.String(), supplierID.String(), purchaserID.String())
	if link.Active() {
		_ = a.queue.EnqueueLinkConfirmed(ctx, link.ID.String())
	}
	res := &LinkResult{Link: link}
	res.Result = success("Supply Link was successfully created.")
	res.Rerender = []Rerender{{Mode: RerenderAppend, Region: "supply_links", NeedsListeners: true}}
	return res, nil
}

// Update applies confirmation flag edits to an existing link. The write is
// atomic per link: the row is locked while the flags are reread and
// rewritten, so opposite-side confirmations cannot lose updates.
func (a *SupplyLinkActions) Update(ctx context.Context, actorID domain.UserID, companyID domain.CompanyID, linkID domain.SupplyLinkID, edits LinkFlagEdits) (*LinkResult, error) {
	link, err := a.links.GetByID(ctx, linkID)
	if err != nil {
		return nil, err
	}
	if link == nil {
		return &LinkResult{Result: notFound()}, nil
	}
	v, err := a.authorize(ctx, actorID, link.SupplierID, link.PurchaserID, authz.OpUpdate)
	if err != nil {
		return nil, err
	}
	if !v.Allowed {
		return &LinkResult{Result: denied(companyID, v)}, nil
	}
	var wentActive bool
	err = a.tx.WithinTx(ctx, func(ctx context.Context) error {
		locked, err := a.links.GetByIDForUpdate(ctx, linkID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domerrors.ErrNotFound
		}
		wasActive := locked.Active()
		if verr := applyLinkEdits(locked, v.Scope, edits); verr != nil {
			return verr
		}
		if err := a.links.Update(ctx, locked); err != nil {
			return err
		}
		wentActive = !wasActive && locked.Active()
		link = locked
		return nil
	})
	if err == domerrors.ErrNotFound {
		return &LinkResult{Result: notFound()}, nil
	}
	if verr := domerrors.AsValidation(err); verr != nil {
		return &LinkResult{Result: validationFailed(verr, "Supply Link failed to be updated.")}, nil
	}
	if err != nil {
		return nil, err
	}
	if wentActive {
		_ = a.queue.EnqueueLinkConfirmed(ctx, link.ID.String())
	}
	res := &LinkResult{Link: link}
	res.Result = success("Supply Link was successfully updated.")
	res.Rerender = []Rerender{{Mode: RerenderReplace, Region: "supply_link_" + link.ID.String()}}
	return res, nil
}

// Delete removes a link. An admin of either side may delete regardless of
// confirmation state; this is also the only retraction once a link is
// active.
func (a *SupplyLinkActions) Delete(ctx context.Context, actorID domain.UserID, companyID domain.CompanyID, linkID domain.SupplyLinkID) (*LinkResult, error) {
	link, err := a.links.GetByID(ctx, linkID)
	if err != nil {
		return nil, err
	}
	if link == nil {
		return &LinkResult{Result: notFound()}, nil
	}
	v, err := a.authorize(ctx, actorID, link.SupplierID, link.PurchaserID, authz.OpDelete)
	if err != nil {
		return nil, err
	}
	if !v.Allowed {
		return &LinkResult{Result: denied(companyID, v)}, nil
	}
	err = a.tx.WithinTx(ctx, func(ctx context.Context) error {
		return a.links.Delete(ctx, linkID)
	})
	if err != nil {
		return nil, err
	}
	res := &LinkResult{}
	res.Result = success("Supply Link was successfully destroyed.")
	res.Rerender = []Rerender{{Mode: RerenderReplace, Region: "supply_links"}}
	return res, nil
}

func (a *SupplyLinkActions) authorize(ctx context.Context, actorID domain.UserID, supplierID, purchaserID domain.CompanyID, op authz.Operation) (authz.Verdict, error) {
	supplierClasses, err := a.resolver.Resolve(ctx, actorID, supplierID)
	if err != nil {
		return authz.Verdict{}, err
	}
	purchaserClasses, err := a.resolver.Resolve(ctx, actorID, purchaserID)
	if err != nil {
		return authz.Verdict{}, err
	}
	return authz.AuthorizeLink(supplierClasses, purchaserClasses, op), nil
}

// applyLinkEdits routes granted flag edits through the confirmation
// protocol. Out-of-scope edits are dropped, not errors. A revoke attempt on
// an active link surfaces as a field validation message.
func applyLinkEdits(link *domain.SupplyLink, scope authz.FieldScope, edits LinkFlagEdits) *domerrors.ValidationError {
	if edits.PendingSupplierConf != nil && scope.Has(authz.FieldPendingSupplierConf) {
		if err := applyFlag(link, domain.SideA, *edits.PendingSupplierConf); err != nil {
			return domerrors.NewValidationError("pending_supplier_conf", err.Error())
		}
	}
	if edits.PendingPurchaserConf != nil && scope.Has(authz.FieldPendingPurchaserConf) {
		if err := applyFlag(link, domain.SideB, *edits.PendingPurchaserConf); err != nil {
			return domerrors.NewValidationError("pending_purchaser_conf", err.Error())
		}
	}
	return nil
}

func applyFlag(c domain.TwoSided, side domain.Side, pending bool) error {
	if pending {
		return domain.Revoke(c, side)
	}
	domain.Confirm(c, side)
	return nil
}
