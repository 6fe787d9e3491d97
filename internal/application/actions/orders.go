package actions

import (
	"context"
	"time"

	"github.com/ankurnehra/bodega/internal/application/authz"
	"github.com/ankurnehra/bodega/internal/application/ports"
	"github.com/ankurnehra/bodega/internal/domain"
	domerrors "github.com/ankurnehra/bodega/internal/domain/errors"
	"github.com/google/uuid"
)

// OrderFields is the writable field set when placing an order.
type OrderFields struct {
	InvoiceNo    string
	Total        int
	Discount     int
	DiscountType string
	Notes        string
}

// OrderActions lets purchaser members place orders with suppliers they hold
// an active link with, and supplier admins accept them. An order is the
// first thing an activated link is good for.
type OrderActions struct {
	companies ports.CompanyRepository
	links     ports.SupplyLinkRepository
	orders    ports.OrderRepository
	resolver  *authz.Resolver
	tx        ports.TxManager
	queue     ports.TaskEnqueuer
}

func NewOrderActions(companies ports.CompanyRepository, links ports.SupplyLinkRepository, orders ports.OrderRepository, resolver *authz.Resolver, tx ports.TxManager, queue ports.TaskEnqueuer) *OrderActions {
	return &OrderActions{companies: companies, links: links, orders: orders, resolver: resolver, tx: tx, queue: queue}
}

// OrderResult carries a single order on success.
type OrderResult struct {
	Result
	Order *domain.Order
}

// OrderListResult carries a company's orders on success.
type OrderListResult struct {
	Result
	Orders []*domain.Order
}

// Place creates an order against the supplier's catalog. The actor must
// hold PurchaserMember toward the supplier through the named purchaser
// company, which requires the link to be fully active — a half-confirmed
// link cannot carry orders.
func (a *OrderActions) Place(ctx context.Context, actorID domain.UserID, supplierID, purchaserID domain.CompanyID, fields OrderFields) (*OrderResult, error) {
	supplier, err := a.companies.GetByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	purchaser, err := a.companies.GetByID(ctx, purchaserID)
	if err != nil {
		return nil, err
	}
	if supplier == nil || purchaser == nil {
		return &OrderResult{Result: notFound()}, nil
	}
	purchaserClasses, err := a.resolver.Resolve(ctx, actorID, purchaserID)
	if err != nil {
		return nil, err
	}
	linked, err := a.links.ActiveLinkExists(ctx, supplierID, purchaserID)
	if err != nil {
		return nil, err
	}
	isPurchaserStaff := purchaserClasses.Has(domain.SelfAdmin) || purchaserClasses.Has(domain.SelfMember)
	if !isPurchaserStaff || !linked {
		v := authz.Deny(authz.RedirectCompanyPage, "ordering requires purchaser membership and an active link")
		return &OrderResult{Result: denied(supplierID, v)}, nil
	}
	if fields.InvoiceNo == "" {
		verr := domerrors.NewValidationError("invoice_no", "can't be blank")
		return &OrderResult{Result: validationFailed(verr, "Order failed to be placed.")}, nil
	}
	now := time.Now()
	order := &domain.Order{
		ID:           domain.NewOrderID(uuid.New()),
		SupplierID:   supplierID,
		PurchaserID:  purchaserID,
		PlacedBy:     actorID,
		InvoiceNo:    fields.InvoiceNo,
		Total:        fields.Total,
		Discount:     fields.Discount,
		DiscountType: fields.DiscountType,
		Notes:        fields.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err = a.tx.WithinTx(ctx, func(ctx context.Context) error {
		return a.orders.Create(ctx, order)
	})
	if verr := domerrors.AsValidation(err); verr != nil {
		return &OrderResult{Result: validationFailed(verr, "Order failed to be placed.")}, nil
	}
	if err != nil {
		return nil, err
	}
	_ = a.queue.EnqueueOrderPlaced(ctx, order.ID.String(), supplierID.String())
	res := &OrderResult{Order: order}
	res.Result = success("Order was successfully placed.")
	res.Rerender = []Rerender{{Mode: RerenderAppend, Region: "orders"}}
	return res, nil
}

// Accept marks an order accepted by a supplier-side admin.
func (a *OrderActions) Accept(ctx context.Context, actorID domain.UserID, supplierID domain.CompanyID, orderID domain.OrderID) (*OrderResult, error) {
	order, err := a.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil || order.SupplierID != supplierID {
		return &OrderResult{Result: notFound()}, nil
	}
	classes, err := a.resolver.Resolve(ctx, actorID, supplierID)
	if err != nil {
		return nil, err
	}
	if !classes.Has(domain.SelfAdmin) {
		v := authz.Deny(authz.RedirectCompanyPage, "only a supplier admin may accept an order")
		return &OrderResult{Result: denied(supplierID, v)}, nil
	}
	err = a.tx.WithinTx(ctx, func(ctx context.Context) error {
		locked, err := a.orders.GetByID(ctx, orderID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domerrors.ErrNotFound
		}
		locked.AcceptedBy = &actorID
		locked.UpdatedAt = time.Now()
		order = locked
		return a.orders.Update(ctx, locked)
	})
	if err == domerrors.ErrNotFound {
		return &OrderResult{Result: notFound()}, nil
	}
	if err != nil {
		return nil, err
	}
	res := &OrderResult{Order: order}
	res.Result = success("Order was successfully accepted.")
	res.Rerender = []Rerender{{Mode: RerenderReplace, Region: "order_" + order.ID.String()}}
	return res, nil
}

// List returns the orders a company participates in, for its own staff.
func (a *OrderActions) List(ctx context.Context, actorID domain.UserID, companyID domain.CompanyID) (*OrderListResult, error) {
	company, err := a.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return &OrderListResult{Result: notFound()}, nil
	}
	classes, err := a.resolver.Resolve(ctx, actorID, companyID)
	if err != nil {
		return nil, err
	}
	if !classes.Has(domain.SelfAdmin) && !classes.Has(domain.SelfMember) {
		v := authz.Deny(authz.RedirectCompanyPage, "orders are visible to company staff only")
		return &OrderListResult{Result: denied(companyID, v)}, nil
	}
	orders, err := a.orders.ListForCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	res := &OrderListResult{Orders: orders}
	res.Status = Success
	return res, nil
}
