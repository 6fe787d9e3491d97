package actions

import (
	"context"

	"github.com/ankurnehra/bodega/internal/application/authz"
	"github.com/ankurnehra/bodega/internal/application/ports"
	"github.com/ankurnehra/bodega/internal/domain"
	domerrors "github.com/ankurnehra/bodega/internal/domain/errors"
	"github.com/google/uuid"
)

// ItemFields is the writable field set of an item. All item fields share one
// scope: whoever may write an item may write all of it.
type ItemFields struct {
	Name     string
	RefCode  string
	Price    int
	UnitSize string
}

// ItemActions performs the five catalog operations on behalf of an actor.
type ItemActions struct {
	companies ports.CompanyRepository
	items     ports.ItemRepository
	resolver  *authz.Resolver
	tx        ports.TxManager
}

func NewItemActions(companies ports.CompanyRepository, items ports.ItemRepository, resolver *authz.Resolver, tx ports.TxManager) *ItemActions {
	return &ItemActions{companies: companies, items: items, resolver: resolver, tx: tx}
}

// ItemResult carries a single item on success.
type ItemResult struct {
	Result
	Item *domain.Item
}

// ItemListResult carries a company's catalog on success.
type ItemListResult struct {
	Result
	Items []*domain.Item
}

func (a *ItemActions) authorize(ctx context.Context, actorID domain.UserID, companyID domain.CompanyID, op authz.Operation) (authz.Verdict, error) {
	classes, err := a.resolver.Resolve(ctx, actorID, companyID)
	if err != nil {
		return authz.Verdict{}, err
	}
	return authz.AuthorizeItem(classes, op), nil
}

// List returns the company's catalog.
func (a *ItemActions) List(ctx context.Context, actorID domain.UserID, companyID domain.CompanyID) (*ItemListResult, error) {
	company, err := a.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return &ItemListResult{Result: notFound()}, nil
	}
	v, err := a.authorize(ctx, actorID, companyID, authz.OpList)
	if err != nil {
		return nil, err
	}
	if !v.Allowed {
		return &ItemListResult{Result: denied(companyID, v)}, nil
	}
	items, err := a.items.ListForCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	res := &ItemListResult{Items: items}
	res.Status = Success
	return res, nil
}

// View returns one item of the company's catalog.
func (a *ItemActions) View(ctx context.Context, actorID domain.UserID, companyID domain.CompanyID, itemID domain.ItemID) (*ItemResult, error) {
	item, err := a.loadOwned(ctx, companyID, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return &ItemResult{Result: notFound()}, nil
	}
	v, err := a.authorize(ctx, actorID, companyID, authz.OpView)
	if err != nil {
		return nil, err
	}
	if !v.Allowed {
		return &ItemResult{Result: denied(companyID, v)}, nil
	}
	res := &ItemResult{Item: item}
	res.Status = Success
	return res, nil
}

// Create adds an item to the company's catalog.
func (a *ItemActions) Create(ctx context.Context, actorID domain.UserID, companyID domain.CompanyID, fields ItemFields) (*ItemResult, error) {
	company, err := a.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return &ItemResult{Result: notFound()}, nil
	}
	v, err := a.authorize(ctx, actorID, companyID, authz.OpCreate)
	if err != nil {
		return nil, err
	}
	if !v.Allowed {
		return &ItemResult{Result: denied(companyID, v)}, nil
	}
	if verr := validateItemFields(fields); verr != nil {
		return &ItemResult{Result: validationFailed(verr, "Item failed to be created.")}, nil
	}
	item := &domain.Item{
		ID:        domain.NewItemID(uuid.New()),
		CompanyID: companyID,
		Name:      fields.Name,
		RefCode:   fields.RefCode,
		Price:     fields.Price,
		UnitSize:  fields.UnitSize,
	}
	err = a.tx.WithinTx(ctx, func(ctx context.Context) error {
		return a.items.Create(ctx, item)
	})
	if verr := domerrors.AsValidation(err); verr != nil {
		return &ItemResult{Result: validationFailed(verr, "Item failed to be created.")}, nil
	}
	if err != nil {
		return nil, err
	}
	res := &ItemResult{Item: item}
	res.Result = success("Item was successfully created.")
	res.Rerender = []Rerender{{Mode: RerenderAppend, Region: "items", NeedsListeners: true}}
	return res, nil
}

// Update rewrites an item's fields.
func (a *ItemActions) Update(ctx context.Context, actorID domain.UserID, companyID domain.CompanyID, itemID domain.ItemID, fields ItemFields) (*ItemResult, error) {
	item, err := a.loadOwned(ctx, companyID, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return &ItemResult{Result: notFound()}, nil
	}
	v, err := a.authorize(ctx, actorID, companyID, authz.OpUpdate)
	if err != nil {
		return nil, err
	}
	if !v.Allowed {
		return &ItemResult{Result: denied(companyID, v)}, nil
	}
	if verr := validateItemFields(fields); verr != nil {
		return &ItemResult{Result: validationFailed(verr, "Item failed to be updated.")}, nil
	}
	err = a.tx.WithinTx(ctx, func(ctx context.Context) error {
		current, err := a.items.GetByID(ctx, itemID)
		if err != nil {
			return err
		}
		if current == nil {
			return domerrors.ErrNotFound
		}
		current.Name = fields.Name
		current.RefCode = fields.RefCode
		current.Price = fields.Price
		current.UnitSize = fields.UnitSize
		item = current
		return a.items.Update(ctx, current)
	})
	if err == domerrors.ErrNotFound {
		return &ItemResult{Result: notFound()}, nil
	}
	if verr := domerrors.AsValidation(err); verr != nil {
		return &ItemResult{Result: validationFailed(verr, "Item failed to be updated.")}, nil
	}
	if err != nil {
		return nil, err
	}
	res := &ItemResult{Item: item}
	res.Result = success("Item was successfully updated.")
	res.Rerender = []Rerender{{Mode: RerenderReplace, Region: "item_" + item.ID.String()}}
	return res, nil
}

// Delete removes an item from the catalog.
func (a *ItemActions) Delete(ctx context.Context, actorID domain.UserID, companyID domain.CompanyID, itemID domain.ItemID) (*ItemResult, error) {
	item, err := a.loadOwned(ctx, companyID, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return &ItemResult{Result: notFound()}, nil
	}
	v, err := a.authorize(ctx, actorID, companyID, authz.OpDelete)
	if err != nil {
		return nil, err
	}
	if !v.Allowed {
		return &ItemResult{Result: denied(companyID, v)}, nil
	}
	err = a.tx.WithinTx(ctx, func(ctx context.Context) error {
		return a.items.Delete(ctx, itemID)
	})
	if err != nil {
		return nil, err
	}
	res := &ItemResult{}
	res.Result = success("Item was successfully destroyed.")
	res.Rerender = []Rerender{{Mode: RerenderReplace, Region: "items"}}
	return res, nil
}

// loadOwned returns the item only when it belongs to the company; an item
// reached through the wrong company reads as absent.
func (a *ItemActions) loadOwned(ctx context.Context, companyID domain.CompanyID, itemID domain.ItemID) (*domain.Item, error) {
	company, err := a.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, nil
	}
	item, err := a.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil || item.CompanyID != companyID {
		return nil, nil
	}
	return item, nil
}

func validateItemFields(f ItemFields) *domerrors.ValidationError {
	var verr *domerrors.ValidationError
	add := func(field, msg string) {
		if verr == nil {
			verr = &domerrors.ValidationError{}
		}
		verr.Add(field, msg)
	}
	if f.Name == "" {
		add("name", "can't be blank")
	}
	if f.Price <= 0 {
		add("price", "must be greater than 0")
	}
	if f.UnitSize == "" {
		add("unit_size", "can't be blank")
	}
	return verr
}
