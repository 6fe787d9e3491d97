package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ankurnehra/bodega/internal/application/actions"
	"github.com/ankurnehra/bodega/internal/domain"
	"github.com/ankurnehra/bodega/internal/infrastructure/http/middleware"
)

type OrdersHandler struct {
	orders   *actions.OrderActions
	validate *validator.Validate
	log      zerolog.Logger
}

func NewOrdersHandler(orders *actions.OrderActions, log zerolog.Logger) *OrdersHandler {
	return &OrdersHandler{orders: orders, validate: validator.New(), log: log}
}

// List serves the orders of the company in the route, to its own staff.
func (h *OrdersHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, companyID, ok := linkScope(w, r)
	if !ok {
		return
	}
	res, err := h.orders.List(r.Context(), userID, companyID)
	if err != nil {
		h.log.Error().Err(err).Msg("list orders failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	middleware.RecordAuthzDecision("order", "list", res.Status != actions.Denied)
	var payload map[string]interface{}
	if res.OK() {
		out := make([]map[string]interface{}, 0, len(res.Orders))
		for _, o := range res.Orders {
			out = append(out, orderJSON(o))
		}
		payload = map[string]interface{}{"orders": out}
	}
	writeResult(w, res.Result, http.StatusOK, payload)
}

// Place creates an order with the route company as supplier; the actor acts
// for the purchaser company named in the body.
func (h *OrdersHandler) Place(w http.ResponseWriter, r *http.Request) {
	userID, supplierID, ok := linkScope(w, r)
	if !ok {
		return
	}
	var body struct {
		PurchaserID  string `json:"purchaser_id" validate:"required,uuid"`
		InvoiceNo    string `json:"invoice_no" validate:"max=64"`
		Total        int    `json:"total"`
		Discount     int    `json:"discount"`
		DiscountType string `json:"discount_type" validate:"max=32"`
		Notes        string `json:"notes" validate:"max=1000"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	purchaserUUID, err := uuid.Parse(body.PurchaserID)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid purchaser id")
		return
	}
	res, err := h.orders.Place(r.Context(), userID, supplierID, domain.NewCompanyID(purchaserUUID), actions.OrderFields{
		InvoiceNo:    body.InvoiceNo,
		Total:        body.Total,
		Discount:     body.Discount,
		DiscountType: body.DiscountType,
		Notes:        body.Notes,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("place order failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	middleware.RecordAuthzDecision("order", "create", res.Status != actions.Denied)
	writeResult(w, res.Result, http.StatusCreated, orderPayload(res))
}

// Accept marks an order accepted by the route company, acting as supplier.
func (h *OrdersHandler) Accept(w http.ResponseWriter, r *http.Request) {
	userID, supplierID, ok := linkScope(w, r)
	if !ok {
		return
	}
	orderID, ok := pathUUID(r, "orderID")
	if !ok {
		writeErr(w, http.StatusBadRequest, "", "invalid order id")
		return
	}
	res, err := h.orders.Accept(r.Context(), userID, supplierID, domain.NewOrderID(orderID))
	if err != nil {
		h.log.Error().Err(err).Msg("accept order failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	middleware.RecordAuthzDecision("order", "update", res.Status != actions.Denied)
	writeResult(w, res.Result, http.StatusOK, orderPayload(res))
}

func orderPayload(res *actions.OrderResult) map[string]interface{} {
	if res.Order == nil {
		return nil
	}
	return map[string]interface{}{"order": orderJSON(res.Order)}
}

func orderJSON(o *domain.Order) map[string]interface{} {
	out := map[string]interface{}{
		"id":            o.ID.String(),
		"supplier_id":   o.SupplierID.String(),
		"purchaser_id":  o.PurchaserID.String(),
		"placed_by":     o.PlacedBy.String(),
		"invoice_no":    o.InvoiceNo,
		"total":         o.Total,
		"discount":      o.Discount,
		"discount_type": o.DiscountType,
		"notes":         o.Notes,
		"created_at":    o.CreatedAt,
	}
	if o.AcceptedBy != nil {
		out["accepted_by"] = o.AcceptedBy.String()
	}
	return out
}
