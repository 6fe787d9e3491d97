package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ankurnehra/bodega/internal/application/actions"
	"github.com/ankurnehra/bodega/internal/domain"
	domerrors "github.com/ankurnehra/bodega/internal/domain/errors"
	"github.com/ankurnehra/bodega/internal/infrastructure/http/middleware"
)

type SupplyLinksHandler struct {
	links    *actions.SupplyLinkActions
	validate *validator.Validate
	log      zerolog.Logger
}

func NewSupplyLinksHandler(links *actions.SupplyLinkActions, log zerolog.Logger) *SupplyLinksHandler {
	return &SupplyLinksHandler{links: links, validate: validator.New(), log: log}
}

func (h *SupplyLinksHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, companyID, ok := linkScope(w, r)
	if !ok {
		return
	}
	var body struct {
		SupplierID           string `json:"supplier_id" validate:"required,uuid"`
		PurchaserID          string `json:"purchaser_id" validate:"required,uuid"`
		PendingSupplierConf  *bool  `json:"pending_supplier_conf"`
		PendingPurchaserConf *bool  `json:"pending_purchaser_conf"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	supplierID, _ := parseCompanyID(body.SupplierID)
	purchaserID, _ := parseCompanyID(body.PurchaserID)
	res, err := h.links.Create(r.Context(), userID, companyID, supplierID, purchaserID, actions.LinkFlagEdits{
		PendingSupplierConf:  body.PendingSupplierConf,
		PendingPurchaserConf: body.PendingPurchaserConf,
	})
	if err == domerrors.ErrSelfSupply {
		writeErr(w, http.StatusUnprocessableEntity, ErrCodeValidationFailed, err.Error())
		return
	}
	if err != nil {
		h.log.Error().Err(err).Msg("create supply link failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	middleware.RecordAuthzDecision("supply_link", "create", res.Status != actions.Denied)
	writeResult(w, res.Result, http.StatusCreated, linkPayload(res))
}

func (h *SupplyLinksHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, companyID, ok := linkScope(w, r)
	if !ok {
		return
	}
	linkID, ok := pathUUID(r, "linkID")
	if !ok {
		writeErr(w, http.StatusBadRequest, "", "invalid link id")
		return
	}
	var body struct {
		PendingSupplierConf  *bool `json:"pending_supplier_conf"`
		PendingPurchaserConf *bool `json:"pending_purchaser_conf"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	res, err := h.links.Update(r.Context(), userID, companyID, domain.NewSupplyLinkID(linkID), actions.LinkFlagEdits{
		PendingSupplierConf:  body.PendingSupplierConf,
		PendingPurchaserConf: body.PendingPurchaserConf,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("update supply link failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	middleware.RecordAuthzDecision("supply_link", "update", res.Status != actions.Denied)
	writeResult(w, res.Result, http.StatusOK, linkPayload(res))
}

func (h *SupplyLinksHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, companyID, ok := linkScope(w, r)
	if !ok {
		return
	}
	linkID, ok := pathUUID(r, "linkID")
	if !ok {
		writeErr(w, http.StatusBadRequest, "", "invalid link id")
		return
	}
	res, err := h.links.Delete(r.Context(), userID, companyID, domain.NewSupplyLinkID(linkID))
	if err != nil {
		h.log.Error().Err(err).Msg("delete supply link failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	middleware.RecordAuthzDecision("supply_link", "delete", res.Status != actions.Denied)
	writeResult(w, res.Result, http.StatusOK, nil)
}

func linkScope(w http.ResponseWriter, r *http.Request) (domain.UserID, domain.CompanyID, bool) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeErr(w, http.StatusUnauthorized, "", "authentication required")
		return domain.UserID{}, domain.CompanyID{}, false
	}
	companyID, ok := pathUUID(r, "companyID")
	if !ok {
		writeErr(w, http.StatusBadRequest, "", "invalid company id")
		return domain.UserID{}, domain.CompanyID{}, false
	}
	return userID, domain.NewCompanyID(companyID), true
}

func parseCompanyID(s string) (domain.CompanyID, bool) {
	id, err := uuid.Parse(s)
	if err != nil {
		return domain.CompanyID{}, false
	}
	return domain.NewCompanyID(id), true
}

func linkPayload(res *actions.LinkResult) map[string]interface{} {
	if res.Link == nil {
		return nil
	}
	return map[string]interface{}{
		"supply_link": map[string]interface{}{
			"id":                     res.Link.ID.String(),
			"supplier_id":            res.Link.SupplierID.String(),
			"purchaser_id":           res.Link.PurchaserID.String(),
			"pending_supplier_conf":  res.Link.PendingSupplierConf,
			"pending_purchaser_conf": res.Link.PendingPurchaserConf,
			"active":                 res.Link.Active(),
		},
	}
}
