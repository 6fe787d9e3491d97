package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/ankurnehra/bodega/internal/application/actions"
	"github.com/ankurnehra/bodega/internal/domain"
	"github.com/ankurnehra/bodega/internal/infrastructure/http/middleware"
)

type ItemsHandler struct {
	items    *actions.ItemActions
	validate *validator.Validate
	log      zerolog.Logger
}

func NewItemsHandler(items *actions.ItemActions, log zerolog.Logger) *ItemsHandler {
	return &ItemsHandler{items: items, validate: validator.New(), log: log}
}

type itemBody struct {
	Name     string `json:"name" validate:"max=120"`
	RefCode  string `json:"ref_code" validate:"max=64"`
	Price    int    `json:"price"`
	UnitSize string `json:"unit_size" validate:"max=64"`
}

func (b itemBody) fields() actions.ItemFields {
	return actions.ItemFields{Name: b.Name, RefCode: b.RefCode, Price: b.Price, UnitSize: b.UnitSize}
}

func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, companyID, ok := h.scope(w, r)
	if !ok {
		return
	}
	res, err := h.items.List(r.Context(), userID, companyID)
	if err != nil {
		h.log.Error().Err(err).Msg("list items failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	middleware.RecordAuthzDecision("item", "list", res.Status != actions.Denied)
	var payload map[string]interface{}
	if res.OK() {
		out := make([]map[string]interface{}, 0, len(res.Items))
		for _, i := range res.Items {
			out = append(out, itemJSON(i))
		}
		payload = map[string]interface{}{"items": out}
	}
	writeResult(w, res.Result, http.StatusOK, payload)
}

func (h *ItemsHandler) Show(w http.ResponseWriter, r *http.Request) {
	userID, companyID, ok := h.scope(w, r)
	if !ok {
		return
	}
	itemID, ok := pathUUID(r, "itemID")
	if !ok {
		writeErr(w, http.StatusBadRequest, "", "invalid item id")
		return
	}
	res, err := h.items.View(r.Context(), userID, companyID, domain.NewItemID(itemID))
	if err != nil {
		h.log.Error().Err(err).Msg("view item failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	middleware.RecordAuthzDecision("item", "view", res.Status != actions.Denied)
	writeResult(w, res.Result, http.StatusOK, singleItemPayload(res))
}

func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, companyID, ok := h.scope(w, r)
	if !ok {
		return
	}
	var body itemBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	res, err := h.items.Create(r.Context(), userID, companyID, body.fields())
	if err != nil {
		h.log.Error().Err(err).Msg("create item failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	middleware.RecordAuthzDecision("item", "create", res.Status != actions.Denied)
	writeResult(w, res.Result, http.StatusCreated, singleItemPayload(res))
}

func (h *ItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, companyID, ok := h.scope(w, r)
	if !ok {
		return
	}
	itemID, ok := pathUUID(r, "itemID")
	if !ok {
		writeErr(w, http.StatusBadRequest, "", "invalid item id")
		return
	}
	var body itemBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	res, err := h.items.Update(r.Context(), userID, companyID, domain.NewItemID(itemID), body.fields())
	if err != nil {
		h.log.Error().Err(err).Msg("update item failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	middleware.RecordAuthzDecision("item", "update", res.Status != actions.Denied)
	writeResult(w, res.Result, http.StatusOK, singleItemPayload(res))
}

func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, companyID, ok := h.scope(w, r)
	if !ok {
		return
	}
	itemID, ok := pathUUID(r, "itemID")
	if !ok {
		writeErr(w, http.StatusBadRequest, "", "invalid item id")
		return
	}
	res, err := h.items.Delete(r.Context(), userID, companyID, domain.NewItemID(itemID))
	if err != nil {
		h.log.Error().Err(err).Msg("delete item failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	middleware.RecordAuthzDecision("item", "delete", res.Status != actions.Denied)
	writeResult(w, res.Result, http.StatusOK, nil)
}

func (h *ItemsHandler) scope(w http.ResponseWriter, r *http.Request) (domain.UserID, domain.CompanyID, bool) {
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

func singleItemPayload(res *actions.ItemResult) map[string]interface{} {
	if res.Item == nil {
		return nil
	}
	return map[string]interface{}{"item": itemJSON(res.Item)}
}

func itemJSON(i *domain.Item) map[string]interface{} {
	return map[string]interface{}{
		"id":         i.ID.String(),
		"company_id": i.CompanyID.String(),
		"name":       i.Name,
		"ref_code":   i.RefCode,
		"price":      i.Price,
		"unit_size":  i.UnitSize,
	}
}
