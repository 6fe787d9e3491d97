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

type CompaniesHandler struct {
	companies *actions.CompanyActions
	validate  *validator.Validate
	log       zerolog.Logger
}

func NewCompaniesHandler(companies *actions.CompanyActions, log zerolog.Logger) *CompaniesHandler {
	return &CompaniesHandler{companies: companies, validate: validator.New(), log: log}
}

func (h *CompaniesHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeErr(w, http.StatusUnauthorized, "", "authentication required")
		return
	}
	var body struct {
		Name    string `json:"name" validate:"max=120"`
		Code    string `json:"code" validate:"max=32"`
		StrAddr string `json:"str_addr" validate:"max=200"`
		City    string `json:"city" validate:"max=100"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	res, err := h.companies.Create(r.Context(), userID, actions.CompanyFields{
		Name:    SanitizeName(body.Name),
		Code:    body.Code,
		StrAddr: body.StrAddr,
		City:    body.City,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("create company failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	writeResult(w, res.Result, http.StatusCreated, companyPayload(res))
}

func (h *CompaniesHandler) Show(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeErr(w, http.StatusUnauthorized, "", "authentication required")
		return
	}
	id, ok := pathUUID(r, "companyID")
	if !ok {
		writeErr(w, http.StatusBadRequest, "", "invalid company id")
		return
	}
	res, err := h.companies.View(r.Context(), userID, domain.NewCompanyID(id))
	if err != nil {
		h.log.Error().Err(err).Msg("view company failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	writeResult(w, res.Result, http.StatusOK, companyPayload(res))
}

func companyPayload(res *actions.CompanyResult) map[string]interface{} {
	if res.Company == nil {
		return nil
	}
	classes := make([]string, 0, 2)
	for _, c := range res.Classes.Classes() {
		classes = append(classes, c.String())
	}
	return map[string]interface{}{
		"company": map[string]interface{}{
			"id":       res.Company.ID.String(),
			"name":     res.Company.Name,
			"code":     res.Company.Code,
			"str_addr": res.Company.StrAddr,
			"city":     res.Company.City,
		},
		"viewer_classes": classes,
	}
}
