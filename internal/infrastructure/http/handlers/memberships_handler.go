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

type MembershipsHandler struct {
	memberships *actions.MembershipActions
	validate    *validator.Validate
	log         zerolog.Logger
}

func NewMembershipsHandler(memberships *actions.MembershipActions, log zerolog.Logger) *MembershipsHandler {
	return &MembershipsHandler{memberships: memberships, validate: validator.New(), log: log}
}

func (h *MembershipsHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, companyID, ok := linkScope(w, r)
	if !ok {
		return
	}
	var body struct {
		UserID string `json:"user_id" validate:"required,uuid"`
		Admin  bool   `json:"admin"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	subjectUUID, err := uuid.Parse(body.UserID)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid user id")
		return
	}
	res, err := h.memberships.Create(r.Context(), userID, companyID, domain.NewUserID(subjectUUID), body.Admin)
	if err != nil {
		h.log.Error().Err(err).Msg("create membership failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	middleware.RecordAuthzDecision("membership", "create", res.Status != actions.Denied)
	writeResult(w, res.Result, http.StatusCreated, membershipPayload(res))
}

func (h *MembershipsHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, companyID, ok := linkScope(w, r)
	if !ok {
		return
	}
	membershipID, ok := pathUUID(r, "membershipID")
	if !ok {
		writeErr(w, http.StatusBadRequest, "", "invalid membership id")
		return
	}
	var body struct {
		PendingAdminConf  *bool `json:"pending_admin_conf"`
		PendingMemberConf *bool `json:"pending_member_conf"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	res, err := h.memberships.UpdateConfirmation(r.Context(), userID, companyID, domain.NewMembershipID(membershipID), actions.MembershipFlagEdits{
		PendingAdminConf:  body.PendingAdminConf,
		PendingMemberConf: body.PendingMemberConf,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("update membership failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	middleware.RecordAuthzDecision("membership", "update", res.Status != actions.Denied)
	writeResult(w, res.Result, http.StatusOK, membershipPayload(res))
}

func (h *MembershipsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, companyID, ok := linkScope(w, r)
	if !ok {
		return
	}
	membershipID, ok := pathUUID(r, "membershipID")
	if !ok {
		writeErr(w, http.StatusBadRequest, "", "invalid membership id")
		return
	}
	res, err := h.memberships.Delete(r.Context(), userID, companyID, domain.NewMembershipID(membershipID))
	if err != nil {
		h.log.Error().Err(err).Msg("delete membership failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	middleware.RecordAuthzDecision("membership", "delete", res.Status != actions.Denied)
	writeResult(w, res.Result, http.StatusOK, nil)
}

func membershipPayload(res *actions.MembershipResult) map[string]interface{} {
	if res.Membership == nil {
		return nil
	}
	m := res.Membership
	return map[string]interface{}{
		"membership": map[string]interface{}{
			"id":                  m.ID.String(),
			"user_id":             m.UserID.String(),
			"company_id":          m.CompanyID.String(),
			"admin":               m.Admin,
			"pending_admin_conf":  m.PendingAdminConf,
			"pending_member_conf": m.PendingMemberConf,
			"active":              m.Active(),
		},
	}
}
