package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/ankurnehra/bodega/internal/application/ports"
	"github.com/ankurnehra/bodega/internal/infrastructure/http/middleware"
)

// UsersHandler serves the signed-in user's profile and memberships.
type UsersHandler struct {
	users       ports.UserRepository
	memberships ports.MembershipRepository
	validate    *validator.Validate
	log         zerolog.Logger
}

func NewUsersHandler(users ports.UserRepository, memberships ports.MembershipRepository, log zerolog.Logger) *UsersHandler {
	return &UsersHandler{users: users, memberships: memberships, validate: validator.New(), log: log}
}

func (h *UsersHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeErr(w, http.StatusUnauthorized, "", "authentication required")
		return
	}
	user, err := h.users.GetByID(r.Context(), userID)
	if err != nil {
		h.log.Error().Err(err).Msg("load user failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	if user == nil {
		writeErr(w, http.StatusNotFound, "", "user not found")
		return
	}
	memberships, err := h.memberships.ListForUser(r.Context(), userID)
	if err != nil {
		h.log.Error().Err(err).Msg("list memberships failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	ms := make([]map[string]interface{}, 0, len(memberships))
	for _, m := range memberships {
		ms = append(ms, map[string]interface{}{
			"id":                  m.ID.String(),
			"company_id":          m.CompanyID.String(),
			"admin":               m.Admin,
			"pending_admin_conf":  m.PendingAdminConf,
			"pending_member_conf": m.PendingMemberConf,
			"active":              m.Active(),
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"id":          user.ID.String(),
		"name":        user.Name,
		"email":       user.Email,
		"memberships": ms,
	})
}

func (h *UsersHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeErr(w, http.StatusUnauthorized, "", "authentication required")
		return
	}
	var body struct {
		Name string `json:"name" validate:"required,max=120"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	name := SanitizeName(body.Name)
	if name == "" {
		writeErr(w, http.StatusBadRequest, "", "invalid name")
		return
	}
	if err := h.users.UpdateName(r.Context(), userID, name); err != nil {
		h.log.Error().Err(err).Msg("update name failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"id":   userID.String(),
		"name": name,
	})
}
