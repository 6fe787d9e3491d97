package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/ankurnehra/bodega/internal/application/auth"
	domerrors "github.com/ankurnehra/bodega/internal/domain/errors"
	"github.com/ankurnehra/bodega/internal/infrastructure/http/middleware"
)

type AuthHandler struct {
	register *auth.Register
	login    *auth.Login
	validate *validator.Validate
	log      zerolog.Logger
}

func NewAuthHandler(register *auth.Register, login *auth.Login, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		register: register,
		login:    login,
		validate: validator.New(),
		log:      log,
	}
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name     string `json:"name" validate:"max=120"`
		Email    string `json:"email" validate:"required,email,max=254"`
		Password string `json:"password" validate:"required,min=8,max=128"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	email := SanitizeEmail(body.Email)
	password := SanitizePassword(body.Password)
	if email == "" || password == "" {
		writeErr(w, http.StatusBadRequest, "", "invalid email or password length")
		return
	}
	result, err := h.register.Execute(r.Context(), auth.RegisterInput{
		Name:     SanitizeName(body.Name),
		Email:    email,
		Password: password,
	})
	if err != nil {
		middleware.RecordAuthAttempt("signup", false)
		if err == domerrors.ErrUserExists {
			writeErr(w, http.StatusConflict, ErrCodeConflict, err.Error())
			return
		}
		if verr := domerrors.AsValidation(err); verr != nil {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
				"code":   ErrCodeValidationFailed,
				"errors": verr.Fields,
			})
			return
		}
		if err == domerrors.ErrInvalidCredentials {
			writeErr(w, http.StatusBadRequest, "", "invalid email")
			return
		}
		h.log.Error().Err(err).Msg("register failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	middleware.RecordAuthAttempt("signup", true)
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id":         result.User.ID.String(),
		"name":       result.User.Name,
		"email":      result.User.Email,
		"created_at": result.User.CreatedAt,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email" validate:"required,email,max=254"`
		Password string `json:"password" validate:"required,max=128"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	result, err := h.login.Execute(r.Context(), auth.LoginInput{
		Email:    SanitizeEmail(body.Email),
		Password: SanitizePassword(body.Password),
	})
	if err != nil {
		middleware.RecordAuthAttempt("login", false)
		if err == domerrors.ErrInvalidCredentials {
			writeErr(w, http.StatusUnauthorized, ErrCodeInvalidCredentials, err.Error())
			return
		}
		h.log.Error().Err(err).Msg("login failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	middleware.RecordAuthAttempt("login", true)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"access_token": result.AccessToken,
		"token_type":   "Bearer",
		"expires_in":   result.ExpiresIn,
		"user": map[string]interface{}{
			"id":    result.User.ID.String(),
			"name":  result.User.Name,
			"email": result.User.Email,
		},
	})
}
