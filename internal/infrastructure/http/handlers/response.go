package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ankurnehra/bodega/internal/application/actions"
	"github.com/ankurnehra/bodega/internal/application/authz"
)

// writeErr sends JSON { "error": message, "code": errCode }. If errCode is
// empty, a default is derived from the HTTP status.
func writeErr(w http.ResponseWriter, code int, errCode string, message string) {
	if errCode == "" {
		errCode = defaultErrCode(code)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message, "code": errCode})
}

func defaultErrCode(httpCode int) string {
	switch httpCode {
	case http.StatusBadRequest:
		return ErrCodeInvalidRequest
	case http.StatusUnauthorized:
		return ErrCodeUnauthorized
	case http.StatusForbidden:
		return ErrCodeForbidden
	case http.StatusNotFound:
		return ErrCodeNotFound
	case http.StatusConflict:
		return ErrCodeConflict
	case http.StatusUnprocessableEntity:
		return ErrCodeValidationFailed
	default:
		return ErrCodeInternal
	}
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// redirectPath maps a denial redirect to the page the client should load.
func redirectPath(rd *actions.Redirect) string {
	if rd == nil {
		return ""
	}
	base := "/companies/" + rd.CompanyID.String()
	if rd.Target == authz.RedirectItemList {
		return base + "/items"
	}
	return base
}

// writeResult translates a façade outcome into the HTTP response. payload
// carries the entity fields on success; successCode is 200 or 201.
func writeResult(w http.ResponseWriter, res actions.Result, successCode int, payload map[string]interface{}) {
	switch res.Status {
	case actions.NotFound:
		writeErr(w, http.StatusNotFound, ErrCodeNotFound, "not found")
	case actions.Denied:
		writeJSON(w, http.StatusForbidden, map[string]interface{}{
			"code": ErrCodeForbidden,
			"flash": actions.Flash{
				Kind:    actions.FlashAlert,
				Message: "You are not authorized to perform this action.",
			},
			"redirect": redirectPath(res.Redirect),
		})
	case actions.ValidationFailed:
		writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"code":   ErrCodeValidationFailed,
			"flash":  res.Flash,
			"errors": res.Errors,
		})
	default:
		body := map[string]interface{}{}
		if res.Flash.Message != "" {
			body["flash"] = res.Flash
		}
		if len(res.Rerender) > 0 {
			body["rerender"] = res.Rerender
		}
		for k, v := range payload {
			body[k] = v
		}
		writeJSON(w, successCode, body)
	}
}
