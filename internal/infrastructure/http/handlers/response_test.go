package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ankurnehra/bodega/internal/application/actions"
	"github.com/ankurnehra/bodega/internal/application/authz"
	"github.com/ankurnehra/bodega/internal/domain"
	"github.com/google/uuid"
)

func TestWriteResultSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	res := actions.Result{
		Status: actions.Success,
		Flash:  actions.Flash{Kind: actions.FlashNotice, Message: "Item was successfully created."},
		Rerender: []actions.Rerender{
			{Mode: actions.RerenderAppend, Region: "items", NeedsListeners: true},
		},
	}
	writeResult(rec, res, http.StatusCreated, map[string]interface{}{"item": map[string]interface{}{"name": "Aioli"}})

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	var body struct {
		Flash    actions.Flash      `json:"flash"`
		Rerender []actions.Rerender `json:"rerender"`
		Item     map[string]string  `json:"item"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Flash.Kind != actions.FlashNotice {
		t.Errorf("flash kind = %q, want notice", body.Flash.Kind)
	}
	if len(body.Rerender) != 1 || body.Rerender[0].Region != "items" || !body.Rerender[0].NeedsListeners {
		t.Errorf("rerender = %+v", body.Rerender)
	}
	if body.Item["name"] != "Aioli" {
		t.Errorf("payload lost: %+v", body.Item)
	}
}

func TestWriteResultDeniedCarriesRedirect(t *testing.T) {
	companyID := domain.NewCompanyID(uuid.New())
	cases := []struct {
		target authz.RedirectTarget
		suffix string
	}{
		{authz.RedirectCompanyPage, ""},
		{authz.RedirectItemList, "/items"},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		res := actions.Result{
			Status:   actions.Denied,
			Redirect: &actions.Redirect{CompanyID: companyID, Target: tc.target},
		}
		writeResult(rec, res, http.StatusOK, nil)

		if rec.Code != http.StatusForbidden {
			t.Fatalf("status = %d, want 403", rec.Code)
		}
		var body struct {
			Code     string        `json:"code"`
			Flash    actions.Flash `json:"flash"`
			Redirect string        `json:"redirect"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatal(err)
		}
		if body.Code != ErrCodeForbidden {
			t.Errorf("code = %q", body.Code)
		}
		if body.Flash.Kind != actions.FlashAlert {
			t.Errorf("denial flash kind = %q, want alert", body.Flash.Kind)
		}
		want := "/companies/" + companyID.String() + tc.suffix
		if body.Redirect != want {
			t.Errorf("redirect = %q, want %q", body.Redirect, want)
		}
	}
}

func TestWriteResultValidationFailed(t *testing.T) {
	rec := httptest.NewRecorder()
	res := actions.Result{
		Status: actions.ValidationFailed,
		Flash:  actions.Flash{Kind: actions.FlashAlert, Message: "Item failed to be created."},
		Errors: map[string][]string{"name": {"can't be blank"}},
	}
	writeResult(rec, res, http.StatusCreated, nil)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	var body struct {
		Errors map[string][]string `json:"errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if len(body.Errors["name"]) != 1 {
		t.Errorf("errors = %+v", body.Errors)
	}
}

func TestWriteResultNotFound(t *testing.T) {
	rec := httptest.NewRecorder()
	writeResult(rec, actions.Result{Status: actions.NotFound}, http.StatusOK, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
