// Package actions is the engine's only external-facing surface. Each
// use-case loads the referenced entities, resolves the actor's relationship
// classes, asks the permission engine for a verdict, filters field edits to
// the granted scope, and persists inside one transaction. Denials and
// not-founds come back as results, never as partial writes.
package actions

import (
	"github.com/ankurnehra/bodega/internal/application/authz"
	"github.com/ankurnehra/bodega/internal/domain"
	domerrors "github.com/ankurnehra/bodega/internal/domain/errors"
)

// Status classifies the outcome of a façade operation.
type Status uint8

const (
	Success Status = iota
	Denied
	NotFound
	ValidationFailed
)

// FlashKind selects the flash banner style on the resulting page.
type FlashKind string

const (
	FlashNotice FlashKind = "notice"
	FlashAlert  FlashKind = "alert"
)

// Flash is a human-readable message for the presentation layer.
type Flash struct {
	Kind    FlashKind `json:"kind"`
	Message string    `json:"message"`
}

// Redirect names where a denied actor should be sent. Target distinguishes
// "resource hidden" (item list) from "nothing relevant" (company page).
type Redirect struct {
	CompanyID domain.CompanyID
	Target    authz.RedirectTarget
}

// RerenderMode says whether new content replaces a region or is appended.
type RerenderMode string

const (
	RerenderReplace RerenderMode = "replace"
	RerenderAppend  RerenderMode = "append"
)

// Rerender instructs the client which page region to refresh after a
// cross-entity update. Content rendering itself is the caller's concern.
type Rerender struct {
	Mode   RerenderMode `json:"mode"`
	Region string       `json:"region"`
	// NeedsListeners marks appended content that carries a fresh form.
	NeedsListeners bool `json:"needsListeners,omitempty"`
}

// Result is the uniform outcome shape shared by all façade operations.
type Result struct {
	Status   Status
	Flash    Flash
	Redirect *Redirect
	// Errors carries field-keyed validation messages when Status is
	// ValidationFailed.
	Errors   map[string][]string
	Rerender []Rerender
}

// OK reports whether the operation succeeded.
func (r Result) OK() bool { return r.Status == Success }

func success(message string) Result {
	return Result{Status: Success, Flash: Flash{Kind: FlashNotice, Message: message}}
}

func denied(companyID domain.CompanyID, v authz.Verdict) Result {
	return Result{
		Status:   Denied,
		Redirect: &Redirect{CompanyID: companyID, Target: v.Redirect},
	}
}

func notFound() Result {
	return Result{Status: NotFound}
}

func validationFailed(v *domerrors.ValidationError, message string) Result {
	return Result{
		Status: ValidationFailed,
		Flash:  Flash{Kind: FlashAlert, Message: message},
		Errors: v.Fields,
	}
}
