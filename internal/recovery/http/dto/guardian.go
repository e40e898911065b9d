// Package dto provides data transfer objects for the recovery coordinator API.
package dto

import (
	validation "github.com/jellydator/validation"

	"github.com/allisson/trustregistry/internal/principal"
	"github.com/allisson/trustregistry/internal/recovery/domain"
	customValidation "github.com/allisson/trustregistry/internal/validation"
)

// SetGuardiansRequest replaces the guardian set of the sender. Count,
// threshold and distinctness are enforced by the use case.
type SetGuardiansRequest struct {
	Guardians []string `json:"guardians"`
	Threshold int      `json:"threshold"`
}

// Validate checks element bounds.
func (r *SetGuardiansRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.Guardians, customValidation.EachPrincipal),
	)
	return customValidation.WrapValidationError(err)
}

// GuardianPrincipals converts the guardian list.
func (r *SetGuardiansRequest) GuardianPrincipals() []principal.Principal {
	guardians := make([]principal.Principal, len(r.Guardians))
	for i, guardian := range r.Guardians {
		guardians[i] = principal.Principal(guardian)
	}
	return guardians
}

// ExecuteRecoveryRequest names the identifier to recover and its new controller.
type ExecuteRecoveryRequest struct {
	ID            string `json:"id"`
	NewController string `json:"new_controller"`
}

// Validate checks if the execute request is valid.
func (r *ExecuteRecoveryRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.ID, validation.Required, customValidation.Reference),
		validation.Field(&r.NewController, validation.Required, customValidation.NotBlank, customValidation.Principal),
	)
	return customValidation.WrapValidationError(err)
}

// GuardianSetResponse represents the recovery configuration of an owner.
type GuardianSetResponse struct {
	Owner          string   `json:"owner"`
	Guardians      []string `json:"guardians"`
	Threshold      int      `json:"threshold"`
	Initialized    bool     `json:"initialized"`
	Epoch          int64    `json:"epoch"`
	ApprovalsCount int      `json:"approvals_count"`
	UpdatedAt      int64    `json:"updated_at"`
}

// ApprovalResponse reports whether a guardian approved in the current epoch.
type ApprovalResponse struct {
	Owner       string `json:"owner"`
	Guardian    string `json:"guardian"`
	HasApproved bool   `json:"has_approved"`
}

// MapGuardianSetToResponse converts a guardian set to a response.
func MapGuardianSetToResponse(set *domain.GuardianSet) GuardianSetResponse {
	guardians := make([]string, 0, len(set.Guardians))
	for _, guardian := range set.Guardians {
		guardians = append(guardians, guardian.String())
	}
	return GuardianSetResponse{
		Owner:          set.Owner.String(),
		Guardians:      guardians,
		Threshold:      set.Threshold,
		Initialized:    set.Initialized(),
		Epoch:          set.Epoch,
		ApprovalsCount: set.ApprovalsCount,
		UpdatedAt:      set.UpdatedAt,
	}
}
