// Package dto provides data transfer objects for the registry ownership API.
package dto

import (
	validation "github.com/jellydator/validation"

	"github.com/allisson/trustregistry/internal/ownership/domain"
	customValidation "github.com/allisson/trustregistry/internal/validation"
)

// TransferOwnershipRequest contains the new owner of a registry.
type TransferOwnershipRequest struct {
	NewOwner string `json:"new_owner"`
}

// Validate checks if the transfer request is valid.
func (r *TransferOwnershipRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.NewOwner,
			validation.Required,
			customValidation.NotBlank,
			customValidation.Principal,
		),
	)
	return customValidation.WrapValidationError(err)
}

// OwnerResponse represents the owner of a registry.
type OwnerResponse struct {
	Registry string `json:"registry"`
	Owner    string `json:"owner"`
}

// MapOwnershipToResponse converts an ownership record to a response.
func MapOwnershipToResponse(ownership *domain.Ownership) OwnerResponse {
	return OwnerResponse{
		Registry: string(ownership.Registry),
		Owner:    ownership.Owner.String(),
	}
}
