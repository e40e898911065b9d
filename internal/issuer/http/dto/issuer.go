// Package dto provides data transfer objects for the issuer trust list API.
package dto

import (
	validation "github.com/jellydator/validation"

	"github.com/allisson/trustregistry/internal/issuer/domain"
	customValidation "github.com/allisson/trustregistry/internal/validation"
)

// AddIssuerRequest contains the metadata reference of an issuer.
// The issuer is taken from the URL path.
type AddIssuerRequest struct {
	MetadataRef string `json:"metadata_ref"`
}

// Validate checks if the add issuer request is valid.
func (r *AddIssuerRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.MetadataRef, customValidation.Reference),
	)
	return customValidation.WrapValidationError(err)
}

// IssuerResponse represents an issuer trust list entry.
type IssuerResponse struct {
	Issuer      string `json:"issuer"`
	Trusted     bool   `json:"trusted"`
	MetadataRef string `json:"metadata_ref"`
	UpdatedAt   int64  `json:"updated_at"`
}

// MapIssuerToResponse converts an issuer entry to a response.
func MapIssuerToResponse(entry *domain.Issuer) IssuerResponse {
	return IssuerResponse{
		Issuer:      entry.Issuer.String(),
		Trusted:     entry.Trusted,
		MetadataRef: entry.MetadataRef,
		UpdatedAt:   entry.UpdatedAt,
	}
}
