// Package dto provides data transfer objects for the revocation registry API.
package dto

import (
	validation "github.com/jellydator/validation"

	"github.com/allisson/trustregistry/internal/hash"
	"github.com/allisson/trustregistry/internal/revocation/domain"
	customValidation "github.com/allisson/trustregistry/internal/validation"
)

// AnchorCredentialRequest contains the parameters for anchoring a credential.
type AnchorCredentialRequest struct {
	Hash       string `json:"hash"`
	ContentRef string `json:"content_ref"`
}

// Validate checks if the anchor request is valid.
func (r *AnchorCredentialRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.Hash, validation.Required, customValidation.Hash32),
		validation.Field(&r.ContentRef, customValidation.Reference),
	)
	return customValidation.WrapValidationError(err)
}

// RevokeCredentialRequest carries the revocation reason. The reason is recorded
// in the event log only.
type RevokeCredentialRequest struct {
	Reason string `json:"reason"`
}

// Validate checks if the revoke request is valid.
func (r *RevokeCredentialRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.Reason, customValidation.Reference),
	)
	return customValidation.WrapValidationError(err)
}

// AnchorResponse represents a credential anchor in API responses. An unknown
// hash is reported with an empty issuer.
type AnchorResponse struct {
	Hash       hash.Hash `json:"hash"`
	Issuer     string    `json:"issuer"`
	ContentRef string    `json:"content_ref"`
	Revoked    bool      `json:"revoked"`
	AnchoredAt int64     `json:"anchored_at"`
}

// MapAnchorToResponse converts a credential anchor to a response.
func MapAnchorToResponse(anchor *domain.Anchor) AnchorResponse {
	return AnchorResponse{
		Hash:       anchor.Hash,
		Issuer:     anchor.Issuer.String(),
		ContentRef: anchor.ContentRef,
		Revoked:    anchor.Revoked,
		AnchoredAt: anchor.AnchoredAt,
	}
}
