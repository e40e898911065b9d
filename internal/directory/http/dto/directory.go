// Package dto provides data transfer objects for the directory API.
package dto

import (
	validation "github.com/jellydator/validation"

	"github.com/allisson/trustregistry/internal/directory/domain"
	customValidation "github.com/allisson/trustregistry/internal/validation"
)

// SetAddressesRequest carries the five component references.
type SetAddressesRequest struct {
	IdentifierRegistry string `json:"identifier_registry"`
	AccessControl      string `json:"access_control"`
	Recovery           string `json:"recovery"`
	Revocation         string `json:"revocation"`
	IssuerRegistry     string `json:"issuer_registry"`
}

// Validate checks reference lengths. Empty references are accepted.
func (r *SetAddressesRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.IdentifierRegistry, customValidation.Reference),
		validation.Field(&r.AccessControl, customValidation.Reference),
		validation.Field(&r.Recovery, customValidation.Reference),
		validation.Field(&r.Revocation, customValidation.Reference),
		validation.Field(&r.IssuerRegistry, customValidation.Reference),
	)
	return customValidation.WrapValidationError(err)
}

// ToDomain converts the request to domain addresses.
func (r *SetAddressesRequest) ToDomain() domain.Addresses {
	return domain.Addresses{
		IdentifierRegistry: r.IdentifierRegistry,
		AccessControl:      r.AccessControl,
		Recovery:           r.Recovery,
		Revocation:         r.Revocation,
		IssuerRegistry:     r.IssuerRegistry,
	}
}

// AddressesResponse represents the directory.
type AddressesResponse struct {
	IdentifierRegistry string `json:"identifier_registry"`
	AccessControl      string `json:"access_control"`
	Recovery           string `json:"recovery"`
	Revocation         string `json:"revocation"`
	IssuerRegistry     string `json:"issuer_registry"`
	UpdatedAt          int64  `json:"updated_at"`
}

// MapAddressesToResponse converts domain addresses to a response.
func MapAddressesToResponse(addresses *domain.Addresses) AddressesResponse {
	return AddressesResponse{
		IdentifierRegistry: addresses.IdentifierRegistry,
		AccessControl:      addresses.AccessControl,
		Recovery:           addresses.Recovery,
		Revocation:         addresses.Revocation,
		IssuerRegistry:     addresses.IssuerRegistry,
		UpdatedAt:          addresses.UpdatedAt,
	}
}
