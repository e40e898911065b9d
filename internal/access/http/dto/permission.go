// Package dto provides data transfer objects for the access control API.
package dto

import (
	validation "github.com/jellydator/validation"

	"github.com/allisson/trustregistry/internal/access/domain"
	"github.com/allisson/trustregistry/internal/principal"
	customValidation "github.com/allisson/trustregistry/internal/validation"
)

// Grantees and attributes are deliberately not required: empty labels and zero
// grantees are valid permission keys. Only lengths are bounded.

// GrantRequest contains the parameters for a single grant.
type GrantRequest struct {
	Grantee    string `json:"grantee"`
	Attribute  string `json:"attribute"`
	Expiry     int64  `json:"expiry"`
	ConsentRef string `json:"consent_ref"`
}

// Validate checks if the grant request is valid.
func (r *GrantRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.Grantee, customValidation.Principal),
		validation.Field(&r.Attribute, customValidation.Label),
		validation.Field(&r.Expiry, validation.Min(int64(0))),
		validation.Field(&r.ConsentRef, customValidation.Reference),
	)
	return customValidation.WrapValidationError(err)
}

// ToDomain converts the request to a domain grant.
func (r *GrantRequest) ToDomain() domain.Grant {
	return domain.Grant{
		Grantee:    principal.Principal(r.Grantee),
		Attribute:  r.Attribute,
		Expiry:     r.Expiry,
		ConsentRef: r.ConsentRef,
	}
}

// GrantBatchRequest carries parallel arrays, one element per grant.
type GrantBatchRequest struct {
	Grantees    []string `json:"grantees"`
	Attributes  []string `json:"attributes"`
	Expiries    []int64  `json:"expiries"`
	ConsentRefs []string `json:"consent_refs"`
}

// Validate checks element bounds. Array lengths are checked by the use case.
func (r *GrantBatchRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.Grantees, customValidation.EachPrincipal),
		validation.Field(&r.Attributes, validation.Each(customValidation.Label)),
		validation.Field(&r.Expiries, validation.Each(validation.Min(int64(0)))),
		validation.Field(&r.ConsentRefs, validation.Each(customValidation.Reference)),
	)
	return customValidation.WrapValidationError(err)
}

// RevokeRequest contains the key of a single revocation.
type RevokeRequest struct {
	Grantee   string `json:"grantee"`
	Attribute string `json:"attribute"`
}

// Validate checks if the revoke request is valid.
func (r *RevokeRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.Grantee, customValidation.Principal),
		validation.Field(&r.Attribute, customValidation.Label),
	)
	return customValidation.WrapValidationError(err)
}

// ToDomain converts the request to a domain revocation.
func (r *RevokeRequest) ToDomain() domain.Revocation {
	return domain.Revocation{Grantee: principal.Principal(r.Grantee), Attribute: r.Attribute}
}

// RevokeBatchRequest carries parallel arrays, one element per revocation.
type RevokeBatchRequest struct {
	Grantees   []string `json:"grantees"`
	Attributes []string `json:"attributes"`
}

// Validate checks element bounds. Array lengths are checked by the use case.
func (r *RevokeBatchRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.Grantees, customValidation.EachPrincipal),
		validation.Field(&r.Attributes, validation.Each(customValidation.Label)),
	)
	return customValidation.WrapValidationError(err)
}

// Principals converts raw strings to principals.
func Principals(values []string) []principal.Principal {
	principals := make([]principal.Principal, len(values))
	for i, value := range values {
		principals[i] = principal.Principal(value)
	}
	return principals
}

// PermissionResponse represents a permission in API responses.
type PermissionResponse struct {
	Subject    string `json:"subject"`
	Grantee    string `json:"grantee"`
	Attribute  string `json:"attribute"`
	Granted    bool   `json:"granted"`
	Expiry     int64  `json:"expiry"`
	ConsentRef string `json:"consent_ref"`
	UpdatedAt  int64  `json:"updated_at"`
}

// PermissionListResponse wraps the permissions written by a batch grant.
type PermissionListResponse struct {
	Data []PermissionResponse `json:"data"`
}

// AccessCheckResponse is the result of an access check.
type AccessCheckResponse struct {
	Subject   string `json:"subject"`
	Grantee   string `json:"grantee"`
	Attribute string `json:"attribute"`
	HasAccess bool   `json:"has_access"`
}

// MapPermissionToResponse converts a permission to a response.
func MapPermissionToResponse(permission *domain.Permission) PermissionResponse {
	return PermissionResponse{
		Subject:    permission.Subject.String(),
		Grantee:    permission.Grantee.String(),
		Attribute:  permission.Attribute,
		Granted:    permission.Granted,
		Expiry:     permission.Expiry,
		ConsentRef: permission.ConsentRef,
		UpdatedAt:  permission.UpdatedAt,
	}
}

// MapPermissionsToListResponse converts permissions to a list response.
func MapPermissionsToListResponse(permissions []*domain.Permission) PermissionListResponse {
	data := make([]PermissionResponse, 0, len(permissions))
	for _, permission := range permissions {
		data = append(data, MapPermissionToResponse(permission))
	}
	return PermissionListResponse{Data: data}
}
