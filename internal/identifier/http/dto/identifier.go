// Package dto provides data transfer objects for the identifier registry API.
package dto

import (
	validation "github.com/jellydator/validation"

	"github.com/allisson/trustregistry/internal/hash"
	"github.com/allisson/trustregistry/internal/identifier/domain"
	customValidation "github.com/allisson/trustregistry/internal/validation"
)

// RegisterRequest contains the parameters for registering or updating an identifier.
type RegisterRequest struct {
	ID          string `json:"id"`
	DocumentRef string `json:"document_ref"`
	PublicKey   string `json:"public_key"`
}

// Validate checks if the register request is valid.
func (r *RegisterRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.ID, validation.Required, customValidation.NotBlank, customValidation.Reference),
		validation.Field(&r.DocumentRef, customValidation.Reference),
		validation.Field(&r.PublicKey, customValidation.Reference),
	)
	return customValidation.WrapValidationError(err)
}

// UpdateRequest has the same shape as RegisterRequest.
type UpdateRequest = RegisterRequest

// SetRecoveryManagerRequest names the new recovery manager.
type SetRecoveryManagerRequest struct {
	Manager string `json:"manager"`
}

// Validate checks if the request is valid. An empty manager disables recovery transfers.
func (r *SetRecoveryManagerRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.Manager, customValidation.NoWhitespace, customValidation.Principal),
	)
	return customValidation.WrapValidationError(err)
}

// ControllerTransferRequest contains the parameters of a recovery transfer.
type ControllerTransferRequest struct {
	ID            string `json:"id"`
	NewController string `json:"new_controller"`
}

// Validate checks if the transfer request is valid.
func (r *ControllerTransferRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.ID, validation.Required, customValidation.Reference),
		validation.Field(&r.NewController, validation.Required, customValidation.NotBlank, customValidation.Principal),
	)
	return customValidation.WrapValidationError(err)
}

// RecordResponse represents an identifier record. Unknown identifiers carry an
// empty controller.
type RecordResponse struct {
	IDHash      hash.Hash `json:"id_hash"`
	ID          string    `json:"id"`
	Controller  string    `json:"controller"`
	DocumentRef string    `json:"document_ref"`
	PublicKey   string    `json:"public_key"`
	UpdatedAt   int64     `json:"updated_at"`
}

// RecordListResponse wraps a page of identifier records.
type RecordListResponse struct {
	Data []RecordResponse `json:"data"`
}

// RecoveryManagerResponse reports the configured recovery manager.
type RecoveryManagerResponse struct {
	RecoveryManager string `json:"recovery_manager"`
}

// MapRecordToResponse converts an identifier record to a response.
func MapRecordToResponse(record *domain.Record) RecordResponse {
	return RecordResponse{
		IDHash:      record.IDHash,
		ID:          record.ID,
		Controller:  record.Controller.String(),
		DocumentRef: record.DocumentRef,
		PublicKey:   record.PublicKey,
		UpdatedAt:   record.UpdatedAt,
	}
}

// MapRecordsToListResponse converts identifier records to a list response.
func MapRecordsToListResponse(records []*domain.Record) RecordListResponse {
	data := make([]RecordResponse, 0, len(records))
	for _, record := range records {
		data = append(data, MapRecordToResponse(record))
	}
	return RecordListResponse{Data: data}
}
