package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrorKind classifies every error an orchestrator can return. No other
// error shape crosses the service boundary.
type ErrorKind string

const (
	KindValidation  ErrorKind = "validation"
	KindConflict    ErrorKind = "conflict"
	KindNotFound    ErrorKind = "not_found"
	KindConsistency ErrorKind = "consistency"
	KindTransient   ErrorKind = "transient"
)

// Machine codes. The UI distinguishes room-booking conflicts from
// duplicate-identity conflicts, so those must stay separate codes.
const (
	CodeRoomUnavailable   = "room_unavailable"
	CodeRoomFull          = "room_full"
	CodeRoomNotVacant     = "room_not_vacant"
	CodeDuplicateTenant   = "duplicate_tenant"
	CodeRoomNotFound      = "room_not_found"
	CodeTenantNotFound    = "tenant_not_found"
	CodeContractNotFound  = "contract_not_found"
	CodePropertyNotFound  = "property_not_found"
	CodeTenantNotAssigned = "tenant_not_assigned"
	CodeDuplicateContract = "duplicate_contract_number"
	CodeRoomHasTenants    = "room_has_tenants"
	CodeRoomHasContracts  = "room_has_contracts"
	CodeInvalidInput      = "invalid_input"
	CodeInvalidDateRange  = "invalid_date_range"
	CodeCapacityExceeded  = "capacity_exceeded"
	CodeOccupancyDrift    = "occupancy_drift"
	CodeStoreUnavailable  = "store_unavailable"
)

type Error struct {
	Kind    ErrorKind `json:"kind"`
	Code    string    `json:"code"`
	Message string    `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (%s): %s", e.Kind, e.Code, e.Message)
}

func newError(kind ErrorKind, code, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Code: code, Message: fmt.Sprintf(format, args...)}
}

func validationErr(code, format string, args ...interface{}) *Error {
	return newError(KindValidation, code, format, args...)
}

func conflictErr(code, format string, args ...interface{}) *Error {
	return newError(KindConflict, code, format, args...)
}

func notFoundErr(code, format string, args ...interface{}) *Error {
	return newError(KindNotFound, code, format, args...)
}

// KindOf extracts the kind of a service error, or KindTransient for
// anything unclassified (store failures are retryable by the caller).
func KindOf(err error) ErrorKind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindTransient
}

// CodeOf extracts the machine code, or CodeStoreUnavailable when the error
// didn't come from this package.
func CodeOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeStoreUnavailable
}

// wrapLookup converts a gorm lookup error into the service taxonomy.
func wrapLookup(err error, code, what string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFoundErr(code, "%s %d not found", what, id)
	}
	return storeErr(err)
}

func storeErr(err error) error {
	return &Error{Kind: KindTransient, Code: CodeStoreUnavailable, Message: err.Error()}
}
