package errors

import (
	"net/http"
)

// ErrorCode is the string identifier of a specific failure category.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common error codes shared by every engine layer.
const (
	ErrCodeInternal        ErrorCode = "COMMON_001"
	ErrCodeBadRequest      ErrorCode = "COMMON_002"
	ErrCodeNotFound        ErrorCode = "COMMON_003"
	ErrCodeTimeout         ErrorCode = "COMMON_004"
	ErrCodeValidation      ErrorCode = "COMMON_005"
	ErrCodeSerialization   ErrorCode = "COMMON_006"
	ErrCodeExternalService ErrorCode = "COMMON_007"
	ErrCodeCacheError      ErrorCode = "COMMON_008"
	ErrCodeNotImplemented  ErrorCode = "COMMON_009"
)

// Structure / toolkit error codes.
const (
	// ErrCodeStructureInvalid marks a syntactically invalid descriptor.
	// This is terminal; the caller must reject the input.
	ErrCodeStructureInvalid ErrorCode = "CHEM_001"

	// ErrCodeStructureEmpty marks an empty or whitespace-only descriptor.
	ErrCodeStructureEmpty ErrorCode = "CHEM_002"

	// ErrCodeToolkitUnavailable marks the recoverable condition where no
	// structure toolkit is present; callers switch to the fallback estimator.
	ErrCodeToolkitUnavailable ErrorCode = "CHEM_003"

	// ErrCodeCanonicalizationFailed marks a parse that succeeded but could
	// not be serialized back to a canonical form.
	ErrCodeCanonicalizationFailed ErrorCode = "CHEM_004"
)

// External identity-source error codes.
const (
	ErrCodeSourceUnreachable ErrorCode = "SRC_001"
	ErrCodeSourceTimeout     ErrorCode = "SRC_002"
	ErrCodeSourceBadPayload  ErrorCode = "SRC_003"
	ErrCodeSourceRateLimited ErrorCode = "SRC_004"
	ErrCodeSourceEmptyResult ErrorCode = "SRC_005"
	ErrCodeRegistryNumberBad ErrorCode = "SRC_006"
)

// Resolution orchestration error codes.
const (
	ErrCodeResolutionInput    ErrorCode = "RES_001"
	ErrCodeResolutionInternal ErrorCode = "RES_002"
)

// Aliases kept short for call-site readability.
const (
	CodeInternal       = ErrCodeInternal
	CodeInvalidParam   = ErrCodeBadRequest
	CodeNotFound       = ErrCodeNotFound
	CodeTimeout        = ErrCodeTimeout
	CodeNotImplemented = ErrCodeNotImplemented
	CodeOK             = ErrorCode("OK")
	CodeUnknown        = ErrorCode("UNKNOWN")
)

// httpStatusByCode maps engine error codes to HTTP status codes for the
// surrounding CRUD layer.  Codes not listed map to 500.
var httpStatusByCode = map[ErrorCode]int{
	ErrCodeBadRequest:        http.StatusBadRequest,
	ErrCodeValidation:        http.StatusBadRequest,
	ErrCodeStructureInvalid:  http.StatusBadRequest,
	ErrCodeStructureEmpty:    http.StatusBadRequest,
	ErrCodeResolutionInput:   http.StatusBadRequest,
	ErrCodeRegistryNumberBad: http.StatusBadRequest,
	ErrCodeNotFound:          http.StatusNotFound,
	ErrCodeSourceEmptyResult: http.StatusNotFound,
	ErrCodeTimeout:           http.StatusGatewayTimeout,
	ErrCodeSourceTimeout:     http.StatusGatewayTimeout,
	ErrCodeSourceUnreachable: http.StatusBadGateway,
	ErrCodeSourceBadPayload:  http.StatusBadGateway,
	ErrCodeSourceRateLimited: http.StatusTooManyRequests,
	ErrCodeNotImplemented:    http.StatusNotImplemented,
}

// HTTPStatus returns the HTTP status code associated with c.
func (c ErrorCode) HTTPStatus() int {
	if s, ok := httpStatusByCode[c]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// IsRecoverable reports whether the condition behind c degrades gracefully
// inside the engine instead of aborting a resolution.  Only input errors are
// non-recoverable; every source-level and toolkit-level failure is.
func (c ErrorCode) IsRecoverable() bool {
	switch c {
	case ErrCodeStructureInvalid, ErrCodeStructureEmpty, ErrCodeResolutionInput, ErrCodeBadRequest, ErrCodeValidation:
		return false
	}
	return true
}
