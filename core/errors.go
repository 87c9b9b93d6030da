package core

import (
	"errors"
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	ErrorCodeConfiguration    = "APPCHECK_CONFIGURATION"
	ErrorCodeTransportFailure = "APPCHECK_TRANSPORT_FAILURE"
	ErrorCodeDecodingFailure  = "APPCHECK_DECODING_FAILURE"

	errorCodePrefix        = "APPCHECK_"
	serviceErrorCodePrefix = "APPCHECK_SERVICE_"
)

const (
	ReasonInvalidArgument    = "INVALID_ARGUMENT"
	ReasonFailedPrecondition = "FAILED_PRECONDITION"
	ReasonOutOfRange         = "OUT_OF_RANGE"
	ReasonUnauthenticated    = "UNAUTHENTICATED"
	ReasonPermissionDenied   = "PERMISSION_DENIED"
	ReasonNotFound           = "NOT_FOUND"
	ReasonConflict           = "CONFLICT"
	ReasonAborted            = "ABORTED"
	ReasonAlreadyExists      = "ALREADY_EXISTS"
	ReasonResourceExhausted  = "RESOURCE_EXHAUSTED"
	ReasonCancelled          = "CANCELLED"
	ReasonDataLoss           = "DATA_LOSS"
	ReasonUnknown            = "UNKNOWN"
	ReasonInternal           = "INTERNAL"
	ReasonUnavailable        = "UNAVAILABLE"
	ReasonDeadlineExceeded   = "DEADLINE_EXCEEDED"
)

// ServiceErrorCode returns the text code used for a service error with reason.
func ServiceErrorCode(reason string) string {
	reason = strings.ToUpper(strings.TrimSpace(reason))
	if reason == "" {
		reason = ReasonUnknown
	}
	return serviceErrorCodePrefix + reason
}

func configurationError(message string, metadata map[string]any) error {
	return envelope(
		goerrors.New(message, goerrors.CategoryValidation),
		http.StatusBadRequest,
		ErrorCodeConfiguration,
		metadata,
	)
}

func wrapConfigurationError(source error, message string) error {
	if source == nil {
		return configurationError(message, nil)
	}
	var rich *goerrors.Error
	if goerrors.As(source, &rich) && rich.TextCode == ErrorCodeConfiguration {
		return rich
	}
	return envelope(
		goerrors.Wrap(source, goerrors.CategoryValidation, message),
		http.StatusBadRequest,
		ErrorCodeConfiguration,
		nil,
	)
}

// NewConfigurationError wraps a construction-time failure, such as
// unresolvable credentials. An existing configuration error is returned as is.
func NewConfigurationError(source error, message string) error {
	return wrapConfigurationError(source, message)
}

// NewTransportError wraps a failure that happened before any HTTP status was
// received.
func NewTransportError(source error, message string, metadata map[string]any) error {
	var rich *goerrors.Error
	if source != nil {
		rich = goerrors.Wrap(source, goerrors.CategoryExternal, message)
	} else {
		rich = goerrors.New(message, goerrors.CategoryExternal)
	}
	return envelope(rich, http.StatusBadGateway, ErrorCodeTransportFailure, metadata)
}

func decodingError(source error, message string, metadata map[string]any) error {
	var rich *goerrors.Error
	if source != nil {
		rich = goerrors.Wrap(source, goerrors.CategoryInternal, message)
	} else {
		rich = goerrors.New(message, goerrors.CategoryInternal)
	}
	return envelope(rich, http.StatusInternalServerError, ErrorCodeDecodingFailure, metadata)
}

// NewServiceError builds the error returned for a non-2xx response.
func NewServiceError(statusCode int, reason string, message string, metadata map[string]any) error {
	reason = strings.ToUpper(strings.TrimSpace(reason))
	if reason == "" {
		reason = ReasonUnknown
	}
	fields := map[string]any{}
	for key, value := range metadata {
		fields[key] = value
	}
	fields["reason"] = reason
	fields["status_code"] = statusCode

	code := statusCode
	if code <= 0 {
		code = http.StatusInternalServerError
	}
	return envelope(
		goerrors.New(message, reasonCategory(reason)),
		code,
		ServiceErrorCode(reason),
		fields,
	)
}

func envelope(err *goerrors.Error, code int, textCode string, metadata map[string]any) *goerrors.Error {
	err = err.WithCode(code).WithTextCode(textCode)
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

func reasonCategory(reason string) goerrors.Category {
	switch reason {
	case ReasonInvalidArgument, ReasonFailedPrecondition, ReasonOutOfRange:
		return goerrors.CategoryBadInput
	case ReasonUnauthenticated:
		return goerrors.CategoryAuth
	case ReasonPermissionDenied:
		return goerrors.CategoryAuthz
	case ReasonNotFound:
		return goerrors.CategoryNotFound
	case ReasonConflict, ReasonAborted, ReasonAlreadyExists:
		return goerrors.CategoryConflict
	case ReasonResourceExhausted:
		return goerrors.CategoryRateLimit
	case ReasonUnavailable, ReasonDeadlineExceeded:
		return goerrors.CategoryExternal
	default:
		return goerrors.CategoryInternal
	}
}

// textCodeOf returns the first App Check text code in the chain, skipping
// envelopes added by outer layers such as dispatchers.
func textCodeOf(err error) string {
	for current := err; current != nil; current = errors.Unwrap(current) {
		var rich *goerrors.Error
		if !goerrors.As(current, &rich) || rich == nil {
			return ""
		}
		if strings.HasPrefix(rich.TextCode, errorCodePrefix) {
			return rich.TextCode
		}
		current = rich
	}
	return ""
}

func IsConfigurationError(err error) bool {
	return textCodeOf(err) == ErrorCodeConfiguration
}

func IsTransportError(err error) bool {
	return textCodeOf(err) == ErrorCodeTransportFailure
}

func IsDecodingError(err error) bool {
	return textCodeOf(err) == ErrorCodeDecodingFailure
}

func IsServiceError(err error) bool {
	return strings.HasPrefix(textCodeOf(err), serviceErrorCodePrefix)
}

// ServiceReason returns the normalized reason of a service error, or "" when
// err is not one.
func ServiceReason(err error) string {
	code := textCodeOf(err)
	if !strings.HasPrefix(code, serviceErrorCodePrefix) {
		return ""
	}
	return strings.TrimPrefix(code, serviceErrorCodePrefix)
}
