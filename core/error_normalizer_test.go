package core

import (
	"net/http"
	"strings"
	"testing"

	goerrors "github.com/goliatone/go-errors"
)

func TestHTTPErrorNormalizer_MapsHTTPStatusWhenBodyHasNoStatus(t *testing.T) {
	cases := map[int]string{
		http.StatusBadRequest:          ReasonInvalidArgument,
		http.StatusUnauthorized:        ReasonUnauthenticated,
		http.StatusForbidden:           ReasonPermissionDenied,
		http.StatusNotFound:            ReasonNotFound,
		http.StatusConflict:            ReasonConflict,
		http.StatusTooManyRequests:     ReasonResourceExhausted,
		http.StatusInternalServerError: ReasonInternal,
		http.StatusServiceUnavailable:  ReasonUnavailable,
		http.StatusGatewayTimeout:      ReasonDeadlineExceeded,
		http.StatusTeapot:              ReasonUnknown,
	}
	normalizer := NewHTTPErrorNormalizer(StdJSONCodec{})
	for status, reason := range cases {
		err := normalizer.Handle(TransportResponse{StatusCode: status, Body: []byte("upstream failure")})
		if got := ServiceReason(err); got != reason {
			t.Fatalf("status %d: expected %q, got %q", status, reason, got)
		}
	}
}

func TestHTTPErrorNormalizer_BodyStatusWins(t *testing.T) {
	err := NewHTTPErrorNormalizer(StdJSONCodec{}).Handle(TransportResponse{
		StatusCode: http.StatusBadRequest,
		Body:       []byte(`{"error":{"code":400,"message":"precondition not met","status":"FAILED_PRECONDITION"}}`),
	})
	if got := ServiceReason(err); got != ReasonFailedPrecondition {
		t.Fatalf("expected body status to win, got %q", got)
	}

	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected go-errors envelope, got %T", err)
	}
	if rich.Message != "precondition not met" {
		t.Fatalf("unexpected message: %q", rich.Message)
	}
	if rich.Code != http.StatusBadRequest {
		t.Fatalf("expected upstream status as code, got %d", rich.Code)
	}
	if rich.Category != goerrors.CategoryBadInput {
		t.Fatalf("expected bad input category, got %q", rich.Category)
	}
	if rich.Metadata["upstream_status"] != "FAILED_PRECONDITION" {
		t.Fatalf("expected upstream status metadata, got %#v", rich.Metadata)
	}
}

func TestHTTPErrorNormalizer_IgnoresUnknownBodyStatus(t *testing.T) {
	err := NewHTTPErrorNormalizer(nil).Handle(TransportResponse{
		StatusCode: http.StatusForbidden,
		Body:       []byte(`{"error":{"message":"nope","status":"SOMETHING_NEW"}}`),
	})
	if got := ServiceReason(err); got != ReasonPermissionDenied {
		t.Fatalf("expected http status fallback, got %q", got)
	}
}

func TestHTTPErrorNormalizer_FallbackMessageIncludesBody(t *testing.T) {
	err := NewHTTPErrorNormalizer(StdJSONCodec{}).Handle(TransportResponse{
		StatusCode: http.StatusBadGateway,
		Body:       []byte("<html>bad gateway</html>"),
	})
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected go-errors envelope, got %T", err)
	}
	if !strings.HasPrefix(rich.Message, "Unexpected HTTP response with status: 502") {
		t.Fatalf("unexpected fallback message: %q", rich.Message)
	}
	if !strings.Contains(rich.Message, "bad gateway") {
		t.Fatalf("expected body excerpt in message, got %q", rich.Message)
	}
	if ServiceReason(err) != ReasonUnknown {
		t.Fatalf("expected unknown reason for 502, got %q", ServiceReason(err))
	}
}

func TestErrorPredicatesAreExclusive(t *testing.T) {
	errs := map[string]error{
		"configuration": configurationError("core: bad", nil),
		"transport":     NewTransportError(nil, "core: refused", nil),
		"decoding":      decodingError(nil, "core: malformed", nil),
		"service":       NewServiceError(http.StatusNotFound, ReasonNotFound, "missing", nil),
	}
	for kind, err := range errs {
		matches := 0
		for _, check := range []func(error) bool{IsConfigurationError, IsTransportError, IsDecodingError, IsServiceError} {
			if check(err) {
				matches++
			}
		}
		if matches != 1 {
			t.Fatalf("%s error matched %d predicates", kind, matches)
		}
	}
	if ServiceReason(errs["transport"]) != "" {
		t.Fatalf("expected no reason for transport error")
	}
	if ServiceErrorCode("not_found") != "APPCHECK_SERVICE_NOT_FOUND" {
		t.Fatalf("unexpected service error code %q", ServiceErrorCode("not_found"))
	}
}
