package core

import (
	"fmt"
	"net/http"
	"testing"

	goerrors "github.com/goliatone/go-errors"
)

func TestNewServiceError_CarriesReasonAndStatus(t *testing.T) {
	err := NewServiceError(http.StatusForbidden, " permission_denied ", "denied", map[string]any{"upstream_status": "PERMISSION_DENIED"})

	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected go-errors envelope, got %T", err)
	}
	if rich.TextCode != "APPCHECK_SERVICE_PERMISSION_DENIED" {
		t.Fatalf("unexpected text code %q", rich.TextCode)
	}
	if rich.Code != http.StatusForbidden {
		t.Fatalf("expected status code 403, got %d", rich.Code)
	}
	if rich.Category != goerrors.CategoryAuthz {
		t.Fatalf("expected authz category, got %q", rich.Category)
	}
	if rich.Metadata["reason"] != ReasonPermissionDenied {
		t.Fatalf("expected reason metadata, got %#v", rich.Metadata)
	}
	if ServiceReason(err) != ReasonPermissionDenied {
		t.Fatalf("unexpected service reason %q", ServiceReason(err))
	}
}

func TestNewServiceError_DefaultsToUnknown(t *testing.T) {
	err := NewServiceError(0, "", "odd", nil)
	if ServiceReason(err) != ReasonUnknown {
		t.Fatalf("expected UNKNOWN reason, got %q", ServiceReason(err))
	}
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) || rich.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 fallback code, got %#v", rich)
	}
}

func TestErrorPredicatesSurviveOuterWrapping(t *testing.T) {
	inner := NewServiceError(http.StatusBadRequest, ReasonInvalidArgument, "bad token", nil)
	outer := goerrors.Wrap(inner, goerrors.CategoryCommand, "dispatch failed").WithTextCode("DISPATCH_FAILED")

	if !IsServiceError(outer) {
		t.Fatalf("expected wrapped service error to classify")
	}
	if ServiceReason(outer) != ReasonInvalidArgument {
		t.Fatalf("unexpected reason %q", ServiceReason(outer))
	}

	plain := fmt.Errorf("query: %w", NewTransportError(nil, "dial failed", nil))
	if !IsTransportError(plain) {
		t.Fatalf("expected fmt-wrapped transport error to classify")
	}
}

func TestWrapConfigurationError_KeepsExistingConfigurationError(t *testing.T) {
	original := configurationError("core: project id is required", nil)
	if wrapped := wrapConfigurationError(original, "core: resolve config"); wrapped != original {
		t.Fatalf("expected configuration error to pass through unchanged")
	}
	if !IsConfigurationError(wrapConfigurationError(fmt.Errorf("raw"), "core: load config")) {
		t.Fatalf("expected raw failure to become configuration error")
	}
}

func TestReasonCategory(t *testing.T) {
	cases := map[string]goerrors.Category{
		ReasonInvalidArgument:   goerrors.CategoryBadInput,
		ReasonUnauthenticated:   goerrors.CategoryAuth,
		ReasonNotFound:          goerrors.CategoryNotFound,
		ReasonConflict:          goerrors.CategoryConflict,
		ReasonResourceExhausted: goerrors.CategoryRateLimit,
		ReasonUnavailable:       goerrors.CategoryExternal,
		ReasonInternal:          goerrors.CategoryInternal,
	}
	for reason, want := range cases {
		if got := reasonCategory(reason); got != want {
			t.Fatalf("reason %s: expected %q, got %q", reason, want, got)
		}
	}
}

func TestNewConfigurationError(t *testing.T) {
	err := NewConfigurationError(fmt.Errorf("credentials: invalid json"), "appcheck: resolve google credentials")
	if !IsConfigurationError(err) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) || rich.Code != http.StatusBadRequest || rich.Category != goerrors.CategoryValidation {
		t.Fatalf("unexpected envelope %#v", rich)
	}
}
