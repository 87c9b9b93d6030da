package transport

import (
	"net/http"

	"github.com/goliatone/go-appcheck/core"
	goerrors "github.com/goliatone/go-errors"
)

// requestError reports a request that could not be built. It is a
// configuration problem of the caller, not a transport failure.
func requestError(source error, message string, metadata map[string]any) error {
	var err *goerrors.Error
	if source != nil {
		err = goerrors.Wrap(source, goerrors.CategoryValidation, message)
	} else {
		err = goerrors.New(message, goerrors.CategoryValidation)
	}
	err = err.WithCode(http.StatusBadRequest).WithTextCode(core.ErrorCodeConfiguration)
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

func transportFailure(source error, message string, metadata map[string]any) error {
	return core.NewTransportError(source, message, metadata)
}
