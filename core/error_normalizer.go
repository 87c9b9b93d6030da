package core

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

const maxErrorBodyInMessage = 512

var httpStatusReasons = map[int]string{
	http.StatusBadRequest:                   ReasonInvalidArgument,
	http.StatusUnauthorized:                 ReasonUnauthenticated,
	http.StatusForbidden:                    ReasonPermissionDenied,
	http.StatusNotFound:                     ReasonNotFound,
	http.StatusConflict:                     ReasonConflict,
	http.StatusPreconditionFailed:           ReasonFailedPrecondition,
	http.StatusRequestedRangeNotSatisfiable: ReasonOutOfRange,
	http.StatusTooManyRequests:              ReasonResourceExhausted,
	http.StatusInternalServerError:          ReasonInternal,
	http.StatusServiceUnavailable:           ReasonUnavailable,
	http.StatusGatewayTimeout:               ReasonDeadlineExceeded,
}

var canonicalReasons = map[string]struct{}{
	ReasonInvalidArgument:    {},
	ReasonFailedPrecondition: {},
	ReasonOutOfRange:         {},
	ReasonUnauthenticated:    {},
	ReasonPermissionDenied:   {},
	ReasonNotFound:           {},
	ReasonConflict:           {},
	ReasonAborted:            {},
	ReasonAlreadyExists:      {},
	ReasonResourceExhausted:  {},
	ReasonCancelled:          {},
	ReasonDataLoss:           {},
	ReasonUnknown:            {},
	ReasonInternal:           {},
	ReasonUnavailable:        {},
	ReasonDeadlineExceeded:   {},
}

type platformErrorBody struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// HTTPErrorNormalizer maps Google platform error responses onto service errors.
// The body status wins over the HTTP status when it names a canonical reason.
type HTTPErrorNormalizer struct {
	Codec JSONCodec
}

func NewHTTPErrorNormalizer(codec JSONCodec) HTTPErrorNormalizer {
	return HTTPErrorNormalizer{Codec: codec}
}

func (n HTTPErrorNormalizer) Handle(resp TransportResponse) error {
	body := n.parseBody(resp.Body)

	reason := strings.ToUpper(strings.TrimSpace(body.Error.Status))
	if _, ok := canonicalReasons[reason]; !ok {
		reason = ReasonForHTTPStatus(resp.StatusCode)
	}

	message := strings.TrimSpace(body.Error.Message)
	if message == "" {
		message = fmt.Sprintf("Unexpected HTTP response with status: %d", resp.StatusCode)
		if snippet := strings.TrimSpace(string(resp.Body)); snippet != "" {
			if len(snippet) > maxErrorBodyInMessage {
				snippet = snippet[:maxErrorBodyInMessage]
			}
			message += "\n" + snippet
		}
	}

	metadata := map[string]any{}
	if upstream := strings.TrimSpace(body.Error.Status); upstream != "" {
		metadata["upstream_status"] = upstream
	}
	if resp.Truncated() {
		metadata[MetadataBodyTruncated] = true
	}
	return NewServiceError(resp.StatusCode, reason, message, metadata)
}

func (n HTTPErrorNormalizer) parseBody(payload []byte) platformErrorBody {
	parsed := platformErrorBody{}
	if len(strings.TrimSpace(string(payload))) == 0 {
		return parsed
	}
	var err error
	if n.Codec != nil {
		err = n.Codec.Decode(payload, &parsed)
	} else {
		err = json.Unmarshal(payload, &parsed)
	}
	if err != nil {
		return platformErrorBody{}
	}
	return parsed
}

// ReasonForHTTPStatus returns the canonical reason for an HTTP status code.
func ReasonForHTTPStatus(status int) string {
	if reason, ok := httpStatusReasons[status]; ok {
		return reason
	}
	return ReasonUnknown
}

var _ ErrorNormalizer = HTTPErrorNormalizer{}
