package core

import (
	"context"
	"maps"
	"time"

	glog "github.com/goliatone/go-logger/glog"
)

type TransportRequest struct {
	Method               string
	URL                  string
	Headers              map[string]string
	Body                 []byte
	Metadata             map[string]any
	Timeout              time.Duration
	MaxResponseBodyBytes int64
}

// MetadataBodyTruncated is set on TransportResponse.Metadata when the body was
// cut at the response size limit.
const MetadataBodyTruncated = "body_truncated"

type TransportResponse struct {
	StatusCode int
	Headers    map[string]string
	Body       []byte
	Metadata   map[string]any
}

// Successful reports whether the response carries a 2xx status.
func (r TransportResponse) Successful() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Clone returns a deep copy of r.
func (r TransportRequest) Clone() TransportRequest {
	r.Headers = cloneMap(r.Headers)
	r.Metadata = cloneMap(r.Metadata)
	r.Body = append([]byte(nil), r.Body...)
	return r
}

// Clone returns a deep copy of r.
func (r TransportResponse) Clone() TransportResponse {
	r.Headers = cloneMap(r.Headers)
	r.Metadata = cloneMap(r.Metadata)
	r.Body = append([]byte(nil), r.Body...)
	return r
}

func (r TransportResponse) Truncated() bool {
	truncated, _ := r.Metadata[MetadataBodyTruncated].(bool)
	return truncated
}

// TransportAdapter executes a single request. It returns an error only when no
// HTTP status was received; non-2xx responses are returned as values.
type TransportAdapter interface {
	Kind() string
	Do(ctx context.Context, req TransportRequest) (TransportResponse, error)
}

type JSONCodec interface {
	Encode(value any) ([]byte, error)
	Decode(payload []byte, target any) error
}

// ErrorNormalizer converts a non-2xx response into a service error.
type ErrorNormalizer interface {
	Handle(resp TransportResponse) error
}

type ErrorNormalizerFunc func(resp TransportResponse) error

func (f ErrorNormalizerFunc) Handle(resp TransportResponse) error {
	return f(resp)
}

// ResponseInterceptor observes every response returned by the transport. It
// must not retain or mutate the response.
type ResponseInterceptor func(ctx context.Context, resp TransportResponse)

type AppCheckVerifier interface {
	VerifyToken(ctx context.Context, token string) (DecodedAppCheckToken, error)
}

type MetricsRecorder interface {
	IncCounter(ctx context.Context, name string, value int64, tags map[string]string)
	ObserveHistogram(ctx context.Context, name string, value float64, tags map[string]string)
}

type Logger = glog.Logger

type LoggerProvider = glog.LoggerProvider

type FieldsLogger = glog.FieldsLogger

// cloneMap always returns a non-nil map so callers can write to the copy.
func cloneMap[K comparable, V any](in map[K]V) map[K]V {
	out := make(map[K]V, len(in))
	maps.Copy(out, in)
	return out
}
