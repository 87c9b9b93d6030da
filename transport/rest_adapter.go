package transport

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goliatone/go-appcheck/core"
)

const KindREST = "rest"

const defaultRESTClientTimeout = 30 * time.Second
const defaultRESTResponseBodyLimit int64 = 10 << 20

type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// RESTAdapter sends requests through an HTTPDoer. Any HTTP status is returned
// as a response; only failures before a status is received are errors. A body
// longer than the limit is cut at the limit and flagged with
// core.MetadataBodyTruncated.
type RESTAdapter struct {
	Client               HTTPDoer
	MaxResponseBodyBytes int64
}

func NewRESTAdapter(client HTTPDoer) *RESTAdapter {
	if client == nil {
		client = &http.Client{Timeout: defaultRESTClientTimeout}
	}
	return &RESTAdapter{Client: client, MaxResponseBodyBytes: defaultRESTResponseBodyLimit}
}

func (*RESTAdapter) Kind() string {
	return KindREST
}

func (a *RESTAdapter) Do(ctx context.Context, req core.TransportRequest) (core.TransportResponse, error) {
	if a == nil || a.Client == nil {
		return core.TransportResponse{}, requestError(nil, "transport: rest adapter requires an http client", map[string]any{"adapter": KindREST})
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	httpReq, err := buildHTTPRequest(ctx, req)
	if err != nil {
		return core.TransportResponse{}, err
	}

	startedAt := time.Now()
	httpRes, err := a.Client.Do(httpReq)
	if err != nil {
		return core.TransportResponse{}, transportFailure(err, "transport: execute http request", map[string]any{
			"adapter": KindREST,
			"method":  httpReq.Method,
			"url":     httpReq.URL.String(),
		})
	}
	defer httpRes.Body.Close()

	limit := resolveResponseBodyLimit(req.MaxResponseBodyBytes, a.MaxResponseBodyBytes)
	payload, truncated, err := readLimited(httpRes.Body, limit)
	if err != nil {
		return core.TransportResponse{}, transportFailure(err, "transport: read response body", map[string]any{
			"adapter":     KindREST,
			"status_code": httpRes.StatusCode,
		})
	}

	metadata := map[string]any{
		"kind":        KindREST,
		"duration_ms": time.Since(startedAt).Milliseconds(),
	}
	if truncated {
		metadata[core.MetadataBodyTruncated] = true
		metadata["response_limit_bytes"] = limit
	}
	return core.TransportResponse{
		StatusCode: httpRes.StatusCode,
		Headers:    flattenHeaders(httpRes.Header),
		Body:       payload,
		Metadata:   metadata,
	}, nil
}

func buildHTTPRequest(ctx context.Context, req core.TransportRequest) (*http.Request, error) {
	method := strings.ToUpper(strings.TrimSpace(req.Method))
	if method == "" {
		method = http.MethodGet
	}
	rawURL := strings.TrimSpace(req.URL)
	if rawURL == "" {
		return nil, requestError(nil, "transport: request url is required", map[string]any{"adapter": KindREST})
	}
	if _, err := url.Parse(rawURL); err != nil {
		return nil, requestError(err, "transport: invalid request url", map[string]any{"adapter": KindREST, "url": rawURL})
	}

	var body io.Reader = http.NoBody
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, requestError(err, "transport: create http request", map[string]any{"adapter": KindREST, "method": method, "url": rawURL})
	}
	for key, value := range req.Headers {
		if key = strings.TrimSpace(key); key != "" {
			httpReq.Header.Set(key, strings.TrimSpace(value))
		}
	}
	return httpReq, nil
}

// readLimited reads at most limit bytes and reports whether more were available.
func readLimited(body io.Reader, limit int64) ([]byte, bool, error) {
	payload, err := io.ReadAll(io.LimitReader(body, limit+1))
	if err != nil {
		return nil, false, err
	}
	if int64(len(payload)) > limit {
		return payload[:limit], true, nil
	}
	return payload, false, nil
}

func flattenHeaders(headers http.Header) map[string]string {
	flat := make(map[string]string, len(headers))
	for key, values := range headers {
		flat[key] = strings.Join(values, ",")
	}
	return flat
}

func resolveResponseBodyLimit(requestLimit int64, adapterLimit int64) int64 {
	switch {
	case requestLimit > 0:
		return requestLimit
	case adapterLimit > 0:
		return adapterLimit
	default:
		return defaultRESTResponseBodyLimit
	}
}

var _ core.TransportAdapter = (*RESTAdapter)(nil)
