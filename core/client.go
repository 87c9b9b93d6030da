package core

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-appcheck/version"
	glog "github.com/goliatone/go-logger/glog"
	"github.com/google/uuid"
)

const operationVerifyToken = "verify_token"

// Client verifies App Check tokens against the Firebase App Check service. It
// holds no mutable state after construction and is safe for concurrent use.
type Client struct {
	config          Config
	endpoint        ServiceEndpoint
	headers         map[string]string
	transport       TransportAdapter
	codec           JSONCodec
	errorNormalizer ErrorNormalizer
	interceptor     ResponseInterceptor
	logger          Logger
	metricsRecorder MetricsRecorder
	now             func() time.Time
}

// NewClient validates the required collaborators and the merged config. cfg is
// the runtime layer; any field left empty may come from the config provider.
// Every failure is a configuration error and happens before any network
// activity.
func NewClient(cfg Config, transport TransportAdapter, codec JSONCodec, opts ...Option) (*Client, error) {
	if transport == nil {
		return nil, configurationError("core: transport is required", nil)
	}
	if codec == nil {
		return nil, configurationError("core: json codec is required", nil)
	}

	builder := defaultClientBuilder(cfg)
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&builder)
	}

	provider, logger := glog.Resolve(loggerName, builder.loggerProvider, builder.logger)
	logger = glog.Ensure(logger)
	if provider != nil {
		if named := provider.GetLogger(loggerName); named != nil {
			logger = glog.Ensure(named)
		}
	}
	if builder.metricsRecorder == nil {
		builder.metricsRecorder = NopMetricsRecorder{}
	}
	if builder.configProvider == nil {
		builder.configProvider = NewCfgxConfigProvider(nil)
	}
	if builder.optionsResolver == nil {
		builder.optionsResolver = GoOptionsResolver{}
	}
	if builder.errorNormalizer == nil {
		builder.errorNormalizer = NewHTTPErrorNormalizer(codec)
	}
	if builder.now == nil {
		builder.now = func() time.Time { return time.Now().UTC() }
	}

	defaults := DefaultConfig()
	loaded, err := builder.configProvider.Load(context.Background(), defaults)
	if err != nil {
		return nil, wrapConfigurationError(err, "core: load config")
	}
	finalConfig, err := builder.optionsResolver.Resolve(defaults, loaded, builder.runtimeConfig)
	if err != nil {
		return nil, wrapConfigurationError(err, "core: resolve config")
	}
	if strings.TrimSpace(finalConfig.ProjectID) == "" {
		return nil, configurationError("core: project id is required", nil)
	}

	endpoint, err := NewServiceEndpoint(finalConfig.EndpointTemplate, finalConfig.ProjectID)
	if err != nil {
		return nil, err
	}

	headers := CommonHeaders()
	if name := strings.TrimSpace(finalConfig.ClientName); name != "" && name != DefaultClientName {
		headers[HeaderClient] = version.ClientHeader(name)
	}

	return &Client{
		config:          finalConfig,
		endpoint:        endpoint,
		headers:         headers,
		transport:       transport,
		codec:           codec,
		errorNormalizer: builder.errorNormalizer,
		interceptor:     builder.interceptor,
		logger:          logger,
		metricsRecorder: builder.metricsRecorder,
		now:             builder.now,
	}, nil
}

func (c *Client) Config() Config { return c.config }

func (c *Client) Endpoint() ServiceEndpoint { return c.endpoint }

func (c *Client) Transport() TransportAdapter { return c.transport }

func (c *Client) Codec() JSONCodec { return c.codec }

// Headers returns a copy of the headers attached to every request.
func (c *Client) Headers() map[string]string { return cloneMap(c.headers) }

// VerifyToken sends token to the verification endpoint. The token is opaque
// and is not inspected locally; an empty token is still sent.
func (c *Client) VerifyToken(ctx context.Context, token string) (result DecodedAppCheckToken, err error) {
	if c == nil || c.transport == nil || c.codec == nil {
		return DecodedAppCheckToken{}, configurationError("core: client is not configured", nil)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	operationID := uuid.NewString()
	startedAt := c.now()
	fields := map[string]any{
		"operation_id":      operationID,
		"project_id":        c.endpoint.ProjectID(),
		"token_fingerprint": TokenFingerprint(token),
		"token_length":      len(token),
	}
	defer func() {
		c.observeOperation(ctx, startedAt, operationVerifyToken, err, fields)
	}()

	headers := cloneMap(c.headers)
	if token != "" {
		headers[HeaderAppCheck] = token
	}
	req := TransportRequest{
		Method:               http.MethodGet,
		URL:                  c.endpoint.URL(),
		Headers:              headers,
		Metadata:             map[string]any{"operation_id": operationID},
		Timeout:              c.config.RequestTimeout,
		MaxResponseBodyBytes: c.config.MaxResponseBodyBytes,
	}

	resp, err := c.transport.Do(ctx, req)
	if err != nil {
		if IsTransportError(err) || IsConfigurationError(err) {
			return DecodedAppCheckToken{}, err
		}
		return DecodedAppCheckToken{}, NewTransportError(err, "core: send verification request", map[string]any{
			"adapter": c.transport.Kind(),
			"url":     req.URL,
		})
	}
	fields["status_code"] = resp.StatusCode

	if c.interceptor != nil {
		c.interceptor(ctx, resp.Clone())
	}

	if !resp.Successful() {
		return DecodedAppCheckToken{}, c.normalize(resp)
	}

	if resp.Truncated() {
		return DecodedAppCheckToken{}, decodingError(nil, "core: verification response exceeds body limit", map[string]any{
			"status_code": resp.StatusCode,
			"body_bytes":  len(resp.Body),
		})
	}

	result, err = decodeVerificationResult(c.codec, resp.Body)
	if err != nil {
		return DecodedAppCheckToken{}, decodingError(err, "core: decode verification response", map[string]any{
			"status_code": resp.StatusCode,
			"body_bytes":  len(resp.Body),
		})
	}
	fields["app_id"] = result.AppID
	return result, nil
}

// normalize never returns nil for a non-2xx response, even when a custom
// normalizer does.
func (c *Client) normalize(resp TransportResponse) error {
	if err := c.errorNormalizer.Handle(resp); err != nil {
		return err
	}
	return NewServiceError(
		resp.StatusCode,
		ReasonForHTTPStatus(resp.StatusCode),
		fmt.Sprintf("Unexpected HTTP response with status: %d", resp.StatusCode),
		nil,
	)
}
