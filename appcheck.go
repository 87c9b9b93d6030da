package appcheck

import (
	"context"

	"github.com/goliatone/go-appcheck/core"
	"github.com/goliatone/go-appcheck/transport"
	"google.golang.org/api/option"
)

type Config = core.Config

type Option = core.Option

type Client = core.Client

type DecodedAppCheckToken = core.DecodedAppCheckToken

type TransportAdapter = core.TransportAdapter
type TransportRequest = core.TransportRequest
type TransportResponse = core.TransportResponse
type ResponseInterceptor = core.ResponseInterceptor
type ErrorNormalizer = core.ErrorNormalizer
type MetricsRecorder = core.MetricsRecorder

var (
	WithLogger              = core.WithLogger
	WithLoggerProvider      = core.WithLoggerProvider
	WithMetricsRecorder     = core.WithMetricsRecorder
	WithResponseInterceptor = core.WithResponseInterceptor
	WithErrorNormalizer     = core.WithErrorNormalizer
	WithConfigProvider      = core.WithConfigProvider
	WithOptionsResolver     = core.WithOptionsResolver
	WithClock               = core.WithClock
)

var (
	IsConfigurationError = core.IsConfigurationError
	IsTransportError     = core.IsTransportError
	IsDecodingError      = core.IsDecodingError
	IsServiceError       = core.IsServiceError
	ServiceReason        = core.ServiceReason
)

func DefaultConfig() Config {
	return core.DefaultConfig()
}

// NewClient wires a client over an explicit transport and codec.
func NewClient(cfg Config, adapter TransportAdapter, codec core.JSONCodec, opts ...Option) (*Client, error) {
	return core.NewClient(cfg, adapter, codec, opts...)
}

// NewHTTPClient wires a client over an existing HTTP client using the REST
// adapter and the standard JSON codec.
func NewHTTPClient(cfg Config, httpClient transport.HTTPDoer, opts ...Option) (*Client, error) {
	return core.NewClient(cfg, transport.NewRESTAdapter(httpClient), core.StdJSONCodec{}, opts...)
}

// Setup resolves Google credentials from clientOpts, falling back to
// Application Default Credentials, and returns a ready client. Credentials that
// cannot be resolved yield a configuration error.
func Setup(ctx context.Context, cfg Config, clientOpts []option.ClientOption, opts ...Option) (*Client, error) {
	adapter, err := transport.NewGoogleRESTAdapter(ctx, clientOpts...)
	if err != nil {
		return nil, core.NewConfigurationError(err, "appcheck: resolve google credentials")
	}
	return core.NewClient(cfg, adapter, core.StdJSONCodec{}, opts...)
}
