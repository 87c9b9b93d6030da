package transport

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"google.golang.org/api/option"
	htransport "google.golang.org/api/transport/http"
)

// FirebaseScopes are requested when building clients from Application Default
// Credentials.
var FirebaseScopes = []string{
	"https://www.googleapis.com/auth/cloud-platform",
	"https://www.googleapis.com/auth/firebase",
}

// NewGoogleHTTPClient returns an authenticated client resolved from
// Application Default Credentials unless opts supply credentials or a client.
func NewGoogleHTTPClient(ctx context.Context, opts ...option.ClientOption) (*http.Client, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	resolved := append([]option.ClientOption{option.WithScopes(FirebaseScopes...)}, opts...)
	client, _, err := htransport.NewClient(ctx, resolved...)
	if err != nil {
		return nil, fmt.Errorf("transport: build google http client: %w", err)
	}
	return client, nil
}

// NewGoogleRESTAdapter is NewRESTAdapter over NewGoogleHTTPClient.
func NewGoogleRESTAdapter(ctx context.Context, opts ...option.ClientOption) (*RESTAdapter, error) {
	client, err := NewGoogleHTTPClient(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return NewRESTAdapter(client), nil
}

// NewTokenSourceClient returns a client that attaches bearer tokens from
// source, caching them until expiry.
func NewTokenSourceClient(ctx context.Context, source oauth2.TokenSource) (*http.Client, error) {
	if source == nil {
		return nil, requestError(nil, "transport: token source is required", nil)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return oauth2.NewClient(ctx, oauth2.ReuseTokenSource(nil, source)), nil
}
