package gocommand

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-appcheck/core"
	"github.com/goliatone/go-appcheck/query"
	"github.com/goliatone/go-command"
	commanddispatcher "github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-command/runner"
)

// ValidateMessageContract enforces Type() plus optional Validate() contract.
func ValidateMessageContract(msg any) error {
	if err := command.ValidateMessage(msg); err != nil {
		return err
	}
	m, ok := msg.(command.Message)
	if !ok {
		return fmt.Errorf("gocommand: message must implement Type() string")
	}
	if strings.TrimSpace(m.Type()) == "" {
		return fmt.Errorf("gocommand: message type is required")
	}
	return nil
}

type RegistryAdapter struct {
	registry *command.Registry
}

func NewRegistryAdapter(registry *command.Registry) *RegistryAdapter {
	if registry == nil {
		registry = command.NewRegistry()
	}
	return &RegistryAdapter{registry: registry}
}

func (a *RegistryAdapter) Registry() *command.Registry {
	if a == nil {
		return nil
	}
	return a.registry
}

func (a *RegistryAdapter) RegisterQuery(qry any) error {
	if a == nil || a.registry == nil {
		return fmt.Errorf("gocommand: registry is not configured")
	}
	return a.registry.RegisterCommand(qry)
}

func (a *RegistryAdapter) Initialize() error {
	if a == nil || a.registry == nil {
		return fmt.Errorf("gocommand: registry is not configured")
	}
	return a.registry.Initialize()
}

func SubscribeQuery[T any, R any](qry command.Querier[T, R], runnerOpts ...runner.Option) commanddispatcher.Subscription {
	return commanddispatcher.SubscribeQuery(qry, runnerOpts...)
}

func Query[T any, R any](ctx context.Context, msg T) (R, error) {
	return commanddispatcher.Query[T, R](ctx, msg)
}

func RegisterAndSubscribeQuery[T any, R any](
	adapter *RegistryAdapter,
	qry command.Querier[T, R],
	runnerOpts ...runner.Option,
) (commanddispatcher.Subscription, error) {
	if adapter == nil || adapter.registry == nil {
		return nil, fmt.Errorf("gocommand: registry is not configured")
	}
	if qry == nil {
		return nil, fmt.Errorf("gocommand: query is required")
	}
	subscription := SubscribeQuery(qry, runnerOpts...)
	if err := adapter.RegisterQuery(qry); err != nil {
		if subscription != nil {
			subscription.Unsubscribe()
		}
		return nil, err
	}
	return subscription, nil
}

// RegisterVerifier exposes verifier as the handler for
// query.VerifyAppCheckTokenMessage on the global dispatcher.
func RegisterVerifier(
	adapter *RegistryAdapter,
	verifier core.AppCheckVerifier,
	runnerOpts ...runner.Option,
) (commanddispatcher.Subscription, error) {
	if verifier == nil {
		return nil, fmt.Errorf("gocommand: app check verifier is required")
	}
	return RegisterAndSubscribeQuery[query.VerifyAppCheckTokenMessage, core.DecodedAppCheckToken](
		adapter,
		query.NewVerifyAppCheckTokenQuery(verifier),
		runnerOpts...,
	)
}

// VerifyAppCheckToken dispatches a verification through the registered handler.
func VerifyAppCheckToken(ctx context.Context, token string) (core.DecodedAppCheckToken, error) {
	msg := query.VerifyAppCheckTokenMessage{Token: token}
	if err := ValidateMessageContract(msg); err != nil {
		return core.DecodedAppCheckToken{}, err
	}
	return Query[query.VerifyAppCheckTokenMessage, core.DecodedAppCheckToken](ctx, msg)
}
