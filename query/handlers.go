package query

import (
	"context"

	"github.com/goliatone/go-appcheck/core"
)

type VerifyAppCheckTokenQuery struct {
	verifier core.AppCheckVerifier
}

func NewVerifyAppCheckTokenQuery(verifier core.AppCheckVerifier) *VerifyAppCheckTokenQuery {
	return &VerifyAppCheckTokenQuery{verifier: verifier}
}

func (q *VerifyAppCheckTokenQuery) Query(
	ctx context.Context,
	msg VerifyAppCheckTokenMessage,
) (core.DecodedAppCheckToken, error) {
	if q == nil || q.verifier == nil {
		return core.DecodedAppCheckToken{}, queryDependencyError("query: app check verifier is required")
	}
	return q.verifier.VerifyToken(ctx, msg.Token)
}
