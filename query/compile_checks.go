package query

import (
	"github.com/goliatone/go-appcheck/core"
	gocmd "github.com/goliatone/go-command"
)

var (
	_ gocmd.Querier[VerifyAppCheckTokenMessage, core.DecodedAppCheckToken] = (*VerifyAppCheckTokenQuery)(nil)
)
