package query

const TypeVerifyAppCheckToken = "appcheck.query.token.verify"

// VerifyAppCheckTokenMessage carries an opaque App Check token. The token is
// not validated locally.
type VerifyAppCheckTokenMessage struct {
	Token string
}

func (VerifyAppCheckTokenMessage) Type() string { return TypeVerifyAppCheckToken }
