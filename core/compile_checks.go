package core

import glog "github.com/goliatone/go-logger/glog"

var (
	_ AppCheckVerifier = (*Client)(nil)
	_ ErrorNormalizer  = ErrorNormalizerFunc(nil)
	_ JSONCodec        = StdJSONCodec{}

	_ Logger         = glog.Nop()
	_ LoggerProvider = glog.ProviderFromLogger(glog.Nop())
)
