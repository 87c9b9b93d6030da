package core

import (
	"context"
	"strings"
	"sync"
)

type transportCall struct {
	ctx context.Context
	req TransportRequest
}

type stubTransport struct {
	mu       sync.Mutex
	response TransportResponse
	err      error
	calls    []transportCall
}

func newStubTransport(status int, body string) *stubTransport {
	return &stubTransport{
		response: TransportResponse{
			StatusCode: status,
			Headers:    map[string]string{"Content-Type": "application/json"},
			Body:       []byte(body),
		},
	}
}

func (t *stubTransport) Kind() string { return "stub" }

func (t *stubTransport) Do(ctx context.Context, req TransportRequest) (TransportResponse, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.calls = append(t.calls, transportCall{ctx: ctx, req: req})
	if t.err != nil {
		return TransportResponse{}, t.err
	}
	return t.response, nil
}

func (t *stubTransport) requests() []TransportRequest {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]TransportRequest, 0, len(t.calls))
	for _, call := range t.calls {
		out = append(out, call.req)
	}
	return out
}

type funcTransport func(ctx context.Context, req TransportRequest) (TransportResponse, error)

func (funcTransport) Kind() string { return "func" }

func (f funcTransport) Do(ctx context.Context, req TransportRequest) (TransportResponse, error) {
	return f(ctx, req)
}

type capturedCounter struct {
	name  string
	value int64
	tags  map[string]string
}

type capturedHistogram struct {
	name  string
	value float64
	tags  map[string]string
}

type captureMetricsRecorder struct {
	mu         sync.Mutex
	counters   []capturedCounter
	histograms []capturedHistogram
}

func (m *captureMetricsRecorder) IncCounter(_ context.Context, name string, value int64, tags map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters = append(m.counters, capturedCounter{name: name, value: value, tags: cloneMap(tags)})
}

func (m *captureMetricsRecorder) ObserveHistogram(_ context.Context, name string, value float64, tags map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.histograms = append(m.histograms, capturedHistogram{name: name, value: value, tags: cloneMap(tags)})
}

type capturedLog struct {
	level  string
	msg    string
	fields map[string]any
}

type captureLogger struct {
	mu       *sync.Mutex
	records  *[]capturedLog
	defaults map[string]any
}

func newCaptureLogger() *captureLogger {
	records := []capturedLog{}
	return &captureLogger{mu: &sync.Mutex{}, records: &records, defaults: map[string]any{}}
}

func (l *captureLogger) WithFields(fields map[string]any) Logger {
	merged := cloneMap(l.defaults)
	for key, value := range fields {
		merged[key] = value
	}
	return &captureLogger{mu: l.mu, records: l.records, defaults: merged}
}

func (l *captureLogger) Trace(msg string, args ...any) { l.record("trace", msg, args...) }
func (l *captureLogger) Debug(msg string, args ...any) { l.record("debug", msg, args...) }
func (l *captureLogger) Info(msg string, args ...any)  { l.record("info", msg, args...) }
func (l *captureLogger) Warn(msg string, args ...any)  { l.record("warn", msg, args...) }
func (l *captureLogger) Error(msg string, args ...any) { l.record("error", msg, args...) }
func (l *captureLogger) Fatal(msg string, args ...any) { l.record("fatal", msg, args...) }

func (l *captureLogger) WithContext(context.Context) Logger {
	return &captureLogger{mu: l.mu, records: l.records, defaults: cloneMap(l.defaults)}
}

func (l *captureLogger) record(level string, msg string, args ...any) {
	fields := cloneMap(l.defaults)
	for index := 0; index+1 < len(args); index += 2 {
		key, ok := args[index].(string)
		if !ok {
			continue
		}
		fields[key] = args[index+1]
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	*l.records = append(*l.records, capturedLog{level: level, msg: msg, fields: fields})
}

func (l *captureLogger) snapshot() []capturedLog {
	l.mu.Lock()
	defer l.mu.Unlock()
	items := *l.records
	out := make([]capturedLog, len(items))
	copy(out, items)
	return out
}

type stubLoggerProvider struct {
	logger Logger
}

func (p stubLoggerProvider) GetLogger(string) Logger {
	return p.logger
}

func hasCounter(counters []capturedCounter, name string, status string) bool {
	for _, counter := range counters {
		if counter.name == name && counter.tags["status"] == status {
			return true
		}
	}
	return false
}

func hasHistogram(histograms []capturedHistogram, name string, status string) bool {
	for _, histogram := range histograms {
		if histogram.name == name && histogram.tags["status"] == status {
			return true
		}
	}
	return false
}

func findLog(records []capturedLog, level string, message string) (capturedLog, bool) {
	for _, record := range records {
		if record.level == level && strings.TrimSpace(record.msg) == message {
			return record, true
		}
	}
	return capturedLog{}, false
}

func newTestClient(transport TransportAdapter, opts ...Option) (*Client, error) {
	return NewClient(Config{ProjectID: "test-project"}, transport, StdJSONCodec{}, opts...)
}

const validVerificationBody = `{
	"iss": "https://firebaseappcheck.googleapis.com/123456",
	"sub": "1:123456:web:abcdef",
	"aud": ["projects/123456", "projects/test-project"],
	"exp": 1767225600,
	"iat": 1767222000,
	"jti": "token-id-1",
	"platform": "web"
}`
