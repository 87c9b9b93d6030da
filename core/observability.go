package core

import (
	"context"
	"sort"
	"strings"
	"time"
)

const loggerName = "appcheck"

// outcome summarizes one finished operation for logs and metrics.
type outcome struct {
	operation string
	status    string
	errorCode string
	duration  time.Duration
}

func newOutcome(operation string, duration time.Duration, err error) outcome {
	o := outcome{operation: metricSegment(operation), status: "success", duration: duration}
	if o.operation == "" {
		o.operation = "unknown"
	}
	if err != nil {
		o.status = "failure"
		o.errorCode = textCodeOf(err)
	}
	return o
}

func (o outcome) failed() bool { return o.status == "failure" }

func (o outcome) tags(projectID string) map[string]string {
	tags := map[string]string{
		"operation":  o.operation,
		"status":     o.status,
		"project_id": projectID,
	}
	if o.errorCode != "" {
		tags["error_code"] = o.errorCode
	}
	return tags
}

// observeOperation emits one counter, one duration histogram and one log line.
// fields are redacted before they reach the logger.
func (c *Client) observeOperation(ctx context.Context, startedAt time.Time, operation string, err error, fields map[string]any) {
	if c == nil {
		return
	}
	result := newOutcome(operation, c.now().Sub(startedAt), err)

	tags := result.tags(c.endpoint.ProjectID())
	if c.metricsRecorder != nil {
		c.metricsRecorder.IncCounter(ctx, "appcheck."+result.operation+".total", 1, cloneMap(tags))
		c.metricsRecorder.ObserveHistogram(ctx, "appcheck."+result.operation+".duration_ms", float64(result.duration.Milliseconds()), cloneMap(tags))
	}

	logFields := RedactSensitiveMap(fields)
	logFields["event_type"] = result.operation
	logFields["status"] = result.status
	logFields["duration_ms"] = result.duration.Milliseconds()
	if err != nil {
		logFields["error"] = err.Error()
		if result.errorCode != "" {
			logFields["error_code"] = result.errorCode
		}
	}
	c.emitLog(ctx, result, logFields)
}

func (c *Client) emitLog(ctx context.Context, result outcome, fields map[string]any) {
	if c.logger == nil {
		return
	}
	logger := c.logger
	if ctx != nil {
		logger = logger.WithContext(ctx)
	}
	if withFields, ok := logger.(FieldsLogger); ok {
		logger = withFields.WithFields(cloneMap(fields))
	}
	args := keyValueArgs(fields)
	if result.failed() {
		logger.Error(result.operation+" failed", args...)
		return
	}
	logger.Info(result.operation+" succeeded", args...)
}

// keyValueArgs flattens fields into sorted key/value pairs.
func keyValueArgs(fields map[string]any) []any {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	args := make([]any, 0, len(keys)*2)
	for _, key := range keys {
		args = append(args, key, fields[key])
	}
	return args
}

func metricSegment(name string) string {
	return strings.NewReplacer(" ", "_", "-", "_").Replace(strings.ToLower(strings.TrimSpace(name)))
}
