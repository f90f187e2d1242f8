package logger

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"runtime/debug"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/gin-gonic/gin"
	"github.com/lithammer/shortuuid/v4"
	"go.uber.org/zap"
)

const (
	bodySizeLimit = 16 * 1024 // keep request logs well under the CloudWatch event limit
	truncated     = "TRUNCATED..."

	// RequestIDKey is the gin context key holding the request id.
	RequestIDKey = "request_id"
)

// Form fields Slack sends that must never reach the logs.
var redactedFields = []string{"token"}

// logRecord for Request Log
type logRecord struct {
	RequestID      string
	Start          time.Time
	HTTPMethod     string
	RequestPath    string
	RequestBody    string
	RetryNum       string
	HTTPStatusCode int
	ResponseBody   string
	StackTrace     string
}

func (r *logRecord) fields() []zap.Field {
	return []zap.Field{
		zap.String("type", "request"),
		zap.String(RequestIDKey, r.RequestID),
		zap.String("http_method", r.HTTPMethod),
		zap.String("request_path", r.RequestPath),
		zap.String("request_body", r.RequestBody),
		zap.String("slack_retry_num", r.RetryNum),
		zap.Int("http_status_code", r.HTTPStatusCode),
		zap.String("response_body", r.ResponseBody),
		zap.Duration("duration", time.Since(r.Start)),
		zap.String("stack_trace", r.StackTrace),
	}
}

// GinLogMiddleware logs one structured record per request, even when a later handler panics.
func GinLogMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// overwrite the gin.Context.Writer to log response body
		respLogWriter := &respLogWriter{body: bytes.NewBufferString(""), ResponseWriter: c.Writer}
		c.Writer = respLogWriter

		record := initLogRecord(c)
		c.Set(RequestIDKey, record.RequestID)

		defer func() {
			if r := recover(); r != nil {
				record.HTTPStatusCode = http.StatusInternalServerError
				record.StackTrace = string(debug.Stack())
				GetLogger().Error("request panicked", record.fields()...)
				// throw the panic to the later middlewares
				panic(r)
			}
		}()

		c.Next()

		record.HTTPStatusCode = c.Writer.Status()
		record.ResponseBody = truncate(respLogWriter.body.String())
		GetLogger().Info("request", record.fields()...)
	}
}

type respLogWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w respLogWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w respLogWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

func initLogRecord(c *gin.Context) *logRecord {
	var body []byte
	if c.Request.Body != nil {
		var err error
		body, err = io.ReadAll(c.Request.Body)
		if err != nil {
			GetLogger().Warn("failed to read request body for logging", zap.Error(err))
		}
		// reattach request body for later use
		c.Request.Body = io.NopCloser(bytes.NewReader(body))
	}

	return &logRecord{
		RequestID:   requestID(c),
		Start:       time.Now(),
		HTTPMethod:  c.Request.Method,
		RequestPath: c.Request.URL.Path,
		RequestBody: truncate(redact(c.ContentType(), body)),
		RetryNum:    c.GetHeader("X-Slack-Retry-Num"),
	}
}

// requestID prefers the Lambda request id so logs line up with CloudWatch.
func requestID(c *gin.Context) string {
	if lc, ok := lambdacontext.FromContext(c.Request.Context()); ok {
		return lc.AwsRequestID
	}
	return shortuuid.New()
}

// redact blanks secret fields of form-encoded bodies, of JSON bodies and of
// the JSON carried in the interaction "payload" form field.
func redact(contentType string, body []byte) string {
	switch contentType {
	case gin.MIMEJSON:
		return redactJSON(string(body))
	case gin.MIMEPOSTForm:
	default:
		return string(body)
	}

	form, err := url.ParseQuery(string(body))
	if err != nil {
		return string(body)
	}
	for _, f := range redactedFields {
		if form.Has(f) {
			form.Set(f, "REDACTED")
		}
	}
	if form.Has("payload") {
		form.Set("payload", redactJSON(form.Get("payload")))
	}
	return form.Encode()
}

// redactJSON blanks secret top-level keys of a JSON object.
// Anything that is not a JSON object is returned as is.
func redactJSON(s string) string {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(s), &obj); err != nil {
		return s
	}
	found := false
	for _, f := range redactedFields {
		if _, ok := obj[f]; ok {
			obj[f] = json.RawMessage(`"REDACTED"`)
			found = true
		}
	}
	if !found {
		return s
	}
	b, err := json.Marshal(obj)
	if err != nil {
		return s
	}
	return string(b)
}

func truncate(s string) string {
	if len(s) <= bodySizeLimit {
		return s
	}
	return strings.ToValidUTF8(s[:bodySizeLimit], "") + truncated
}
