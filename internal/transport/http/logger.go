package http

import (
	"errors"
	"net/http"
	"net/http/httputil"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/oshokin/cloud-jukebox/internal/logger"
	"github.com/oshokin/cloud-jukebox/internal/utils"
)

// LogTransport is an http.RoundTripper that logs object storage traffic at debug level.
// Every exchange is logged as one line with bucket, object, status and sizes.
// Bodies are dumped only for failed exchanges with a text body, such as S3 XML error documents.
type LogTransport struct {
	// next is the underlying HTTP round tripper.
	next http.RoundTripper
	// maxLogLength is the maximum length of a dumped exchange.
	maxLogLength uint64
}

// Static error definitions for better error handling.
var (
	// ErrNilRequest indicates that the HTTP request is nil.
	ErrNilRequest = errors.New("request is nil")
)

// NewLogTransport wraps next with storage request logging.
// A zero maxLogLength falls back to DefaultMaxLogLength.
func NewLogTransport(next http.RoundTripper, maxLogLength uint64) http.RoundTripper {
	if maxLogLength == 0 {
		maxLogLength = DefaultMaxLogLength
	}

	return &LogTransport{
		next:         next,
		maxLogLength: maxLogLength,
	}
}

// RoundTrip executes a single HTTP transaction and logs it.
// It implements the http.RoundTripper interface.
func (t *LogTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil {
		return nil, ErrNilRequest
	}

	if !logger.IsDebugLevel() {
		return t.next.RoundTrip(req)
	}

	ctx := req.Context()
	bucket, object := SplitObjectPath(req.URL.Path)
	startTime := time.Now()

	resp, err := t.next.RoundTrip(req)
	if err != nil {
		logger.DebugKV(ctx, "storage request failed",
			"method", req.Method,
			"bucket", bucket,
			"object", object,
			"error", err)

		return nil, err
	}

	logger.DebugKV(ctx, "storage request",
		"method", req.Method,
		"bucket", bucket,
		"object", object,
		"status", resp.StatusCode,
		"duration", time.Since(startTime),
		"sent", contentSize(req.ContentLength),
		"received", contentSize(resp.ContentLength))

	if resp.StatusCode >= http.StatusBadRequest {
		logger.Debugf(ctx, "storage error response:\n%s", t.dumpResponse(resp))
	}

	return resp, nil
}

// SplitObjectPath splits a path-style storage URL path into bucket and object names.
func SplitObjectPath(path string) (bucket, object string) {
	bucket, object, _ = strings.Cut(strings.TrimPrefix(path, "/"), "/")

	return bucket, object
}

func contentSize(length int64) string {
	if length < 0 {
		return "unknown"
	}

	return humanize.Bytes(utils.SafeInt64ToUint64(length))
}

func (t *LogTransport) dumpResponse(resp *http.Response) string {
	dump, err := httputil.DumpResponse(resp, utils.IsTextContentType(resp.Header.Get("Content-Type")))
	if err != nil {
		return err.Error()
	}

	return t.truncate(dump)
}

func (t *LogTransport) truncate(data []byte) string {
	if uint64(len(data)) > t.maxLogLength {
		return string(data[:t.maxLogLength]) + "... [truncated]"
	}

	return string(data)
}
