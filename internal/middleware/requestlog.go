// AngelaMos | 2026
// requestlog.go

package middleware

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const requestLogTimeLayout = "2006-01-02 15:04:05"

// RequestLog appends a (timestamp, method, URL) line for every request to an
// append-only sink. Write failures are logged and never fail the request.
type RequestLog struct {
	mu  sync.Mutex
	out io.Writer
	now func() time.Time
}

func NewRequestLog(out io.Writer) *RequestLog {
	return &RequestLog{out: out, now: time.Now}
}

// OpenRequestLog opens path for appending, creating parent directories.
func OpenRequestLog(path string) (*RequestLog, *os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create request log dir: %w", err)
	}

	//nolint:gosec // G302: log file is not secret
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open request log: %w", err)
	}

	return NewRequestLog(f), f, nil
}

func (l *RequestLog) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		l.record(r)
		next.ServeHTTP(w, r)
	})
}

func (l *RequestLog) record(r *http.Request) {
	entry := fmt.Sprintf(
		"Timestamp: %s - Method: %s - URL: %s\n",
		l.now().Format(requestLogTimeLayout),
		r.Method,
		r.URL.RequestURI(),
	)

	l.mu.Lock()
	_, err := io.WriteString(l.out, entry)
	l.mu.Unlock()

	if err != nil {
		slog.Error("failed to write request log", "error", err)
	}
}
