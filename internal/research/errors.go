package research

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ServiceError is a non-success response from the research service. Detail
// carries the human-readable message the service attaches to error bodies.
type ServiceError struct {
	Status int
	Detail string
}

func (e *ServiceError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("service returned status %d", e.Status)
	}
	return fmt.Sprintf("service returned status %d: %s", e.Status, e.Detail)
}

// IsCancelled reports whether err means the operation's context was
// cancelled. Cancellation is terminal: it is never retried and never
// surfaced as a user-visible error.
func IsCancelled(err error) bool {
	return errors.Is(err, context.Canceled)
}

// Retryable reports whether another attempt at the failed request could
// plausibly succeed. Transport failures and service-reported errors are
// retryable; cancellation is not.
func Retryable(err error) bool {
	return err != nil && !IsCancelled(err)
}

// errorDetail extracts the detail message the service attaches to error
// bodies ({"detail": "..."}). Bodies that are not JSON, or whose detail is
// not a plain string, fall back to their raw text.
func errorDetail(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil {
		return ""
	}
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Detail != "" {
		return payload.Detail
	}
	return strings.TrimSpace(string(raw))
}
