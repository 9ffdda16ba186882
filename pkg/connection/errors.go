package connection

import (
	"fmt"
	"strings"

	"github.com/buger/jsonparser"
)

// HTTPError is returned for any non-2xx response.
type HTTPError struct {
	Method     string
	Path       string
	StatusCode int
	// Message is the service's error message when the body carries one.
	Message string
}

func (e *HTTPError) Error() string {
	msg := fmt.Sprintf("%s %s: HTTP error! status: %d", e.Method, e.Path, e.StatusCode)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

const maxErrorMessageLength = 256

// errorMessage extracts a human readable message from an error body.
// JSON bodies of the form {"message": "..."} yield the message; anything
// else is returned as trimmed text.
func errorMessage(body []byte) string {
	for _, key := range []string{"message", "error", "detail"} {
		if msg, err := jsonparser.GetString(body, key); err == nil && msg != "" {
			return msg
		}
	}
	text := strings.TrimSpace(string(body))
	if len(text) > maxErrorMessageLength {
		text = text[:maxErrorMessageLength] + "..."
	}
	return text
}
