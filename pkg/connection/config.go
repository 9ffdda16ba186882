package connection

import (
	"fmt"
	"net/url"

	"github.com/qcatools/qcamap.go/internal/codec"
	"github.com/qcatools/qcamap.go/pkg/logger"
)

// NewConfig creates connection parameters for the service reachable at u.
// Only the scheme and host of u are kept; API paths are absolute.
func NewConfig(u *url.URL) *NewConnectionParams {
	c := codec.NewJSON()
	return &NewConnectionParams{
		Marshaler:   c,
		Unmarshaler: c,
		BaseURL:     fmt.Sprintf("%s://%s", u.Scheme, u.Host),
		Logger:      logger.Nop(),
	}
}

// NewConfigFromString is NewConfig for a raw URL string.
func NewConfigFromString(rawURL string) (*NewConnectionParams, error) {
	u, err := url.ParseRequestURI(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", rawURL, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q: missing host", rawURL)
	}
	return NewConfig(u), nil
}
