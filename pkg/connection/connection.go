// Package connection implements the transport to the remote coding service.
//
// [Connection] is deliberately small: the service is a plain JSON REST API and
// the library only ever sends one request and waits for its reply. The only
// implementation is [HTTPConnection]; tests substitute the http.Client's
// transport or point the connection at an in-process fake server.
package connection

import (
	"context"

	"github.com/qcatools/qcamap.go/internal/codec"
	"github.com/qcatools/qcamap.go/pkg/constants"
	"github.com/qcatools/qcamap.go/pkg/logger"
)

type Connection interface {
	// Send issues method on path. A non-nil body is encoded as the request
	// body. A non-nil res receives the decoded response body.
	// Any non-2xx response yields an *HTTPError.
	Send(ctx context.Context, method, path string, body, res any) error
}

type NewConnectionParams struct {
	Marshaler   codec.Marshaler
	Unmarshaler codec.Unmarshaler
	BaseURL     string
	Logger      logger.Logger
}

type BaseConnection struct {
	baseURL     string
	marshaler   codec.Marshaler
	unmarshaler codec.Unmarshaler
	logger      logger.Logger
}

func (bc *BaseConnection) preConnectionChecks() error {
	if bc.baseURL == "" {
		return constants.ErrNoBaseURL
	}

	if bc.marshaler == nil {
		return constants.ErrNoMarshaler
	}

	if bc.unmarshaler == nil {
		return constants.ErrNoUnmarshaler
	}

	return nil
}
