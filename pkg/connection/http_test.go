package connection

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/qcatools/qcamap.go/pkg/constants"
)

type RoundTripFunc func(req *http.Request) *http.Response

func (f RoundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req), nil
}

// NewTestClient returns *http.Client with Transport replaced to avoid making real calls
func NewTestClient(fn RoundTripFunc) *http.Client {
	return &http.Client{
		Transport: fn,
	}
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		// Must be set to non-nil value or it panics
		Header: make(http.Header),
	}
}

type HTTPTestSuite struct {
	suite.Suite
	name string
}

func TestHttpTestSuite(t *testing.T) {
	ts := new(HTTPTestSuite)
	ts.name = "HTTP Test Suite"

	suite.Run(t, ts)
}

func (s *HTTPTestSuite) newConnection(fn RoundTripFunc) *HTTPConnection {
	u, err := url.Parse("https://test.qcamap/ui/projects/1/rq/2/coding")
	s.Require().NoError(err)

	con := NewHTTPConnection(*NewConfig(u))
	con.SetHTTPClient(NewTestClient(fn))
	return con
}

func (s *HTTPTestSuite) TestSendDecodesListing() {
	con := s.newConnection(func(req *http.Request) *http.Response {
		s.Equal(http.MethodGet, req.Method)
		s.Equal("https://test.qcamap/api/v1/projects/26562/contents", req.URL.String())
		s.Equal("application/json, text/plain, */*", req.Header.Get("Accept"))
		return jsonResponse(http.StatusOK, `[{"id":138986,"title":"review-15261.txt"}]`)
	})

	var res []map[string]any
	err := con.Send(context.TODO(), http.MethodGet, "/api/v1/projects/26562/contents", nil, &res)
	s.Require().NoError(err)
	s.Require().Len(res, 1)
	s.Equal("review-15261.txt", res[0]["title"])
}

func (s *HTTPTestSuite) TestSendEncodesBody() {
	con := s.newConnection(func(req *http.Request) *http.Response {
		s.Equal(http.MethodPut, req.Method)
		s.Equal("application/json", req.Header.Get("Content-Type"))
		s.Equal("Bearer secret", req.Header.Get("Authorization"))
		body, err := io.ReadAll(req.Body)
		s.Require().NoError(err)
		s.JSONEq(`{"id":10,"categoryId":1}`, string(body))
		return jsonResponse(http.StatusNoContent, "")
	})
	con.SetToken("secret")

	err := con.Send(context.TODO(), http.MethodPut, "/m/10", map[string]any{"id": 10, "categoryId": 1}, nil)
	s.Require().NoError(err)
}

func (s *HTTPTestSuite) TestSendEmptyResponseWithTarget() {
	con := s.newConnection(func(req *http.Request) *http.Response {
		return jsonResponse(http.StatusOK, "")
	})

	var res map[string]any
	s.Require().NoError(con.Send(context.TODO(), http.MethodPut, "/x", map[string]any{}, &res))
	s.Nil(res)
}

func (s *HTTPTestSuite) TestMockClientEngine_MakeRequest() {
	con := s.newConnection(func(req *http.Request) *http.Response {
		return jsonResponse(http.StatusBadRequest, `{"message":"There was a problem"}`)
	})

	req, _ := http.NewRequestWithContext(context.TODO(), http.MethodGet, "https://test.qcamap/api/v1/projects/1/contents", http.NoBody)
	_, err := con.MakeRequest(req)
	s.Require().Error(err, "should return error for status code 400")

	var httpErr *HTTPError
	s.Require().True(errors.As(err, &httpErr))
	s.Equal(http.StatusBadRequest, httpErr.StatusCode)
	s.Equal("There was a problem", httpErr.Message)
	s.Equal("/api/v1/projects/1/contents", httpErr.Path)
	s.Contains(err.Error(), "status: 400")
}

func (s *HTTPTestSuite) TestErrorWithPlainBody() {
	con := s.newConnection(func(req *http.Request) *http.Response {
		return jsonResponse(http.StatusInternalServerError, "  upstream timeout\n")
	})

	err := con.Send(context.TODO(), http.MethodGet, "/x", nil, nil)
	var httpErr *HTTPError
	s.Require().True(errors.As(err, &httpErr))
	s.Equal(http.StatusInternalServerError, httpErr.StatusCode)
	s.Equal("upstream timeout", httpErr.Message)
}

func (s *HTTPTestSuite) TestPreConnectionChecks() {
	con := NewHTTPConnection(NewConnectionParams{})
	err := con.Send(context.TODO(), http.MethodGet, "/x", nil, nil)
	s.ErrorIs(err, constants.ErrNoBaseURL)

	con = NewHTTPConnection(NewConnectionParams{BaseURL: "http://x"})
	s.ErrorIs(con.Send(context.TODO(), http.MethodGet, "/x", nil, nil), constants.ErrNoMarshaler)
}

func (s *HTTPTestSuite) TestDecodeFailure() {
	con := s.newConnection(func(req *http.Request) *http.Response {
		return jsonResponse(http.StatusOK, "not json")
	})

	var res []map[string]any
	err := con.Send(context.TODO(), http.MethodGet, "/x", nil, &res)
	s.Require().Error(err)
	s.Contains(err.Error(), "failed to decode response")
}

func (s *HTTPTestSuite) TestNewConfigFromString() {
	p, err := NewConfigFromString("https://www.qcamap.org/ui/projects/1/rq/2/coding")
	s.Require().NoError(err)
	s.Equal("https://www.qcamap.org", p.BaseURL)

	_, err = NewConfigFromString("not a url")
	s.Error(err)
}

func (s *HTTPTestSuite) TestErrorMessageTruncates() {
	long := bytes.Repeat([]byte("x"), 1000)
	s.Len(errorMessage(long), maxErrorMessageLength+3)
}
