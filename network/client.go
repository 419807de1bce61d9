// Package network provides the shared HTTP client used to talk to the resolution endpoint.
package network

import (
	"net/http"
	"time"

	"github.com/beachcam-al/beachcam/constant"
)

// Client is shared across the application. A request is bounded by a one minute total
// timeout and a 30 second wait for response headers. Callers add no deadlines of their own.
var Client = &http.Client{
	Timeout:   time.Minute,
	Transport: &userAgent{base: newTransport()},
}

func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 10
	t.MaxIdleConnsPerHost = 10
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 30 * time.Second
	return t
}

// userAgent stamps every outgoing request with the application User-Agent unless one is already set.
type userAgent struct {
	base http.RoundTripper
}

func (u *userAgent) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") != "" {
		return u.base.RoundTrip(req)
	}
	clone := req.Clone(req.Context())
	clone.Header.Set("User-Agent", constant.UserAgent)
	return u.base.RoundTrip(clone)
}
