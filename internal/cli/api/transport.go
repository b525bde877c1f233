package api

import (
	"net/http"

	"Vitrin/internal/cli/auth"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Decorator mutates an outgoing request right before it is sent.
// A returned error aborts the request and reaches the caller unchanged.
type Decorator func(req *http.Request) error

// BearerDecorator hydrates the holder from storage, then sets
// "Authorization: Bearer <token>" if a token is present. Without a token the
// request goes out unauthenticated with headers untouched.
func BearerDecorator(holder *auth.Store) Decorator {
	return func(req *http.Request) error {
		holder.HydrateToken()
		if token, ok := holder.Token(); ok && token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		return nil
	}
}

// RequestIDDecorator tags the request with a fresh X-Request-ID unless the
// caller already set one.
func RequestIDDecorator() Decorator {
	return func(req *http.Request) error {
		if req.Header.Get(HeaderRequestID) == "" {
			req.Header.Set(HeaderRequestID, uuid.NewString())
		}
		return nil
	}
}

// HeaderRequestID correlates client and server logs.
const HeaderRequestID = "X-Request-ID"

// Transport is an http.RoundTripper that runs decorators on a clone of every
// request and hands it to Base.
type Transport struct {
	Base       http.RoundTripper
	Decorators []Decorator
	Logger     *zap.SugaredLogger
}

var _ http.RoundTripper = (*Transport)(nil)

// RoundTrip decorates a clone of req and sends it through Base
// (http.DefaultTransport when nil). The caller's request is never modified.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(req.Context())
	for _, d := range t.Decorators {
		if err := d(out); err != nil {
			if req.Body != nil {
				_ = req.Body.Close()
			}
			return nil, err
		}
	}
	if t.Logger != nil {
		t.Logger.Debugw("outgoing request",
			"method", out.Method,
			"url", out.URL.Redacted(),
			"request_id", out.Header.Get(HeaderRequestID),
			"authenticated", out.Header.Get("Authorization") != "",
		)
	}
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(out)
}
