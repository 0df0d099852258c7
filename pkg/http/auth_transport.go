package http

import "net/http"

type authTransport struct {
	token     string
	transport http.RoundTripper
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())

	if t.token != "" {
		clone.Header.Set("Authorization", "Bearer "+t.token)
	}

	return t.transport.RoundTrip(clone)
}

// WithAuthToken sends the token as a Bearer Authorization header on every
// request. An empty token leaves requests untouched, which is what a local
// Ollama endpoint expects.
func WithAuthToken(token string) Option {
	return WithTransport(func(rt http.RoundTripper) http.RoundTripper {
		return &authTransport{token: token, transport: rt}
	})
}
