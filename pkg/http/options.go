package http

import "time"

// Option configures the underlying HTTP client.
type Option func(*httpConfig)

func WithConnTimeout(timeout time.Duration) Option {
	return func(c *httpConfig) {
		c.connTimeout = timeout
	}
}

func WithRequestTimeout(timeout time.Duration) Option {
	return func(c *httpConfig) {
		c.requestTimeout = timeout
	}
}

func WithKeepAlive(keepAlive time.Duration) Option {
	return func(c *httpConfig) {
		c.keepAlive = keepAlive
	}
}

func WithResponseHeaderTimeout(timeout time.Duration) Option {
	return func(c *httpConfig) {
		c.responseHeaderTimeout = timeout
	}
}

func WithIdleConnTimeout(timeout time.Duration) Option {
	return func(c *httpConfig) {
		c.idleConnTimeout = timeout
	}
}

func WithMaxIdleConns(maxConns int) Option {
	return func(c *httpConfig) {
		c.maxIdleConns = maxConns
	}
}

func WithTransport(transport TransportFunc) Option {
	return func(c *httpConfig) {
		c.transports = append(c.transports, transport)
	}
}
