package mocks

import "guesthouse/infras/otel"

// NewOtel returns a tracer whose spans are dropped, for tests that only need the scopes to exist.
func NewOtel() otel.Otel {
	return otel.Noop()
}
