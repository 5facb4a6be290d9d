// Package middleware provides an ordered HTTP middleware stack plus the
// request logging and CORS middleware used by the API module.
package middleware

import "net/http"

// Stack is an ordered list of HTTP middleware.
type Stack struct {
	chain []func(http.Handler) http.Handler
}

// Use appends middleware to the stack.
func (s *Stack) Use(mw func(http.Handler) http.Handler) {
	s.chain = append(s.chain, mw)
}

// Apply wraps handler with the stack, outermost first.
func (s *Stack) Apply(handler http.Handler) http.Handler {
	for i := len(s.chain) - 1; i >= 0; i-- {
		handler = s.chain[i](handler)
	}
	return handler
}
