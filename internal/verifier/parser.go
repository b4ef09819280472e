// Package verifier implements the receiving side: parsing a capsule from raw
// JSON or a content-addressed URL, structural validation, proof
// re-verification and the two conditional-disclosure state machines
// (time-lock, wallet-lock).
package verifier

import (
	"context"
	"net/http"
	"strings"

	"github.com/veilcam/veilcam/internal/capsule"
	"github.com/veilcam/veilcam/internal/castore"
)

// ParseError reports a capsule that could be read but not accepted. It wraps
// common.ErrorInvalidCapsule with the concrete reason.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return e.Err.Error() }
func (e *ParseError) Unwrap() error { return e.Err }

// Parser turns verifier input into a validated capsule.
type Parser struct {
	client *http.Client
}

// NewParser returns a new Parser.
func NewParser() *Parser {
	return &Parser{client: &http.Client{Timeout: castore.FetchTimeout}}
}

// Parse accepts either raw capsule JSON or an http(s) URL to dereference.
// A failed fetch surfaces common.ErrorFetch; anything structurally wrong with
// the bytes surfaces a *ParseError wrapping common.ErrorInvalidCapsule.
func (p *Parser) Parse(ctx context.Context, input string) (*capsule.Capsule, error) {
	data := []byte(strings.TrimSpace(input))

	if isURL(string(data)) {
		fetched, err := castore.Fetch(ctx, p.client, string(data))
		if err != nil {
			return nil, err
		}
		data = fetched
	}

	c, err := capsule.Unmarshal(data)
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	if err := c.Validate(); err != nil {
		return nil, &ParseError{Err: err}
	}
	return c, nil
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
