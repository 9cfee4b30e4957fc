// Package transport exposes the checker over the network. Handlers only see
// domain values; request parsing and response encoding stay in this layer.
package transport

import (
	"context"

	"github.com/haukened/linkcheck/internal/link/domain"
)

// ServerTransport is a network front end for a Handler.
type ServerTransport interface {
	// Start begins serving requests with handler. It returns once the listener
	// is bound; serving continues until Stop or ctx cancellation.
	Start(ctx context.Context, handler Handler) error

	// Stop gracefully shuts the transport down.
	Stop() error

	// Address returns the bound network address.
	Address() string
}

// Handler is the service the transport delegates to.
type Handler interface {
	Check(ctx context.Context, raw string) domain.Verdict
	Scan(ctx context.Context, image []byte) domain.Verdict
	Rules() domain.RuleSet
}
