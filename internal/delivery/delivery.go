// Package delivery defines the contract every transport entrypoint satisfies.
package delivery

import "context"

// Delivery is a long-running transport (an HTTP server) started by main and
// stopped through its lifecycle hooks.
type Delivery interface {
	Serve(ctx context.Context) error
}
