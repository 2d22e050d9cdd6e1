// Package delivery defines the contract every transport (HTTP, worker)
// fulfills so main can start them uniformly.
package delivery

import "context"

// Delivery is a long-running transport started by the fx application.
type Delivery interface {
	// Serve blocks until the transport stops or fails.
	Serve(ctx context.Context) error
}
