// Package delivery defines the contract every transport server fulfils.
package delivery

import "context"

// Delivery is a transport-level server (HTTP storefront, push worker) started
// by the application container.
type Delivery interface {
	// Serve blocks, running the server until it fails or is shut down.
	Serve(ctx context.Context) error
}
