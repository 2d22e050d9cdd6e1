// Package lifecycle holds shared timeouts for fx start/stop hooks.
package lifecycle

import "time"

// DefaultTimeout bounds graceful startup and shutdown of infrastructure
// components (HTTP server, database pool, publishers).
const DefaultTimeout = 15 * time.Second
