// Package lifecycle holds shared constants for graceful start/stop behaviour.
package lifecycle

import "time"

// DefaultTimeout bounds graceful shutdown of delivery servers.
const DefaultTimeout = 15 * time.Second
