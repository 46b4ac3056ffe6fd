// Package timeouts defines shared timeout constants used by the invitation
// service. Keeping them in one place makes the durations discoverable.
package timeouts

import "time"

// Backend caps a single read against the backend API, existence checks
// included. There are no retries.
const Backend = 5 * time.Second

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long an HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second
