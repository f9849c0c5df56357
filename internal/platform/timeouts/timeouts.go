// Package timeouts defines shared timeout constants used across binaries.
// Centralizing these values keeps the store, the random source and the
// entrypoints from drifting apart.
package timeouts

import "time"

// RandomFetch caps a single request to the remote random number service.
const RandomFetch = 5 * time.Second

// StoreBusy is how long SQLite waits on a locked database before failing.
const StoreBusy = 5 * time.Second

// Shutdown limits how long a binary waits for telemetry to flush on exit.
const Shutdown = 5 * time.Second
