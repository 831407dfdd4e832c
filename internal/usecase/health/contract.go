package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// EngineProber runs a known ranking and verifies the result.
type EngineProber interface {
	Probe(ctx context.Context) error
}
