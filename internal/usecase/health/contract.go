package health

import "context"

// DBPinger checks storage backend availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// SourceChecker checks that the ingestion datalake is reachable.
type SourceChecker interface {
	Ping(ctx context.Context) error
}
