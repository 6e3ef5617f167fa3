package store

// Op constants name backend operations for error context.
const (
	OpPing     = "PING"
	OpUpsert   = "UPSERT"
	OpGet      = "GET"
	OpAddWord  = "ADDWORD"
	OpGetBooks = "GETBOOKS"
	OpClear    = "CLEAR"
	OpStats    = "STATS"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
