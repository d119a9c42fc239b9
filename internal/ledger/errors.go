package ledger

import "fmt"

// LoadReason classifies a failed load.
type LoadReason string

const (
	// ReasonCorrupt marks a document that exists but cannot be decoded.
	// Nothing is repaired and nothing is partially loaded.
	ReasonCorrupt LoadReason = "corrupt"

	// ReasonTransport marks an unreachable blob store. The operation is
	// aborted and never retried here.
	ReasonTransport LoadReason = "transport"
)

// LoadError reports a failed load with its classification. A missing
// document is not a LoadError: it triggers the bootstrap path instead.
type LoadError struct {
	Reason LoadReason
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load ledger (%s): %v", e.Reason, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// SaveError reports a failed save. The in-memory ledger is unaffected.
type SaveError struct {
	Err error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("save ledger: %v", e.Err)
}

func (e *SaveError) Unwrap() error { return e.Err }
