package filedriver

import "errors"

// Sentinel errors every driver implementation returns for the conditions
// the Synchronizer needs to distinguish from a generic failure.
var (
	// ErrNotExist means the requested path does not exist on the remote.
	ErrNotExist = errors.New("filedriver: path does not exist")
	// ErrResyncRequired means the server rejected a delta cursor as
	// invalid or expired; the caller must retry Delta with an empty
	// cursor to perform a full resync.
	ErrResyncRequired = errors.New("filedriver: cursor invalid, full resync required")
	// ErrLockHeld means acquiring a lock failed because another client
	// already holds it.
	ErrLockHeld = errors.New("filedriver: lock held by another client")
)

// APIError wraps a non-2xx response from a remote driver with enough
// context to classify and log it without parsing the message again.
type APIError struct {
	StatusCode int
	Code       string // server-specific machine-readable error code, if any
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return "filedriver: api error " + e.Code + ": " + e.Message
	}

	return "filedriver: api error: " + e.Message
}
