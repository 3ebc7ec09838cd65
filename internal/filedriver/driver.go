// Package filedriver defines the Remote File Driver abstraction: a thin,
// content-addressed object store interface that every concrete remote
// (Joplin Server over HTTP, a plain local directory for tests) implements.
// The Synchronizer is written entirely against this interface and never
// imports a concrete driver package directly — "accept interfaces, return
// structs".
package filedriver

import (
	"context"
	"io"
	"time"
)

// Capabilities describes what a driver implementation can do. The
// Synchronizer consults these flags rather than type-switching on the
// concrete driver.
type Capabilities struct {
	// SupportsMultiPut means PutMulti can batch several small text items
	// into one round trip.
	SupportsMultiPut bool
	// SupportsAccurateTimestamp means Stat's UpdatedTime reflects the
	// server's own clock precisely enough to use for conflict detection.
	// When false, callers should prefer content hashing over timestamp
	// comparison where possible.
	SupportsAccurateTimestamp bool
	// SupportsLocks means AcquireLock/ReleaseLock/ListLocks are backed by
	// a real server-side lock table rather than being no-ops.
	SupportsLocks bool
}

// Stat is the metadata the driver can report about a remote object without
// fetching its content.
type Stat struct {
	Path        string
	UpdatedTime time.Time
	Size        int64
	IsDir       bool
}

// MultiPutItem is one entry in a batched PutMulti call.
type MultiPutItem struct {
	Path string
	Text string
}

// DeltaItem is one change reported by Delta: either an updated object
// (Stat populated) or a deletion (Deleted true, Stat zero apart from Path).
type DeltaItem struct {
	Path    string
	Deleted bool
	Stat    Stat
}

// DeltaPage is one page of the delta protocol: zero or more changes, an
// opaque cursor to resume from, and whether more pages remain.
type DeltaPage struct {
	Items   []DeltaItem
	Cursor  string
	HasMore bool
}

// Driver is the Remote File Driver contract. Paths are always relative to
// the driver's configured root and use forward slashes. Internal paths
// (locks/, temp/, .resource/ metadata bookkeeping some drivers keep) are
// never surfaced through Delta or List — callers only ever see item and
// resource-blob paths that belong to the data model.
type Driver interface {
	Capabilities() Capabilities

	// Stat returns metadata for path, or ErrNotExist if it does not exist.
	Stat(ctx context.Context, path string) (Stat, error)

	// GetText fetches path's full content as text.
	GetText(ctx context.Context, path string) (string, error)

	// GetFile fetches path's full content as a binary stream. Callers must
	// close the returned reader.
	GetFile(ctx context.Context, path string) (io.ReadCloser, error)

	// PutText writes text to path, creating or overwriting it.
	PutText(ctx context.Context, path, text string) error

	// PutFile writes a binary stream to path, creating or overwriting it.
	// size is advisory (used for Content-Length where the transport wants
	// it); implementations must not rely on it for correctness.
	PutFile(ctx context.Context, path string, r io.Reader, size int64) error

	// PutMulti batches several text writes in one round trip. Only valid
	// when Capabilities().SupportsMultiPut is true.
	PutMulti(ctx context.Context, items []MultiPutItem) error

	// Delete removes path. Deleting an already-absent path is not an
	// error — the driver must translate that into success so tombstone
	// deletes are idempotent.
	Delete(ctx context.Context, path string) error

	// Mkdir creates path as a directory, including parents.
	Mkdir(ctx context.Context, path string) error

	// List returns the direct children of path.
	List(ctx context.Context, path string) ([]Stat, error)

	// Delta returns the next page of changes since cursor. An empty cursor
	// requests a full resync from scratch.
	Delta(ctx context.Context, cursor string) (DeltaPage, error)

	// ClearRoot destroys everything under the driver's root. Used only by
	// tests and the initial sync-target bootstrap.
	ClearRoot(ctx context.Context) error

	// CheckConfig validates that the driver can reach and authenticate
	// against its remote without performing any data operation.
	CheckConfig(ctx context.Context) error

	AcquireLock(ctx context.Context, l Lock) error
	ReleaseLock(ctx context.Context, l Lock) error
	ListLocks(ctx context.Context) ([]Lock, error)
}
