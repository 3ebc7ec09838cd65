// Package localdriver implements filedriver.Driver over a plain local
// directory tree. It has no real delta protocol of its own (a filesystem
// has no cursor), so it fabricates one by keeping an in-memory change log
// keyed by a monotonically increasing sequence number — enough to drive
// the Synchronizer's pull phase and its tests without a Joplin Server.
package localdriver

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/noteforge/joplin-sync-go/internal/filedriver"
)

// internalPrefixes are never surfaced through Delta or List, mirroring the
// Remote File Driver's rule that lock/temp bookkeeping stays invisible to
// callers.
var internalPrefixes = []string{"locks/", "temp/"}

// Driver is a filedriver.Driver backed by a local directory.
type Driver struct {
	root   string
	logger *slog.Logger

	mu      sync.Mutex
	seq     int64
	log     []change
	locks   map[string]filedriver.Lock
}

type change struct {
	seq     int64
	path    string
	deleted bool
}

// New creates a Driver rooted at dir, creating it if necessary.
func New(dir string, logger *slog.Logger) (*Driver, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("localdriver: creating root: %w", err)
	}

	return &Driver{root: dir, logger: logger, locks: make(map[string]filedriver.Lock)}, nil
}

func (d *Driver) Capabilities() filedriver.Capabilities {
	return filedriver.Capabilities{
		SupportsMultiPut:          false,
		SupportsAccurateTimestamp: true,
		SupportsLocks:             true,
	}
}

func (d *Driver) abs(path string) string {
	return filepath.Join(d.root, filepath.FromSlash(path))
}

func isInternal(path string) bool {
	for _, p := range internalPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}

	return false
}

func (d *Driver) Stat(_ context.Context, path string) (filedriver.Stat, error) {
	info, err := os.Stat(d.abs(path))
	if err != nil {
		if os.IsNotExist(err) {
			return filedriver.Stat{}, filedriver.ErrNotExist
		}

		return filedriver.Stat{}, fmt.Errorf("localdriver: stat %s: %w", path, err)
	}

	return filedriver.Stat{
		Path:        path,
		UpdatedTime: info.ModTime(),
		Size:        info.Size(),
		IsDir:       info.IsDir(),
	}, nil
}

func (d *Driver) GetText(_ context.Context, path string) (string, error) {
	b, err := os.ReadFile(d.abs(path))
	if err != nil {
		if os.IsNotExist(err) {
			return "", filedriver.ErrNotExist
		}

		return "", fmt.Errorf("localdriver: read %s: %w", path, err)
	}

	return string(b), nil
}

func (d *Driver) GetFile(_ context.Context, path string) (io.ReadCloser, error) {
	f, err := os.Open(d.abs(path))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, filedriver.ErrNotExist
		}

		return nil, fmt.Errorf("localdriver: open %s: %w", path, err)
	}

	return f, nil
}

func (d *Driver) PutText(_ context.Context, path, text string) error {
	return d.putBytes(path, []byte(text))
}

func (d *Driver) PutFile(_ context.Context, path string, r io.Reader, _ int64) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("localdriver: reading payload for %s: %w", path, err)
	}

	return d.putBytes(path, b)
}

func (d *Driver) putBytes(path string, b []byte) error {
	full := d.abs(path)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("localdriver: creating parent dir for %s: %w", path, err)
	}

	if err := os.WriteFile(full, b, 0o644); err != nil {
		return fmt.Errorf("localdriver: writing %s: %w", path, err)
	}

	d.recordChange(path, false)

	return nil
}

func (d *Driver) PutMulti(ctx context.Context, items []filedriver.MultiPutItem) error {
	for _, item := range items {
		if err := d.PutText(ctx, item.Path, item.Text); err != nil {
			return err
		}
	}

	return nil
}

func (d *Driver) Delete(_ context.Context, path string) error {
	err := os.Remove(d.abs(path))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("localdriver: deleting %s: %w", path, err)
	}

	d.recordChange(path, true)

	return nil
}

func (d *Driver) Mkdir(_ context.Context, path string) error {
	if err := os.MkdirAll(d.abs(path), 0o755); err != nil {
		return fmt.Errorf("localdriver: mkdir %s: %w", path, err)
	}

	return nil
}

func (d *Driver) List(_ context.Context, path string) ([]filedriver.Stat, error) {
	entries, err := os.ReadDir(d.abs(path))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, filedriver.ErrNotExist
		}

		return nil, fmt.Errorf("localdriver: listing %s: %w", path, err)
	}

	stats := make([]filedriver.Stat, 0, len(entries))

	for _, e := range entries {
		childPath := strings.TrimPrefix(filepath.ToSlash(filepath.Join(path, e.Name())), "/")
		if isInternal(childPath) {
			continue
		}

		info, err := e.Info()
		if err != nil {
			continue
		}

		stats = append(stats, filedriver.Stat{
			Path:        childPath,
			UpdatedTime: info.ModTime(),
			Size:        info.Size(),
			IsDir:       info.IsDir(),
		})
	}

	return stats, nil
}

// recordChange appends to the in-memory delta log under lock. Internal
// paths never enter the log so Delta never has to filter them out.
func (d *Driver) recordChange(path string, deleted bool) {
	if isInternal(path) {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq++
	d.log = append(d.log, change{seq: d.seq, path: path, deleted: deleted})
}

// deltaPageSize bounds how many entries one Delta call returns; a log with
// more pending entries than this is split across pages via Cursor/HasMore,
// the same plumbing a real paginated server uses.
const deltaPageSize = 50

func (d *Driver) Delta(_ context.Context, cursor string) (filedriver.DeltaPage, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	since := int64(0)

	if cursor != "" {
		n, err := strconv.ParseInt(cursor, 10, 64)
		if err != nil {
			return filedriver.DeltaPage{}, filedriver.ErrResyncRequired
		}

		since = n
	}

	var pending []change

	for _, c := range d.log {
		if c.seq > since {
			pending = append(pending, c)
		}
	}

	sort.Slice(pending, func(i, j int) bool { return pending[i].seq < pending[j].seq })

	page := pending
	hasMore := false

	if len(page) > deltaPageSize {
		page = page[:deltaPageSize]
		hasMore = true
	}

	items := make([]filedriver.DeltaItem, 0, len(page))
	nextCursor := since

	for _, c := range page {
		nextCursor = c.seq
		item := filedriver.DeltaItem{Path: c.path, Deleted: c.deleted}

		if !c.deleted {
			if st, err := d.statLocked(c.path); err == nil {
				item.Stat = st
			}
		}

		items = append(items, item)
	}

	return filedriver.DeltaPage{
		Items:   items,
		Cursor:  strconv.FormatInt(nextCursor, 10),
		HasMore: hasMore,
	}, nil
}

func (d *Driver) statLocked(path string) (filedriver.Stat, error) {
	info, err := os.Stat(d.abs(path))
	if err != nil {
		return filedriver.Stat{}, err
	}

	return filedriver.Stat{Path: path, UpdatedTime: info.ModTime(), Size: info.Size(), IsDir: info.IsDir()}, nil
}

func (d *Driver) ClearRoot(_ context.Context) error {
	entries, err := os.ReadDir(d.root)
	if err != nil {
		return fmt.Errorf("localdriver: clearing root: %w", err)
	}

	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(d.root, e.Name())); err != nil {
			return fmt.Errorf("localdriver: clearing root: %w", err)
		}
	}

	d.mu.Lock()
	d.log = nil
	d.seq = 0
	d.mu.Unlock()

	return nil
}

func (d *Driver) CheckConfig(_ context.Context) error {
	info, err := os.Stat(d.root)
	if err != nil {
		return fmt.Errorf("localdriver: root unreachable: %w", err)
	}

	if !info.IsDir() {
		return fmt.Errorf("localdriver: root %s is not a directory", d.root)
	}

	return nil
}

func (d *Driver) AcquireLock(_ context.Context, l filedriver.Lock) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	// Contention is per lock Type, not per client: only one sync lock may
	// be active system-wide regardless of which client holds it, even
	// though it is addressed for release by the full composite key.
	for _, existing := range d.locks {
		if existing.Type == l.Type && existing.ClientID != l.ClientID && existing.Active(time.Now()) {
			return filedriver.ErrLockHeld
		}
	}

	l.UpdatedTime = time.Now()
	d.locks[lockKey(l)] = l

	return nil
}

func (d *Driver) ReleaseLock(_ context.Context, l filedriver.Lock) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	delete(d.locks, lockKey(l))

	return nil
}

func (d *Driver) ListLocks(_ context.Context) ([]filedriver.Lock, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]filedriver.Lock, 0, len(d.locks))
	for _, l := range d.locks {
		out = append(out, l)
	}

	return out, nil
}

func lockKey(l filedriver.Lock) string {
	return fmt.Sprintf("%d_%d_%s", l.Type, l.ClientType, l.ClientID)
}
