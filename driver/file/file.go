// Package file implements the filesystem driver. It is the only backend
// guaranteed to always be constructible: it needs no runtime extension and
// no remote service, which makes it the terminal fallback of driver
// selection.
package file

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"

	dr "github.com/unkn0wn-root/sitecache/driver"
	hashutil "github.com/unkn0wn-root/sitecache/internal/util"
)

// entryNameLen is the hex length of an entry filename. Full-key hashes keep
// arbitrary cache ids safe for any filesystem.
const entryNameLen = 40

// File stores one framed entry per file under <dir>/<namespace>/.
// Concurrent writers get whatever the filesystem gives them (last write
// wins); this layer adds no locking.
type File struct {
	fs  billy.Filesystem
	dir string
	now func() time.Time
}

var _ dr.Driver = (*File)(nil)

type Config struct {
	// Dir is the physical cache directory. Ignored when FS is set.
	Dir string
	// Namespace scopes this deployment's entries to a subdirectory.
	Namespace string
	// FS overrides the filesystem (memfs in tests). When nil, an osfs
	// rooted at Dir is used.
	FS billy.Filesystem
	// Now overrides the clock used for expiry checks.
	Now func() time.Time
}

func New(cfg Config) (*File, error) {
	fs := cfg.FS
	if fs == nil {
		fs = osfs.New(cfg.Dir)
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	d := &File{fs: fs, dir: cfg.Namespace, now: now}
	if err := fs.MkdirAll(d.dir, 0o755); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *File) path(key string) string {
	return d.fs.Join(d.dir, hashutil.ShortHash(key, entryNameLen))
}

func (d *File) Fetch(_ context.Context, key string) ([]byte, bool, error) {
	p := d.path(key)
	f, err := d.fs.Open(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	b, err := io.ReadAll(f)
	_ = f.Close()
	if err != nil {
		return nil, false, err
	}

	expiresAt, payload, err := decodeEntry(b)
	if err != nil {
		_ = d.fs.Remove(p) // self-heal corrupt entry
		return nil, false, nil
	}
	if !expiresAt.IsZero() && d.now().After(expiresAt) {
		_ = d.fs.Remove(p)
		return nil, false, nil
	}
	return payload, true, nil
}

func (d *File) Store(_ context.Context, key string, value []byte, ttl time.Duration) error {
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = d.now().Add(ttl)
	}
	return util.WriteFile(d.fs, d.path(key), encodeEntry(expiresAt, value), 0o644)
}

func (d *File) Remove(_ context.Context, key string) error {
	if err := d.fs.Remove(d.path(key)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (d *File) Close(context.Context) error { return nil }
