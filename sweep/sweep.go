// Package sweep implements the categorized cache-clearing sweep: named
// removal profiles naming logical storage streams, resolved to physical
// directories and purged. It shares nothing with the runtime cache facade
// beyond the path-resolution collaborator, so it can run from an
// administrative command against a stopped site.
package sweep

import (
	"errors"
	"fmt"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"github.com/unkn0wn-root/sitecache"
)

// Logical storage streams. A stream is an abstract storage-tree identifier;
// the host's PathResolver maps it to a physical directory.
const (
	StreamTemplateCompile = "template-compile"
	StreamObjectCache     = "object-cache"
	StreamPageOutput      = "page-output"
	StreamConfigValidated = "config-validated"
	StreamImageCache      = "image-cache"
	StreamAssets          = "assets"
	StreamCache           = "cache"
)

// Removal profile names.
const (
	ProfileStandard   = "standard"
	ProfileAll        = "all"
	ProfileAssetsOnly = "assets-only"
	ProfileImagesOnly = "images-only"
	ProfileCacheOnly  = "cache-only"
)

// profiles maps a removal profile to its ordered logical roots. The table
// is immutable; profile instances exist only for the duration of a sweep.
var profiles = map[string][]string{
	ProfileStandard: {
		StreamTemplateCompile,
		StreamObjectCache,
		StreamPageOutput,
		StreamConfigValidated,
		StreamImageCache,
		StreamAssets,
	},
	ProfileAll:        {StreamCache, StreamImageCache, StreamAssets},
	ProfileAssetsOnly: {StreamAssets},
	ProfileImagesOnly: {StreamImageCache},
	ProfileCacheOnly:  {StreamCache},
}

var (
	ErrUnknownProfile = errors.New("sweep: unknown removal profile")

	// ErrUnresolvedRoot aborts the remaining sweep: proceeding with an
	// unresolved root risks deleting from an unintended, overly broad
	// location (e.g. the application root).
	ErrUnresolvedRoot = errors.New("sweep: unresolvable storage stream")
)

// MarkerName is the user-config marker touched after the standard/all
// profiles. A fresh mtime tells the rest of the system to treat the
// configuration as changed, which rotates the cache namespace on the next
// process start.
const MarkerName = "config.changed"

// Profiles returns the known removal profile names. Order is unspecified.
func Profiles() []string {
	out := make([]string, 0, len(profiles))
	for name := range profiles {
		out = append(out, name)
	}
	return out
}

// PathResolver maps a logical stream name to a physical directory.
// An empty result means the stream cannot be resolved.
type PathResolver interface {
	ResolvePath(stream string) string
}

// ResolverFunc adapts a plain function to PathResolver.
type ResolverFunc func(stream string) string

func (f ResolverFunc) ResolvePath(stream string) string { return f(stream) }

// Sweeper deletes the contents of resolved profile roots. It is stateless
// between invocations and holds no cache-facade state. Clearing is
// idempotent: a crash mid-sweep just leaves work for the next run.
type Sweeper struct {
	fs    billy.Filesystem
	paths PathResolver
	log   sitecache.Logger
}

func New(fs billy.Filesystem, paths PathResolver, log sitecache.Logger) *Sweeper {
	if log == nil {
		log = sitecache.NopLogger{}
	}
	return &Sweeper{fs: fs, paths: paths, log: log}
}

// Clear purges the roots of the named profile in declared order and returns
// the report lines (markup-tagged for colorized display; empty entries are
// blank separator lines).
//
// A root that fails to resolve aborts the whole sweep with
// ErrUnresolvedRoot; roots already processed stay deleted, there is no
// rollback. Per-entry deletion failures are logged and skipped.
func (s *Sweeper) Clear(profile string) ([]string, error) {
	roots, ok := profiles[profile]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProfile, profile)
	}

	var report []string
	for _, stream := range roots {
		dir := s.paths.ResolvePath(stream)
		if dir == "" {
			return report, fmt.Errorf("%w: %q", ErrUnresolvedRoot, stream)
		}
		if s.clearDir(dir) {
			report = append(report, fmt.Sprintf("<info>cleared %s</info>", dir), "")
		}
	}

	if profile == ProfileAll || profile == ProfileStandard {
		s.touchMarker()
	}
	return report, nil
}

// clearDir deletes the direct children of dir (files removed, directories
// removed recursively) and reports whether anything was actually removed.
func (s *Sweeper) clearDir(dir string) bool {
	entries, err := s.fs.ReadDir(dir)
	if err != nil {
		// a resolved but absent/unreadable directory means nothing to clear
		s.log.Debug("sweep: skipping unreadable root", sitecache.Fields{"dir": dir, "err": err})
		return false
	}

	removed := false
	for _, fi := range entries {
		p := s.fs.Join(dir, fi.Name())
		var err error
		if fi.IsDir() {
			err = util.RemoveAll(s.fs, p)
		} else {
			err = s.fs.Remove(p)
		}
		if err != nil {
			// non-fatal: permission denied or already gone
			s.log.Warn("sweep: entry not removed", sitecache.Fields{"path": p, "err": err})
			continue
		}
		removed = true
	}
	return removed
}

// touchMarker best-effort creates/truncates the user-config marker. Failure
// is logged but never surfaces in the report or as an error.
func (s *Sweeper) touchMarker() {
	dir := s.paths.ResolvePath(StreamConfigValidated)
	if dir == "" {
		s.log.Warn("sweep: config marker stream unresolved", nil)
		return
	}
	p := s.fs.Join(dir, MarkerName)
	f, err := s.fs.Create(p)
	if err != nil {
		s.log.Warn("sweep: config marker not touched", sitecache.Fields{"path": p, "err": err})
		return
	}
	_ = f.Close()
}
