package sweep

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
)

// streamDirs is the resolver layout used by most tests.
var streamDirs = map[string]string{
	StreamTemplateCompile: "/var/site/templates_c",
	StreamObjectCache:     "/var/site/objects",
	StreamPageOutput:      "/var/site/output",
	StreamConfigValidated: "/var/site/config",
	StreamImageCache:      "/var/site/images",
	StreamAssets:          "/var/site/assets",
	StreamCache:           "/var/site/cache",
}

func mapResolver(m map[string]string) PathResolver {
	return ResolverFunc(func(stream string) string { return m[stream] })
}

func seedFile(t *testing.T, fs billy.Filesystem, path string) {
	t.Helper()
	if err := util.WriteFile(fs, path, []byte("x"), 0o644); err != nil {
		t.Fatalf("seed %s: %v", path, err)
	}
}

func exists(fs billy.Filesystem, path string) bool {
	_, err := fs.Stat(path)
	return err == nil
}

func TestClearAssetsOnlyTouchesOnlyAssetRoot(t *testing.T) {
	fs := memfs.New()
	seedFile(t, fs, "/var/site/assets/app.css")
	seedFile(t, fs, "/var/site/assets/js/app.js") // nested dir, removed recursively
	seedFile(t, fs, "/var/site/cache/entry")

	s := New(fs, mapResolver(streamDirs), nil)
	report, err := s.Clear(ProfileAssetsOnly)
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}

	want := []string{"<info>cleared /var/site/assets</info>", ""}
	if len(report) != len(want) || report[0] != want[0] || report[1] != want[1] {
		t.Fatalf("report mismatch: %q", report)
	}
	if exists(fs, "/var/site/assets/app.css") || exists(fs, "/var/site/assets/js") {
		t.Fatalf("asset root not cleared")
	}
	if !exists(fs, "/var/site/cache/entry") {
		t.Fatalf("cache root must not be touched by assets-only")
	}
}

func TestClearCacheOnlyReportShape(t *testing.T) {
	fs := memfs.New()
	seedFile(t, fs, "/var/site/cache/a")

	s := New(fs, mapResolver(streamDirs), nil)
	report, err := s.Clear(ProfileCacheOnly)
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if len(report) != 2 {
		t.Fatalf("want one cleared line plus blank separator, got %q", report)
	}
	if report[0] != "<info>cleared /var/site/cache</info>" {
		t.Fatalf("unexpected report line: %q", report[0])
	}
	if report[1] != "" {
		t.Fatalf("want blank separator, got %q", report[1])
	}
}

func TestClearEmptyRootAppendsNothing(t *testing.T) {
	fs := memfs.New()
	if err := fs.MkdirAll("/var/site/cache", 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	s := New(fs, mapResolver(streamDirs), nil)
	report, err := s.Clear(ProfileCacheOnly)
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if len(report) != 0 {
		t.Fatalf("empty root must produce no report lines, got %q", report)
	}
}

func TestUnresolvedRootAbortsWithoutRollback(t *testing.T) {
	fs := memfs.New()
	seedFile(t, fs, "/var/site/cache/entry")
	seedFile(t, fs, "/var/site/assets/app.css")

	// 'all' iterates cache, image-cache, assets. image-cache is
	// unresolvable here, so cache must already be gone and assets must
	// never be touched.
	dirs := map[string]string{}
	for k, v := range streamDirs {
		dirs[k] = v
	}
	dirs[StreamImageCache] = ""

	s := New(fs, mapResolver(dirs), nil)
	report, err := s.Clear(ProfileAll)
	if !errors.Is(err, ErrUnresolvedRoot) {
		t.Fatalf("want ErrUnresolvedRoot, got %v", err)
	}
	if exists(fs, "/var/site/cache/entry") {
		t.Fatalf("roots processed before the failure must stay deleted")
	}
	if !exists(fs, "/var/site/assets/app.css") {
		t.Fatalf("roots after the failing one must not be processed")
	}
	if len(report) != 2 || report[0] != "<info>cleared /var/site/cache</info>" {
		t.Fatalf("partial report expected for already-processed roots, got %q", report)
	}
}

func TestUnresolvedRootErrorNamesStream(t *testing.T) {
	fs := memfs.New()
	dirs := map[string]string{}
	for k, v := range streamDirs {
		dirs[k] = v
	}
	dirs[StreamCache] = ""

	s := New(fs, mapResolver(dirs), nil)
	_, err := s.Clear(ProfileCacheOnly)
	if err == nil || !errors.Is(err, ErrUnresolvedRoot) {
		t.Fatalf("want ErrUnresolvedRoot, got %v", err)
	}
	if want := `"cache"`; !strings.Contains(err.Error(), want) {
		t.Fatalf("error must name the unresolved stream, got %q", err.Error())
	}
}

func TestStandardAndAllTouchConfigMarker(t *testing.T) {
	for _, profile := range []string{ProfileStandard, ProfileAll} {
		fs := memfs.New()
		seedFile(t, fs, "/var/site/cache/a")
		seedFile(t, fs, "/var/site/templates_c/tpl.php")

		s := New(fs, mapResolver(streamDirs), nil)
		if _, err := s.Clear(profile); err != nil {
			t.Fatalf("Clear(%s): %v", profile, err)
		}
		if !exists(fs, "/var/site/config/"+MarkerName) {
			t.Fatalf("Clear(%s) must touch the config marker", profile)
		}
	}
}

func TestImagesOnlyDoesNotTouchMarker(t *testing.T) {
	fs := memfs.New()
	seedFile(t, fs, "/var/site/images/thumb.jpg")

	s := New(fs, mapResolver(streamDirs), nil)
	if _, err := s.Clear(ProfileImagesOnly); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if exists(fs, "/var/site/config/"+MarkerName) {
		t.Fatalf("images-only must not touch the config marker")
	}
}

func TestMarkerFailureIsNonFatal(t *testing.T) {
	fs := memfs.New()
	seedFile(t, fs, "/var/site/cache/a")

	// config-validated unresolved: the marker touch is skipped, but the
	// sweep itself already succeeded so no error surfaces.
	dirs := map[string]string{}
	for k, v := range streamDirs {
		dirs[k] = v
	}
	dirs[StreamConfigValidated] = ""

	s := New(fs, mapResolver(dirs), nil)
	if _, err := s.Clear(ProfileAll); err != nil {
		t.Fatalf("marker failure must stay best-effort, got %v", err)
	}
}

func TestUnknownProfile(t *testing.T) {
	s := New(memfs.New(), mapResolver(streamDirs), nil)
	if _, err := s.Clear("everything"); !errors.Is(err, ErrUnknownProfile) {
		t.Fatalf("want ErrUnknownProfile, got %v", err)
	}
}
