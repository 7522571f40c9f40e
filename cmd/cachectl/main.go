// cachectl clears site cache trees by removal profile.
//
// Usage:
//
//	cachectl -site /var/www/site -profile standard
//
// Stream layout is fixed relative to the site root.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	"go.uber.org/zap"

	zaplog "github.com/unkn0wn-root/sitecache/log/zap"
	"github.com/unkn0wn-root/sitecache/sweep"
)

// streamDirs maps logical storage streams to directories under the site
// root.
var streamDirs = map[string]string{
	sweep.StreamTemplateCompile: "templates_c",
	sweep.StreamObjectCache:     "objects",
	sweep.StreamPageOutput:      "output",
	sweep.StreamConfigValidated: "config",
	sweep.StreamImageCache:      "images",
	sweep.StreamAssets:          "assets",
	sweep.StreamCache:           "cache",
}

func main() {
	var (
		site    = flag.String("site", "", "site root directory (required)")
		profile = flag.String("profile", sweep.ProfileStandard,
			"removal profile: "+strings.Join(sweep.Profiles(), ", "))
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *site == "" {
		fmt.Fprintln(os.Stderr, "cachectl: -site is required")
		flag.Usage()
		os.Exit(2)
	}

	zl, err := newZap(*verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cachectl: logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = zl.Sync() }()

	root, err := filepath.Abs(*site)
	if err != nil {
		zl.Fatal("resolve site root", zap.Error(err))
	}

	resolver := sweep.ResolverFunc(func(stream string) string {
		sub, ok := streamDirs[stream]
		if !ok {
			return ""
		}
		return filepath.Join(root, sub)
	})

	s := sweep.New(osfs.New("/"), resolver, zaplog.ZapLogger{L: zl})
	report, err := s.Clear(*profile)
	for _, line := range report {
		fmt.Println(line)
	}
	if err != nil {
		zl.Fatal("sweep aborted", zap.Error(err))
	}
}

func newZap(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}
