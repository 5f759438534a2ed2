package workspace

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gobwas/glob"
)

// pattern is a compiled glob. A leading "**/" also matches zero
// directories, so alt holds the pattern without it.
type pattern struct {
	source string
	glob   glob.Glob
	alt    glob.Glob
}

func compilePatterns(sources []string) ([]pattern, error) {
	out := make([]pattern, 0, len(sources))
	for _, s := range sources {
		g, err := glob.Compile(s, '/')
		if err != nil {
			return nil, errors.Wrapf(err, "bad glob %q", s)
		}
		p := pattern{source: s, glob: g}
		if rest, ok := strings.CutPrefix(s, "**/"); ok {
			if p.alt, err = glob.Compile(rest, '/'); err != nil {
				return nil, errors.Wrapf(err, "bad glob %q", s)
			}
		}
		out = append(out, p)
	}
	return out, nil
}

func (p pattern) match(rel string) bool {
	return p.glob.Match(rel) || p.alt != nil && p.alt.Match(rel)
}

func matchAny(rel string, patterns []pattern) bool {
	for _, p := range patterns {
		if p.match(rel) {
			return true
		}
	}
	return false
}

// Discovery selects the files of a project by include and exclude globs
// matched against slash-separated paths relative to the root.
type Discovery struct {
	root    string
	include []pattern
	exclude []pattern
}

func NewDiscovery(root string, include, exclude []string) (*Discovery, error) {
	d := &Discovery{root: root}
	var err error
	if d.include, err = compilePatterns(include); err != nil {
		return nil, err
	}
	if d.exclude, err = compilePatterns(exclude); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Discovery) Root() string {
	return d.root
}

// Discover walks the root and returns the matching files in lexical order.
// Excluded directories are not entered.
func (d *Discovery) Discover() ([]string, error) {
	var files []string
	err := filepath.WalkDir(d.root, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, ok := d.rel(path)
		if !ok {
			return nil
		}
		if entry.IsDir() {
			if rel != "." && d.excludedDir(rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if d.matchRel(rel) {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// Match reports whether path, absolute or relative to the root, is
// selected.
func (d *Discovery) Match(path string) bool {
	rel, ok := d.rel(path)
	return ok && d.matchRel(rel)
}

// Excluded reports whether path lies in an excluded directory or matches
// an exclude pattern.
func (d *Discovery) Excluded(path string) bool {
	rel, ok := d.rel(path)
	if !ok {
		return true
	}
	return matchAny(rel, d.exclude) || d.excludedDir(rel)
}

func (d *Discovery) matchRel(rel string) bool {
	return matchAny(rel, d.include) && !matchAny(rel, d.exclude)
}

// excludedDir checks a directory as if it held a file, so "build/**"
// excludes "build" itself.
func (d *Discovery) excludedDir(rel string) bool {
	return matchAny(rel+"/**", d.exclude)
}

func (d *Discovery) rel(path string) (string, bool) {
	if !filepath.IsAbs(path) && !strings.HasPrefix(path, d.root) {
		path = filepath.Join(d.root, path)
	}
	rel, err := filepath.Rel(d.root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, "../") {
		return "", false
	}
	return filepath.ToSlash(rel), true
}
