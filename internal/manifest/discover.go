package manifest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// DiscoverMembers expands the workspace globs of the root manifest and loads
// every matched directory that holds a package.json.
//
// Members come back in glob order, each glob's matches sorted lexically.
// A directory matched by several globs is kept once. Patterns starting with
// "!" exclude what earlier patterns matched. "**" matches any depth and
// never descends into node_modules or dot directories.
func DiscoverMembers(root string, globs []string) ([]*Manifest, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", root, err)
	}

	var dirs []string
	seen := make(map[string]bool)
	var excludes []string

	for _, pattern := range globs {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		if strings.HasPrefix(pattern, "!") {
			excludes = append(excludes, strings.TrimPrefix(pattern, "!"))
			continue
		}

		matches, err := expand(absRoot, pattern)
		if err != nil {
			return nil, err
		}
		for _, dir := range matches {
			if seen[dir] {
				continue
			}
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}

	var members []*Manifest
	for _, dir := range dirs {
		if excluded(absRoot, dir, excludes) {
			continue
		}
		if dir == absRoot {
			continue
		}

		info, err := os.Stat(filepath.Join(dir, FileName))
		if err != nil || info.IsDir() {
			continue
		}

		m, err := Load(dir)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, nil
}

func expand(root, pattern string) ([]string, error) {
	pattern = strings.TrimSuffix(filepath.ToSlash(pattern), "/")
	pattern = strings.TrimPrefix(pattern, "./")

	if !strings.Contains(pattern, "**") {
		matches, err := filepath.Glob(filepath.Join(root, filepath.FromSlash(pattern)))
		if err != nil {
			return nil, fmt.Errorf("invalid workspace pattern %q: %w", pattern, err)
		}
		return onlyDirs(matches), nil
	}

	re, err := globRegexp(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid workspace pattern %q: %w", pattern, err)
	}

	var matches []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrPermission) {
				return fs.SkipDir
			}
			return err
		}
		if !d.IsDir() || path == root {
			return nil
		}
		if name := d.Name(); name == "node_modules" || strings.HasPrefix(name, ".") {
			return fs.SkipDir
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if re.MatchString(filepath.ToSlash(rel)) {
			matches = append(matches, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	return matches, nil
}

func onlyDirs(paths []string) []string {
	dirs := make([]string, 0, len(paths))
	for _, p := range paths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			dirs = append(dirs, p)
		}
	}
	return dirs
}

func excluded(root, dir string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}
	rel, err := filepath.Rel(root, dir)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, pattern := range patterns {
		pattern = strings.TrimPrefix(strings.TrimSuffix(filepath.ToSlash(pattern), "/"), "./")
		re, err := globRegexp(pattern)
		if err != nil {
			continue
		}
		if re.MatchString(rel) {
			return true
		}
	}
	return false
}

// globRegexp translates a slash separated glob into an anchored regexp.
// "**" spans path segments, "*" and "?" stay within one.
func globRegexp(pattern string) (*regexp.Regexp, error) {
	var b strings.Builder
	b.WriteString("^")
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch c {
		case '*':
			if i+1 < len(pattern) && pattern[i+1] == '*' {
				i++
				// "**/" also matches zero segments
				if i+1 < len(pattern) && pattern[i+1] == '/' {
					i++
					b.WriteString("(?:.*/)?")
				} else {
					b.WriteString(".*")
				}
				continue
			}
			b.WriteString("[^/]*")
		case '?':
			b.WriteString("[^/]")
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
		}
	}
	b.WriteString("$")
	return regexp.Compile(b.String())
}
