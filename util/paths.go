package util

import (
	"path"
	"strings"
)

// CleanPath returns p as an absolute, slash-separated path without a
// trailing slash.
func CleanPath(p string) string {
	return path.Clean("/" + p)
}

// SplitPath returns the non-empty components of p: none for the root, one
// for a collection, two for a file.
func SplitPath(p string) []string {
	p = CleanPath(p)
	if p == "/" {
		return nil
	}
	return strings.Split(strings.TrimPrefix(p, "/"), "/")
}

// JoinPath appends name to dir. The name must be a single component.
func JoinPath(dir, name string) (string, error) {
	if name == "" {
		return "", ErrEmptyName
	}
	if strings.Contains(name, "/") {
		return "", ErrNameHasSlash
	}
	return path.Join(CleanPath(dir), name), nil
}
