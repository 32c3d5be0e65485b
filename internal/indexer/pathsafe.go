package indexer

import (
	"errors"
	"path/filepath"
	"strings"
)

// ErrOutsideRoot is returned when a stored relative path resolves outside the
// indexed root. Handlers treat it as not-found.
var ErrOutsideRoot = errors.New("path resolves outside root")

// ResolveUnderRoot resolves a catalog-stored relative path against root and
// returns the absolute path. Paths that escape the root (crafted ".." segments
// recorded or injected into the catalog) are rejected.
func ResolveUnderRoot(root, relPath string) (string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}
	target := filepath.Clean(filepath.Join(absRoot, filepath.FromSlash(relPath)))
	if target == absRoot {
		return target, nil
	}
	if !strings.HasPrefix(target, absRoot+string(filepath.Separator)) {
		return "", ErrOutsideRoot
	}
	return target, nil
}
