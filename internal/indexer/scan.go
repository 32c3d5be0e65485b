// Package indexer keeps a persisted document catalog in sync with the files on
// disk. A scan walks the repository root and produces one Entry per file; a
// reconcile pass diffs the scan against the catalog and applies the minimal set
// of inserts, updates and deletes inside a single transaction.
package indexer

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// Directory names never descended into, matched at any depth.
var excludedDirs = map[string]struct{}{
	".git":        {},
	".venv":       {},
	"__pycache__": {},
}

// Specific filenames never indexed (local lock/journal artifacts).
var excludedFiles = map[string]struct{}{
	"product.db-wal": {},
	"product.db-shm": {},
}

// Extensions never indexed (compiled bytecode).
var excludedExts = map[string]struct{}{
	"pyc": {},
}

// Entry is the scanned metadata for one file under the root.
// RelPath is relative to the root and always uses forward slashes.
type Entry struct {
	RelPath   string
	Ext       string
	Kind      string
	SizeBytes int64
	MtimeUnix int64
}

// Scan walks root and returns one Entry per indexable file. Files that cannot
// be stat-ed (removed mid-scan, permission error) are skipped, never treated
// as a scan failure.
func Scan(root string) ([]Entry, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	var entries []Entry
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if path != absRoot {
				if _, skip := excludedDirs[d.Name()]; skip {
					return filepath.SkipDir
				}
			}
			return nil
		}
		if _, skip := excludedFiles[d.Name()]; skip {
			return nil
		}
		ext := normalizeExt(path)
		if _, skip := excludedExts[ext]; skip {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			// File vanished between readdir and stat; skip it.
			return nil
		}

		rel, err := filepath.Rel(absRoot, path)
		if err != nil {
			return nil
		}

		entries = append(entries, Entry{
			RelPath:   filepath.ToSlash(rel),
			Ext:       ext,
			Kind:      GuessKind(ext),
			SizeBytes: info.Size(),
			MtimeUnix: info.ModTime().Unix(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// normalizeExt returns the lowercased extension without the leading dot.
func normalizeExt(path string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
}
