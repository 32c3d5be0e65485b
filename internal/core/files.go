package core

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/akoval/bdtrack/internal/indexer"
	"github.com/akoval/bdtrack/internal/store"
	"github.com/akoval/bdtrack/internal/textenc"
	"github.com/yuin/goldmark"
)

// PreviewMaxBytes bounds how much of a file is loaded for a text preview.
const PreviewMaxBytes = 200_000

// Extensions considered text-like enough to preview.
var previewableExts = map[string]struct{}{
	"md": {}, "txt": {}, "csv": {}, "html": {}, "htm": {}, "py": {}, "json": {},
}

// FileDetail is a document plus its optional preview. PreviewHTML is only set
// for markdown documents.
type FileDetail struct {
	Document    store.Document `json:"document"`
	Preview     string         `json:"preview,omitempty"`
	PreviewHTML string         `json:"preview_html,omitempty"`
	Truncated   bool           `json:"truncated,omitempty"`
}

// FileDetail loads a document and, for text-like kinds, a bounded preview of
// its current on-disk contents. A document whose stored path escapes the root
// or no longer exists is reported without a preview rather than failing.
func (s *Service) FileDetail(ctx context.Context, id int64) (FileDetail, error) {
	doc, err := s.store.GetDocument(ctx, id)
	if err != nil {
		return FileDetail{}, err
	}
	detail := FileDetail{Document: doc}

	if _, ok := previewableExts[doc.Ext]; !ok {
		return detail, nil
	}
	path, err := indexer.ResolveUnderRoot(s.root, doc.RelPath)
	if err != nil {
		return detail, nil
	}
	data, err := readAtMost(path, PreviewMaxBytes)
	if err != nil {
		return detail, nil
	}
	detail.Preview = textenc.Decode(data)
	detail.Truncated = len(data) == PreviewMaxBytes

	if doc.Kind == indexer.KindMD {
		var html bytes.Buffer
		if err := goldmark.Convert([]byte(detail.Preview), &html); err == nil {
			detail.PreviewHTML = html.String()
		}
	}
	return detail, nil
}

// FilePath resolves a document to its absolute on-disk path for download.
// Traversal escapes and vanished files both map to store.ErrNotFound.
func (s *Service) FilePath(ctx context.Context, id int64) (string, string, error) {
	doc, err := s.store.GetDocument(ctx, id)
	if err != nil {
		return "", "", err
	}
	path, err := indexer.ResolveUnderRoot(s.root, doc.RelPath)
	if err != nil {
		return "", "", fmt.Errorf("document %d: %w", id, store.ErrNotFound)
	}
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return "", "", fmt.Errorf("document %d: %w", id, store.ErrNotFound)
	}
	return path, doc.RelPath, nil
}

func readAtMost(path string, max int) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf := make([]byte, max)
	n, err := io.ReadFull(f, buf)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		err = nil
	}
	if err != nil {
		return nil, err
	}
	return buf[:n], nil
}
