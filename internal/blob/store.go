// Package blob is the opaque artifact store. The workflow core only ever
// holds ref strings; bytes live behind an afs URL (file://, mem://, s3://).
package blob

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
)

type Store struct {
	fs      afs.Service
	baseURL string
}

// New creates a store rooted at baseURL, e.g. "file:///var/lib/letterflow/blobs".
func New(baseURL string) *Store {
	return &Store{
		fs:      afs.New(),
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Put writes data under an owner-scoped key and returns the ref the
// workflow stores. The ref is the key itself; content is never inspected.
func (s *Store) Put(ctx context.Context, key string, data []byte) (string, error) {
	if key == "" {
		return "", fmt.Errorf("blob key cannot be empty")
	}
	if err := s.fs.Upload(ctx, s.URLFor(key), file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("upload blob %s: %w", key, err)
	}
	return key, nil
}

// Get reads the bytes behind a ref.
func (s *Store) Get(ctx context.Context, ref string) ([]byte, error) {
	data, err := s.fs.DownloadWithURL(ctx, s.URLFor(ref))
	if err != nil {
		return nil, fmt.Errorf("download blob %s: %w", ref, err)
	}
	return data, nil
}

// Copy duplicates the blob behind ref under destKey and returns the new
// ref. The terminal approval derives the signed artifact this way.
func (s *Store) Copy(ctx context.Context, ref, destKey string) (string, error) {
	if err := s.fs.Copy(ctx, s.URLFor(ref), s.URLFor(destKey)); err != nil {
		return "", fmt.Errorf("copy blob %s to %s: %w", ref, destKey, err)
	}
	return destKey, nil
}

// URLFor resolves a ref to its backing afs URL.
func (s *Store) URLFor(ref string) string {
	return url.Join(s.baseURL, ref)
}
