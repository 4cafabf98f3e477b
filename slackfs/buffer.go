package slackfs

import (
	"context"
	"fmt"
	"slices"

	"github.com/dendrascience/slackfs/internal/metrics"
	"go.uber.org/zap"
)

// Create inserts an empty placeholder under the base name of p and returns a
// fresh handle. The collection's index is loaded first so the placeholder
// is never hidden by a later lazy listing.
func (fs *FS) Create(ctx context.Context, p string) (FileHandle, error) {
	collection, name, err := filePath(p)
	if err != nil {
		return 0, err
	}
	items, err := fs.ItemsOf(ctx, collection)
	if err != nil {
		return 0, err
	}

	if _, exists := items[name]; !exists {
		metrics.AddIndexedItems(1)
	}
	items[name] = newPendingItem(name, fs.now())

	fs.log.Debug("placeholder created", zap.String("path", p))
	return fs.nextHandle(), nil
}

// Write copies data into the buffered content of p at offset. The buffer
// grows and is zero padded as needed, so every byte is always accepted.
func (fs *FS) Write(ctx context.Context, p string, data []byte, offset int64) (int, error) {
	it, err := fs.item(ctx, p)
	if err != nil {
		return 0, err
	}
	if offset < 0 {
		return 0, fmt.Errorf("write %s: negative offset %d", p, offset)
	}
	if _, err := fs.load(ctx, it); err != nil {
		return 0, err
	}

	end := offset + int64(len(data))
	if end > int64(len(it.Content)) {
		it.Content = resize(it.Content, int(end))
	}
	copy(it.Content[offset:], data)

	it.Size = int64(len(it.Content))
	it.Modified = fs.now()
	it.dirty = true
	return len(data), nil
}

// Truncate resizes the buffered content of p, zero padding when it grows.
func (fs *FS) Truncate(ctx context.Context, p string, size int64) error {
	it, err := fs.item(ctx, p)
	if err != nil {
		return err
	}
	if size < 0 {
		return fmt.Errorf("truncate %s: negative size %d", p, size)
	}
	if _, err := fs.load(ctx, it); err != nil {
		return err
	}

	if size == int64(len(it.Content)) {
		return nil
	}
	it.Content = resize(it.Content, int(size))

	it.Size = size
	it.Modified = fs.now()
	it.dirty = true
	return nil
}

// resize returns buf with length n, reusing spare capacity. Bytes past the
// old length are zero.
func resize(buf []byte, n int) []byte {
	old := len(buf)
	if n <= old {
		return buf[:n]
	}
	buf = slices.Grow(buf, n-old)[:n]
	clear(buf[old:])
	return buf
}

func (fs *FS) item(ctx context.Context, p string) (*Item, error) {
	collection, name, err := filePath(p)
	if err != nil {
		return nil, err
	}
	return fs.Lookup(ctx, collection, name)
}
