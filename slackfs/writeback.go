package slackfs

import (
	"context"
	"fmt"

	"github.com/dendrascience/slackfs/internal/metrics"
	"go.uber.org/zap"
)

// Release writes buffered changes of p back to the remote service. On
// success the entry moves to the composite key of the uploaded item, which
// is returned as renamed. A path without buffered changes is a no-op.
//
// When the upload fails the placeholder stays where it is with its content
// intact and the error wraps ErrUploadFailed. Nothing is retried.
func (fs *FS) Release(ctx context.Context, p string) (renamed string, err error) {
	collection, name, err := filePath(p)
	if err != nil {
		return "", err
	}
	it, err := fs.Lookup(ctx, collection, name)
	if err != nil {
		return "", err
	}
	if !it.dirty {
		return "", nil
	}

	col, ok := fs.catalog.Get(collection)
	if !ok {
		return "", fmt.Errorf("collection %q: %w", collection, ErrNotFound)
	}
	content, err := fs.ContentsOf(ctx, collection, name)
	if err != nil {
		return "", err
	}

	rec, err := fs.client.UploadContent(ctx, col.ID, it.DisplayName, content)
	metrics.RecordWriteBack(len(content), err)
	if err != nil {
		fs.log.Error("write-back failed",
			zap.String("path", p),
			zap.Int("bytes", len(content)),
			zap.Error(err),
		)
		return "", fmt.Errorf("%w: %s: %w", ErrUploadFailed, p, err)
	}

	merged := reconcile(it, rec)
	items := fs.items[collection]
	delete(items, name)
	items[merged.FileName()] = merged

	fs.log.Info("write-back complete",
		zap.String("path", p),
		zap.String("item", merged.FileName()),
		zap.Int64("size", merged.Size),
	)
	return merged.FileName(), nil
}
