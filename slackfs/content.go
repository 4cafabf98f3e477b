package slackfs

import (
	"context"
	"fmt"

	"github.com/dendrascience/slackfs/internal/metrics"
	"go.uber.org/zap"
)

// ContentsOf returns an item's content, downloading it on first use.
// Content is fetched at most once per item for the life of the process.
func (fs *FS) ContentsOf(ctx context.Context, collection, fileName string) ([]byte, error) {
	it, err := fs.Lookup(ctx, collection, fileName)
	if err != nil {
		return nil, err
	}
	return fs.load(ctx, it)
}

func (fs *FS) load(ctx context.Context, it *Item) ([]byte, error) {
	if it.loaded {
		metrics.RecordContentLookup(true)
		return it.Content, nil
	}
	metrics.RecordContentLookup(false)

	data, err := fs.client.DownloadContent(ctx, it.SourceURL)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", it.FileName(), err)
	}
	if data == nil {
		data = []byte{}
	}

	it.Content = data
	it.Size = int64(len(data))
	it.loaded = true

	fs.log.Debug("content fetched",
		zap.String("item", it.FileName()),
		zap.Int("bytes", len(data)),
	)
	return data, nil
}
