package slackfs

import (
	"context"
	"fmt"

	"github.com/dendrascience/slackfs/internal/metrics"
	"github.com/dendrascience/slackfs/remote"
	"go.uber.org/zap"
)

// ItemsOf returns the item index of a collection, listing the remote items
// on first access. The returned map is the live index.
func (fs *FS) ItemsOf(ctx context.Context, collection string) (map[string]*Item, error) {
	if items, ok := fs.items[collection]; ok {
		return items, nil
	}

	col, ok := fs.catalog.Get(collection)
	if !ok {
		return nil, fmt.Errorf("collection %q: %w", collection, ErrNotFound)
	}

	records, err := fs.client.ListItems(ctx, col.ID, remote.DefaultPageLimit)
	if err != nil {
		// Leave the collection unloaded so the next call lists again.
		return nil, fmt.Errorf("list items of %q: %w", collection, err)
	}

	items := make(map[string]*Item, len(records))
	for _, rec := range records {
		it := itemFromRecord(rec)
		items[it.FileName()] = it
	}
	fs.items[collection] = items
	metrics.AddIndexedItems(len(items))

	fs.log.Debug("item index loaded",
		zap.String("collection", collection),
		zap.Int("items", len(items)),
	)
	return items, nil
}

// Lookup returns the item stored under fileName in a collection.
func (fs *FS) Lookup(ctx context.Context, collection, fileName string) (*Item, error) {
	items, err := fs.ItemsOf(ctx, collection)
	if err != nil {
		return nil, err
	}
	it, ok := items[fileName]
	if !ok {
		return nil, fmt.Errorf("%s/%s: %w", collection, fileName, ErrNotFound)
	}
	return it, nil
}
