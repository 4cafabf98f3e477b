package slackfs

import (
	"context"
	"fmt"

	"github.com/dendrascience/slackfs/remote"
)

// Catalog is the snapshot of collections taken at mount time, keyed by
// normalized collection name.
type Catalog struct {
	order  []string
	byName map[string]remote.Collection
}

// LoadCatalog lists the first page of collections. There is no refresh: a
// collection created remotely after this call is never visible.
func LoadCatalog(ctx context.Context, client remote.Client) (*Catalog, error) {
	collections, err := client.ListCollections(ctx, remote.DefaultPageLimit, remote.DefaultCollectionTypes)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	return NewCatalog(collections), nil
}

// NewCatalog builds a catalog from a listing. A later collection with an
// already seen name replaces the earlier one but keeps its position.
func NewCatalog(collections []remote.Collection) *Catalog {
	c := &Catalog{byName: make(map[string]remote.Collection, len(collections))}
	for _, col := range collections {
		if _, seen := c.byName[col.Name]; !seen {
			c.order = append(c.order, col.Name)
		}
		c.byName[col.Name] = col
	}
	return c
}

// Names returns collection names in listing order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.order))
	copy(names, c.order)
	return names
}

// Get returns the collection registered under name.
func (c *Catalog) Get(name string) (remote.Collection, bool) {
	col, ok := c.byName[name]
	return col, ok
}

// Len returns the number of collections.
func (c *Catalog) Len() int {
	return len(c.order)
}
