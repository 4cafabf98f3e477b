package remote

import (
	"context"
	"errors"
	"time"
)

// ErrTransport is wrapped by every failure a Client returns.
var ErrTransport = errors.New("remote transport failure")

// DefaultPageLimit is the page size used for collection and item listings.
const DefaultPageLimit = 200

// DefaultCollectionTypes selects public and private channels.
const DefaultCollectionTypes = "public_channel,private_channel"

// Collection is a remote grouping of items.
type Collection struct {
	ID   string
	Name string // normalized display name
}

// ItemRecord is the metadata the remote service reports for one item.
type ItemRecord struct {
	ID          string
	Name        string
	Size        int64
	Created     time.Time
	DownloadURL string
}

// Client is the set of remote primitives the filesystem adapter relies on.
type Client interface {
	ListCollections(ctx context.Context, pageLimit int, typeFilter string) ([]Collection, error)
	ListItems(ctx context.Context, collectionID string, pageLimit int) ([]ItemRecord, error)
	DownloadContent(ctx context.Context, sourceURL string) ([]byte, error)
	UploadContent(ctx context.Context, collectionID, fileName string, data []byte) (ItemRecord, error)
}
