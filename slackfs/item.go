package slackfs

import (
	"time"

	"github.com/dendrascience/slackfs/remote"
)

// Item is the in-memory record of one file. An item without an ID is a
// placeholder created locally and not uploaded yet.
type Item struct {
	ID          string
	DisplayName string
	Size        int64
	Created     time.Time
	Modified    time.Time
	SourceURL   string

	// Content is only meaningful once loaded is set. While loaded,
	// Size == len(Content).
	Content []byte
	loaded  bool
	dirty   bool
}

// FileName is the key the item is exposed under.
func (it *Item) FileName() string {
	if it.ID == "" {
		return it.DisplayName
	}
	return it.ID + "_" + it.DisplayName
}

// Pending reports whether the item has not been uploaded yet.
func (it *Item) Pending() bool {
	return it.ID == ""
}

// Loaded reports whether the content is held in memory.
func (it *Item) Loaded() bool {
	return it.loaded
}

// Dirty reports whether the item has buffered changes awaiting write-back.
func (it *Item) Dirty() bool {
	return it.dirty
}

func itemFromRecord(rec remote.ItemRecord) *Item {
	return &Item{
		ID:          rec.ID,
		DisplayName: rec.Name,
		Size:        rec.Size,
		Created:     rec.Created,
		Modified:    rec.Created,
		SourceURL:   rec.DownloadURL,
	}
}

func newPendingItem(name string, now time.Time) *Item {
	return &Item{
		DisplayName: name,
		Created:     now,
		Modified:    now,
		Content:     []byte{},
		loaded:      true,
	}
}

// reconcile maps the server's record of a freshly uploaded item onto the
// local placeholder. Every field is set explicitly; the buffered content is
// kept so the new entry needs no download.
func reconcile(placeholder *Item, rec remote.ItemRecord) *Item {
	merged := &Item{
		ID:          rec.ID,
		DisplayName: rec.Name,
		Size:        rec.Size,
		Created:     rec.Created,
		Modified:    placeholder.Modified,
		SourceURL:   rec.DownloadURL,
		Content:     placeholder.Content,
		loaded:      placeholder.loaded,
	}
	if merged.DisplayName == "" {
		merged.DisplayName = placeholder.DisplayName
	}
	if merged.Created.IsZero() {
		merged.Created = placeholder.Created
	}
	if merged.loaded {
		merged.Size = int64(len(merged.Content))
	}
	return merged
}
