package slackfs

import (
	"context"
	"fmt"
	"time"

	"github.com/dendrascience/slackfs/remote"
)

// fakeClient is an in-memory remote.Client that counts every call.
type fakeClient struct {
	collections []remote.Collection
	items       map[string][]remote.ItemRecord // collection id -> records
	content     map[string][]byte              // download url -> bytes

	listCollectionsErr error
	listItemsErr       error
	uploadErr          error

	listCollectionsCalls int
	listItemsCalls       map[string]int
	downloadCalls        map[string]int
	uploads              []fakeUpload
	nextID               int
}

type fakeUpload struct {
	collectionID string
	fileName     string
	data         []byte
}

var _ remote.Client = (*fakeClient)(nil)

func newFakeClient() *fakeClient {
	return &fakeClient{
		items:          make(map[string][]remote.ItemRecord),
		content:        make(map[string][]byte),
		listItemsCalls: make(map[string]int),
		downloadCalls:  make(map[string]int),
	}
}

// withGeneral seeds one collection "general" holding F1_notes.txt.
func (c *fakeClient) withGeneral() *fakeClient {
	c.collections = append(c.collections, remote.Collection{ID: "C1", Name: "general"})
	c.addItem("C1", remote.ItemRecord{
		ID:          "F1",
		Name:        "notes.txt",
		Size:        5,
		Created:     time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		DownloadURL: "https://files.example/F1",
	}, []byte("hello"))
	return c
}

func (c *fakeClient) addItem(collectionID string, rec remote.ItemRecord, data []byte) {
	c.items[collectionID] = append(c.items[collectionID], rec)
	c.content[rec.DownloadURL] = data
}

func (c *fakeClient) ListCollections(ctx context.Context, pageLimit int, typeFilter string) ([]remote.Collection, error) {
	c.listCollectionsCalls++
	if c.listCollectionsErr != nil {
		return nil, c.listCollectionsErr
	}
	return c.collections, nil
}

func (c *fakeClient) ListItems(ctx context.Context, collectionID string, pageLimit int) ([]remote.ItemRecord, error) {
	c.listItemsCalls[collectionID]++
	if c.listItemsErr != nil {
		return nil, c.listItemsErr
	}
	records := c.items[collectionID]
	if len(records) > pageLimit {
		records = records[:pageLimit]
	}
	return records, nil
}

func (c *fakeClient) DownloadContent(ctx context.Context, sourceURL string) ([]byte, error) {
	c.downloadCalls[sourceURL]++
	data, ok := c.content[sourceURL]
	if !ok {
		return nil, fmt.Errorf("%w: download %s: status 404", remote.ErrTransport, sourceURL)
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (c *fakeClient) UploadContent(ctx context.Context, collectionID, fileName string, data []byte) (remote.ItemRecord, error) {
	if c.uploadErr != nil {
		return remote.ItemRecord{}, c.uploadErr
	}
	stored := make([]byte, len(data))
	copy(stored, data)
	c.uploads = append(c.uploads, fakeUpload{collectionID: collectionID, fileName: fileName, data: stored})

	c.nextID++
	rec := remote.ItemRecord{
		ID:          fmt.Sprintf("FNEW%d", c.nextID),
		Name:        fileName,
		Size:        int64(len(data)),
		Created:     time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		DownloadURL: fmt.Sprintf("https://files.example/FNEW%d", c.nextID),
	}
	c.addItem(collectionID, rec, stored)
	return rec, nil
}

func (c *fakeClient) totalDownloads() int {
	total := 0
	for _, n := range c.downloadCalls {
		total += n
	}
	return total
}
