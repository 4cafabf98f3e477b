package slackfs

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/dendrascience/slackfs/remote"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

var testNow = time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)

func newTestFS(t *testing.T, client *fakeClient) *FS {
	t.Helper()
	fs, err := New(context.Background(), client,
		WithLogger(zaptest.NewLogger(t)),
		WithClock(func() time.Time { return testNow }),
	)
	require.NoError(t, err)
	return fs
}

func TestNewCatalogFailure(t *testing.T) {
	client := newFakeClient()
	client.listCollectionsErr = fmt.Errorf("%w: status 500", remote.ErrTransport)

	_, err := New(context.Background(), client)
	require.Error(t, err)
	assert.ErrorIs(t, err, remote.ErrTransport)
}

func TestGetattrRoot(t *testing.T) {
	fs := newTestFS(t, newFakeClient().withGeneral())

	attr, err := fs.Getattr(context.Background(), "/")
	require.NoError(t, err)
	assert.True(t, attr.IsDir())
	assert.Equal(t, dirMode, attr.Mode)
	assert.Equal(t, uint32(2), attr.Nlink)
	assert.Equal(t, testNow, attr.Mtime)
}

func TestGetattrCollection(t *testing.T) {
	client := newFakeClient().withGeneral()
	fs := newTestFS(t, client)

	attr, err := fs.Getattr(context.Background(), "/general")
	require.NoError(t, err)
	assert.True(t, attr.IsDir())
	assert.Equal(t, uint32(2), attr.Nlink)
	assert.Zero(t, client.listItemsCalls["C1"], "getattr on a collection must not list its items")
}

func TestGetattrUnknownCollection(t *testing.T) {
	fs := newTestFS(t, newFakeClient().withGeneral())

	_, err := fs.Getattr(context.Background(), "/random")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetattrItem(t *testing.T) {
	fs := newTestFS(t, newFakeClient().withGeneral())

	attr, err := fs.Getattr(context.Background(), "/general/F1_notes.txt")
	require.NoError(t, err)
	assert.False(t, attr.IsDir())
	assert.Equal(t, fileMode, attr.Mode)
	assert.Equal(t, uint64(5), attr.Size)
	assert.Equal(t, uint32(1), attr.Nlink)
	assert.Equal(t, time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), attr.Ctime)
	assert.Equal(t, attr.Ctime, attr.Mtime)
}

func TestGetattrMissingItem(t *testing.T) {
	fs := newTestFS(t, newFakeClient().withGeneral())

	for _, p := range []string{"/general/notes.txt", "/general/F2_other.txt", "/general/F1_notes.txt/deeper"} {
		_, err := fs.Getattr(context.Background(), p)
		assert.ErrorIs(t, err, ErrNotFound, p)
	}
}

func TestReaddirRoot(t *testing.T) {
	client := newFakeClient().withGeneral()
	client.collections = append(client.collections, remote.Collection{ID: "C2", Name: "random"})
	fs := newTestFS(t, client)

	names, err := fs.Readdir(context.Background(), "/")
	require.NoError(t, err)
	assert.Equal(t, []string{".", "..", "general", "random"}, names)
}

func TestReaddirCollection(t *testing.T) {
	client := newFakeClient().withGeneral()
	client.addItem("C1", remote.ItemRecord{ID: "F0", Name: "alpha.txt", DownloadURL: "https://files.example/F0"}, []byte("a"))
	fs := newTestFS(t, client)

	names, err := fs.Readdir(context.Background(), "/general")
	require.NoError(t, err)
	assert.Equal(t, []string{".", "..", "F0_alpha.txt", "F1_notes.txt"}, names)
	assert.Zero(t, client.totalDownloads(), "listing must not download content")
}

func TestReaddirUnknownCollection(t *testing.T) {
	fs := newTestFS(t, newFakeClient().withGeneral())

	_, err := fs.Readdir(context.Background(), "/random")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestIndexListedOnce(t *testing.T) {
	client := newFakeClient().withGeneral()
	fs := newTestFS(t, client)
	ctx := context.Background()

	first, err := fs.ItemsOf(ctx, "general")
	require.NoError(t, err)
	second, err := fs.ItemsOf(ctx, "general")
	require.NoError(t, err)

	_, err = fs.Readdir(ctx, "/general")
	require.NoError(t, err)
	_, err = fs.Getattr(ctx, "/general/F1_notes.txt")
	require.NoError(t, err)

	assert.Len(t, first, 1)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, client.listItemsCalls["C1"])
}

func TestIndexFailureIsRetried(t *testing.T) {
	client := newFakeClient().withGeneral()
	fs := newTestFS(t, client)
	ctx := context.Background()

	client.listItemsErr = fmt.Errorf("%w: status 503", remote.ErrTransport)
	_, err := fs.ItemsOf(ctx, "general")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))

	client.listItemsErr = nil
	items, err := fs.ItemsOf(ctx, "general")
	require.NoError(t, err)
	assert.Contains(t, items, "F1_notes.txt")
	assert.Equal(t, 2, client.listItemsCalls["C1"])
}

func TestReadFetchesOnce(t *testing.T) {
	client := newFakeClient().withGeneral()
	fs := newTestFS(t, client)
	ctx := context.Background()

	_, err := fs.Open(ctx, "/general/F1_notes.txt", 0)
	require.NoError(t, err)
	assert.Zero(t, client.totalDownloads(), "open must not download")

	data, err := fs.Read(ctx, "/general/F1_notes.txt", 100, 0)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), data)

	again, err := fs.Read(ctx, "/general/F1_notes.txt", 100, 0)
	require.NoError(t, err)
	assert.Equal(t, data, again)
	assert.Equal(t, 1, client.downloadCalls["https://files.example/F1"])
}

func TestReadClamps(t *testing.T) {
	fs := newTestFS(t, newFakeClient().withGeneral())
	ctx := context.Background()

	tests := []struct {
		name   string
		length int
		offset int64
		want   []byte
	}{
		{name: "prefix", length: 3, offset: 0, want: []byte("hel")},
		{name: "middle", length: 2, offset: 1, want: []byte("el")},
		{name: "past end", length: 10, offset: 3, want: []byte("lo")},
		{name: "at end", length: 10, offset: 5, want: []byte{}},
		{name: "beyond end", length: 10, offset: 100, want: []byte{}},
		{name: "zero length", length: 0, offset: 0, want: []byte{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := fs.Read(ctx, "/general/F1_notes.txt", tt.length, tt.offset)
			require.NoError(t, err)
			assert.Equal(t, tt.want, data)
		})
	}
}

func TestReadMissingItem(t *testing.T) {
	fs := newTestFS(t, newFakeClient().withGeneral())

	_, err := fs.Read(context.Background(), "/general/F9_gone.txt", 10, 0)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReadDownloadFailure(t *testing.T) {
	client := newFakeClient().withGeneral()
	delete(client.content, "https://files.example/F1")
	fs := newTestFS(t, client)

	_, err := fs.Read(context.Background(), "/general/F1_notes.txt", 10, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, remote.ErrTransport)
	assert.False(t, errors.Is(err, ErrNotFound))

	it, err := fs.Lookup(context.Background(), "general", "F1_notes.txt")
	require.NoError(t, err)
	assert.False(t, it.Loaded())
}

func TestOpenHandlesAreFresh(t *testing.T) {
	fs := newTestFS(t, newFakeClient().withGeneral())
	ctx := context.Background()

	a, err := fs.Open(ctx, "/general/F1_notes.txt", 0)
	require.NoError(t, err)
	b, err := fs.Open(ctx, "/general/F1_notes.txt", 0)
	require.NoError(t, err)
	c, err := fs.Create(ctx, "/general/new.txt")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.NotEqual(t, b, c)
	assert.NotEqual(t, a, c)
}

func TestReadResultIsStable(t *testing.T) {
	fs := newTestFS(t, newFakeClient().withGeneral())
	ctx := context.Background()

	first, err := fs.Read(ctx, "/general/F1_notes.txt", 5, 0)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), first)

	_, err = fs.Write(ctx, "/general/F1_notes.txt", []byte("J"), 0)
	require.NoError(t, err)

	assert.Equal(t, []byte("hello"), first, "earlier read result must not see later writes")
	second, err := fs.Read(ctx, "/general/F1_notes.txt", 5, 0)
	require.NoError(t, err)
	assert.Equal(t, []byte("Jello"), second)
}
