package slackfs

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/dendrascience/slackfs/util"
)

const (
	dirMode  = os.ModeDir | 0o700
	fileMode = os.FileMode(0o600)
)

// Attr is the attribute set reported for a path.
type Attr struct {
	Inode uint64
	Mode  os.FileMode
	Size  uint64
	Nlink uint32
	Uid   uint32
	Gid   uint32
	Atime time.Time
	Mtime time.Time
	Ctime time.Time
}

// IsDir reports whether the attributes describe a directory.
func (a Attr) IsDir() bool {
	return a.Mode.IsDir()
}

// Getattr reports directory attributes for the root and for every catalog
// collection, and regular file attributes for an indexed item.
func (fs *FS) Getattr(ctx context.Context, p string) (Attr, error) {
	segments := util.SplitPath(p)
	switch len(segments) {
	case 0:
		return fs.dirAttr(p), nil
	case 1:
		if _, ok := fs.catalog.Get(segments[0]); !ok {
			return Attr{}, fmt.Errorf("collection %q: %w", segments[0], ErrNotFound)
		}
		return fs.dirAttr(p), nil
	case 2:
		it, err := fs.Lookup(ctx, segments[0], segments[1])
		if err != nil {
			return Attr{}, err
		}
		return Attr{
			Inode: util.InodeFor(p),
			Mode:  fileMode,
			Size:  uint64(it.Size),
			Nlink: 1,
			Uid:   fs.uid,
			Gid:   fs.gid,
			Atime: fs.now(),
			Mtime: it.Modified,
			Ctime: it.Created,
		}, nil
	}
	return Attr{}, fmt.Errorf("%s: %w", p, ErrNotFound)
}

func (fs *FS) dirAttr(p string) Attr {
	return Attr{
		Inode: util.InodeFor(p),
		Mode:  dirMode,
		Nlink: 2,
		Uid:   fs.uid,
		Gid:   fs.gid,
		Atime: fs.now(),
		Mtime: fs.mounted,
		Ctime: fs.mounted,
	}
}

// Readdir lists the root (collection names) or a collection (item file
// names, sorted), always preceded by "." and "..".
func (fs *FS) Readdir(ctx context.Context, p string) ([]string, error) {
	names := []string{".", ".."}

	segments := util.SplitPath(p)
	switch len(segments) {
	case 0:
		return append(names, fs.catalog.Names()...), nil
	case 1:
		items, err := fs.ItemsOf(ctx, segments[0])
		if err != nil {
			return nil, err
		}
		keys := make([]string, 0, len(items))
		for key := range items {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		return append(names, keys...), nil
	}
	return nil, fmt.Errorf("%s: %w", p, ErrNotFound)
}

// Open allocates a handle. Content is fetched lazily by the first Read.
func (fs *FS) Open(ctx context.Context, p string, flags int) (FileHandle, error) {
	return fs.nextHandle(), nil
}

// Read returns a copy of content[offset:offset+length], clamped to the end
// of the content. Reading past the end yields fewer or no bytes, never an
// error.
func (fs *FS) Read(ctx context.Context, p string, length int, offset int64) ([]byte, error) {
	collection, name, err := filePath(p)
	if err != nil {
		return nil, err
	}
	content, err := fs.ContentsOf(ctx, collection, name)
	if err != nil {
		return nil, err
	}

	size := int64(len(content))
	if offset < 0 || length <= 0 || offset >= size {
		return []byte{}, nil
	}
	end := offset + int64(length)
	if end > size {
		end = size
	}
	// The caller keeps the result after the mount lock is released.
	out := make([]byte, end-offset)
	copy(out, content[offset:end])
	return out, nil
}

// filePath splits a two-segment path into collection and file name.
func filePath(p string) (collection, name string, err error) {
	segments := util.SplitPath(p)
	if len(segments) != 2 {
		return "", "", fmt.Errorf("%s: %w", p, ErrNotFound)
	}
	return segments[0], segments[1], nil
}
