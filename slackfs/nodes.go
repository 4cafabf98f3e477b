package slackfs

import (
	"context"
	"errors"
	"sync"
	"syscall"

	"bazil.org/fuse"
	"bazil.org/fuse/fs"
	"github.com/dendrascience/slackfs/util"
	"go.uber.org/zap"
)

// Mount binds an FS to bazil.org/fuse. It implements fs.FS.
type Mount struct {
	fs     *FS
	mu     sync.Mutex // held for the whole of every operation
	server *fs.Server
	files  map[string]*File // one node per item path
}

var _ fs.FS = (*Mount)(nil)

// NewMount wraps filesystem for serving.
func NewMount(filesystem *FS) *Mount {
	return &Mount{fs: filesystem, files: make(map[string]*File)}
}

// SetServer registers the server so stale kernel entries can be
// invalidated after a write-back renames a file.
func (m *Mount) SetServer(server *fs.Server) {
	m.server = server
}

// Root returns the root directory node.
func (m *Mount) Root() (fs.Node, error) {
	return &Dir{m: m, path: "/"}, nil
}

// errno translates adapter errors to the bridge's error vocabulary.
func (m *Mount) errno(op, p string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) {
		m.fs.log.Debug(op, zap.String("path", p), zap.Error(err))
		return syscall.ENOENT
	}
	m.fs.log.Error(op, zap.String("path", p), zap.Error(err))
	return syscall.EIO
}

func fillAttr(a *fuse.Attr, attr Attr) {
	a.Inode = attr.Inode
	a.Mode = attr.Mode
	a.Size = attr.Size
	a.Nlink = attr.Nlink
	a.Uid = attr.Uid
	a.Gid = attr.Gid
	a.Atime = attr.Atime
	a.Mtime = attr.Mtime
	a.Ctime = attr.Ctime
}

// Dir is the root or a collection directory.
type Dir struct {
	m    *Mount
	path string
}

var (
	_ fs.Node               = (*Dir)(nil)
	_ fs.NodeStringLookuper = (*Dir)(nil)
	_ fs.HandleReadDirAller = (*Dir)(nil)
	_ fs.NodeCreater        = (*Dir)(nil)
)

// Attr returns directory attributes.
func (d *Dir) Attr(ctx context.Context, a *fuse.Attr) error {
	d.m.mu.Lock()
	defer d.m.mu.Unlock()

	attr, err := d.m.fs.Getattr(ctx, d.path)
	if err != nil {
		return d.m.errno("getattr", d.path, err)
	}
	fillAttr(a, attr)
	return nil
}

// Lookup resolves a child name to a collection directory or an item file.
// Every lookup of the same item returns the same *File.
func (d *Dir) Lookup(ctx context.Context, name string) (fs.Node, error) {
	d.m.mu.Lock()
	defer d.m.mu.Unlock()

	p, err := util.JoinPath(d.path, name)
	if err != nil {
		return nil, syscall.ENOENT
	}
	attr, err := d.m.fs.Getattr(ctx, p)
	if err != nil {
		return nil, d.m.errno("lookup", p, err)
	}
	if attr.IsDir() {
		return &Dir{m: d.m, path: p}, nil
	}
	if file, ok := d.m.files[p]; ok {
		return file, nil
	}
	file := &File{m: d.m, dir: d, name: name, path: p}
	d.m.files[p] = file
	return file, nil
}

// ReadDirAll lists directory contents.
func (d *Dir) ReadDirAll(ctx context.Context) ([]fuse.Dirent, error) {
	d.m.mu.Lock()
	defer d.m.mu.Unlock()

	names, err := d.m.fs.Readdir(ctx, d.path)
	if err != nil {
		return nil, d.m.errno("readdir", d.path, err)
	}

	childType := fuse.DT_File
	if d.path == "/" {
		childType = fuse.DT_Dir
	}

	dirents := make([]fuse.Dirent, 0, len(names))
	for _, name := range names {
		switch name {
		case ".":
			dirents = append(dirents, fuse.Dirent{Inode: util.InodeFor(d.path), Name: name, Type: fuse.DT_Dir})
		case "..":
			dirents = append(dirents, fuse.Dirent{Inode: util.RootInode, Name: name, Type: fuse.DT_Dir})
		default:
			p, err := util.JoinPath(d.path, name)
			if err != nil {
				continue
			}
			dirents = append(dirents, fuse.Dirent{Inode: util.InodeFor(p), Name: name, Type: childType})
		}
	}
	return dirents, nil
}

// Create inserts a placeholder file and opens it for writing.
func (d *Dir) Create(ctx context.Context, req *fuse.CreateRequest, resp *fuse.CreateResponse) (fs.Node, fs.Handle, error) {
	d.m.mu.Lock()
	defer d.m.mu.Unlock()

	p, err := util.JoinPath(d.path, req.Name)
	if err != nil {
		return nil, nil, syscall.ENOENT
	}
	id, err := d.m.fs.Create(ctx, p)
	if err != nil {
		return nil, nil, d.m.errno("create", p, err)
	}
	attr, err := d.m.fs.Getattr(ctx, p)
	if err != nil {
		return nil, nil, d.m.errno("create", p, err)
	}
	fillAttr(&resp.Attr, attr)

	file := &File{m: d.m, dir: d, name: req.Name, path: p}
	d.m.files[p] = file
	return file, &Handle{file: file, id: id, writable: true}, nil
}

// File is an item inside a collection. Its path follows the item when a
// write-back moves it to a new composite key.
type File struct {
	m    *Mount
	dir  *Dir
	name string
	path string
}

var (
	_ fs.Node          = (*File)(nil)
	_ fs.NodeOpener    = (*File)(nil)
	_ fs.NodeSetattrer = (*File)(nil)
	_ fs.NodeFsyncer   = (*File)(nil)
)

// Attr returns file attributes.
func (f *File) Attr(ctx context.Context, a *fuse.Attr) error {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()

	attr, err := f.m.fs.Getattr(ctx, f.path)
	if err != nil {
		return f.m.errno("getattr", f.path, err)
	}
	fillAttr(a, attr)
	return nil
}

// Open allocates a handle; no content is fetched until the first read.
func (f *File) Open(ctx context.Context, req *fuse.OpenRequest, resp *fuse.OpenResponse) (fs.Handle, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()

	id, err := f.m.fs.Open(ctx, f.path, int(req.Flags))
	if err != nil {
		return nil, f.m.errno("open", f.path, err)
	}
	return &Handle{file: f, id: id, writable: !req.Flags.IsReadOnly()}, nil
}

// Setattr handles truncation; other attribute changes are accepted and ignored.
func (f *File) Setattr(ctx context.Context, req *fuse.SetattrRequest, resp *fuse.SetattrResponse) error {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()

	if req.Valid.Size() {
		if err := f.m.fs.Truncate(ctx, f.path, int64(req.Size)); err != nil {
			return f.m.errno("setattr", f.path, err)
		}
	}

	attr, err := f.m.fs.Getattr(ctx, f.path)
	if err != nil {
		return f.m.errno("setattr", f.path, err)
	}
	fillAttr(&resp.Attr, attr)
	return nil
}

// Fsync is a no-op; buffered content is only written back on close.
func (f *File) Fsync(ctx context.Context, req *fuse.FsyncRequest) error {
	return nil
}

// writeBack uploads buffered changes and follows the rename. Called with
// the mount lock held.
func (f *File) writeBack(ctx context.Context) error {
	renamed, err := f.m.fs.Release(ctx, f.path)
	if err != nil {
		return f.m.errno("release", f.path, err)
	}
	if renamed == "" {
		return nil
	}

	oldName := f.name
	delete(f.m.files, f.path)
	f.name = renamed
	f.path, _ = util.JoinPath(f.dir.path, renamed)
	f.m.files[f.path] = f

	if server := f.m.server; server != nil {
		parent := f.dir
		go func() {
			if err := server.InvalidateEntry(parent, oldName); err != nil && !errors.Is(err, fuse.ErrNotCached) {
				f.m.fs.log.Debug("invalidate entry", zap.String("name", oldName), zap.Error(err))
			}
		}()
	}
	return nil
}

// Handle is an open file. It carries the adapter handle id only as a
// liveness token; all reads and writes address the file by path. Only
// writable handles write buffered changes back.
type Handle struct {
	file     *File
	id       FileHandle
	writable bool
	flushed  bool
}

var (
	_ fs.Handle         = (*Handle)(nil)
	_ fs.HandleReader   = (*Handle)(nil)
	_ fs.HandleWriter   = (*Handle)(nil)
	_ fs.HandleFlusher  = (*Handle)(nil)
	_ fs.HandleReleaser = (*Handle)(nil)
)

// ID returns the adapter handle number.
func (h *Handle) ID() FileHandle {
	return h.id
}

// Read reads a byte range of the file.
func (h *Handle) Read(ctx context.Context, req *fuse.ReadRequest, resp *fuse.ReadResponse) error {
	f := h.file
	f.m.mu.Lock()
	defer f.m.mu.Unlock()

	data, err := f.m.fs.Read(ctx, f.path, req.Size, req.Offset)
	if err != nil {
		return f.m.errno("read", f.path, err)
	}
	resp.Data = data
	return nil
}

// Write writes data to the file buffer.
func (h *Handle) Write(ctx context.Context, req *fuse.WriteRequest, resp *fuse.WriteResponse) error {
	f := h.file
	f.m.mu.Lock()
	defer f.m.mu.Unlock()

	n, err := f.m.fs.Write(ctx, f.path, req.Data, req.Offset)
	if err != nil {
		return f.m.errno("write", f.path, err)
	}
	resp.Size = n
	return nil
}

// Flush writes buffered changes back so a failed upload fails close(2).
func (h *Handle) Flush(ctx context.Context, req *fuse.FlushRequest) error {
	f := h.file
	f.m.mu.Lock()
	defer f.m.mu.Unlock()

	if !h.writable {
		return nil
	}
	h.flushed = true
	f.m.fs.log.Debug("flush", zap.String("path", f.path), zap.Uint64("handle", uint64(h.ID())))
	return f.writeBack(ctx)
}

// Release writes back when a writable handle was never flushed. A flush
// that failed is not repeated here.
func (h *Handle) Release(ctx context.Context, req *fuse.ReleaseRequest) error {
	f := h.file
	f.m.mu.Lock()
	defer f.m.mu.Unlock()

	if !h.writable || h.flushed {
		return nil
	}
	f.m.fs.log.Debug("release", zap.String("path", f.path), zap.Uint64("handle", uint64(h.ID())))
	return f.writeBack(ctx)
}
