package slackfs

import (
	"context"
	"os"
	"time"

	"github.com/dendrascience/slackfs/remote"
	"go.uber.org/zap"
)

// FileHandle identifies one open/create ... release sequence. It carries no
// state; content is addressed by path.
type FileHandle uint64

// FS is the filesystem operation adapter. All fields are owned by the single
// operation currently executing; FS itself never locks.
type FS struct {
	client  remote.Client
	catalog *Catalog
	items   map[string]map[string]*Item // collection name -> file name -> item
	handle  FileHandle
	log     *zap.Logger

	uid     uint32
	gid     uint32
	mounted time.Time
	now     func() time.Time
}

// Option configures an FS.
type Option func(*FS)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(fs *FS) {
		if logger != nil {
			fs.log = logger
		}
	}
}

// WithClock replaces time.Now for created and modified timestamps.
func WithClock(now func() time.Time) Option {
	return func(fs *FS) {
		fs.now = now
	}
}

// New builds the adapter and loads the collection catalog. A catalog
// failure is returned as is; at mount time it is fatal.
func New(ctx context.Context, client remote.Client, opts ...Option) (*FS, error) {
	fs := &FS{
		client: client,
		items:  make(map[string]map[string]*Item),
		log:    zap.NewNop(),
		uid:    uint32(os.Getuid()),
		gid:    uint32(os.Getgid()),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(fs)
	}
	fs.mounted = fs.now()

	catalog, err := LoadCatalog(ctx, client)
	if err != nil {
		return nil, err
	}
	fs.catalog = catalog
	fs.log.Info("collection catalog loaded",
		zap.Int("collections", catalog.Len()),
		zap.Stringer("index_lifetime", IndexLifetime),
	)
	return fs, nil
}

// Catalog returns the mount-time collection catalog.
func (fs *FS) Catalog() *Catalog {
	return fs.catalog
}

func (fs *FS) nextHandle() FileHandle {
	fs.handle++
	return fs.handle
}
