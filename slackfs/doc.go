// Package slackfs presents a remote collection store as a two-level FUSE
// filesystem: collections are top-level directories and the items shared in
// them are files named "{id}_{displayName}".
//
// The package is split in two layers. FS is the path-addressed operation
// adapter (Getattr, Readdir, Open, Read, Write, Create, Release, Truncate)
// holding the collection catalog, the per-collection item index, memoized
// item content and the pending-create buffer. It performs no locking and
// must only be driven by one operation at a time. Mount binds FS to
// bazil.org/fuse and provides that serialization: every node and handle
// method holds a single mutex for the whole call, including any network
// round trip.
//
// Caching policy:
//   - the catalog is built once by New and never refreshed
//   - an item index is loaded on first access to its collection and kept for
//     the life of the process (IndexLifetime)
//   - item content is downloaded at most once and never evicted
//   - writes stay in memory until the file is flushed or released, then the
//     whole buffer is uploaded as a new remote item
//
// Known staleness window: nothing checks whether a remote item changed
// between the listing or content fetch that populated the cache and a later
// write-back. A remote change made after mount is never observed.
package slackfs
