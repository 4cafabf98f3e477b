package util

import (
	"github.com/taigrr/colorhash"
)

// RootInode is the inode of the mount root.
const RootInode uint64 = 1

// InodeFor derives the inode number reported for a mount path. The root is
// always RootInode; every other path hashes to a value above it. Equal paths
// always map to the same inode, distinct paths may collide.
func InodeFor(p string) uint64 {
	p = CleanPath(p)
	if p == "/" {
		return RootInode
	}
	h := uint64(colorhash.HashString(p))
	if h <= RootInode {
		h += RootInode + 1
	}
	return h
}
