// Package util provides small helpers shared by the slackfs packages.
//
// Path helpers split and join the two-level mount paths ("/", "/collection",
// "/collection/file") used by the operation adapter. Inode helpers derive a
// stable inode number from a path, so the same file reports the same inode
// for the whole mount session without any registry.
package util
