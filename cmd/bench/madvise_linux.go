//go:build linux

package main

import "golang.org/x/sys/unix"

// adviseSequential hints the kernel that the mapped corpus will be read
// front to back once.
func adviseSequential(data []byte) {
	if len(data) == 0 {
		return
	}
	_ = unix.Madvise(data, unix.MADV_SEQUENTIAL) // advisory only
}
