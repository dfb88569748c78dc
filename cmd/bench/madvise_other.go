//go:build !linux

package main

// adviseSequential is a no-op on platforms without madvise support wired up.
func adviseSequential(data []byte) {}
