// Package mmap maps local embedding files read-only so they can be scanned
// without copying them onto the Go heap first.
package mmap
