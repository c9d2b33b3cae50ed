//go:build !windows

// Package wininput injects dispatched pointer and key events into the local
// Windows desktop.
package wininput

// NewDevice reports ErrUnsupported on non-Windows platforms.
func NewDevice() (Device, error) {
	return nil, ErrUnsupported
}
