package hekate

import "errors"

var (
	// ErrNoBootDisk means no candidate boot disk path exists. The resolved
	// BootDisk still carries the last fallback path.
	ErrNoBootDisk = errors.New("boot disk not found")

	// ErrUnsupportedEntry is returned when an entry has no reboot mapping.
	ErrUnsupportedEntry = errors.New("entry has no reboot action")
)
