package snapshot

import "errors"

// ErrBuildLocked indicates another build holds the snapshot lock.
var ErrBuildLocked = errors.New("another snapshot build is in progress")

// ErrUnsupportedVersion indicates a snapshot written by a different format version.
var ErrUnsupportedVersion = errors.New("unsupported snapshot version")
