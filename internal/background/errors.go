package background

import "errors"

var (
	// ErrNoContext indicates the host could not supply a drawing surface.
	// The page keeps working without the animated layer.
	ErrNoContext = errors.New("background: no drawing context")
	// ErrMounted indicates the mount point already carries a layer.
	ErrMounted = errors.New("background: mount point already occupied")
)
