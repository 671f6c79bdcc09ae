package domain

import "errors"

// Errors returned by the slideshow. Check them with errors.Is.
var (
	// ErrAlreadyRunning is returned when Start() is called on a running instance.
	ErrAlreadyRunning = errors.New("matrixslide: already running")

	// ErrNotRunning is returned when Stop() is called on a stopped instance.
	ErrNotRunning = errors.New("matrixslide: not running")

	// ErrShutdownTimeout is returned when graceful shutdown times out.
	ErrShutdownTimeout = errors.New("matrixslide: shutdown timeout")

	// ErrEmptyPlaylist is returned when no image URLs are configured.
	ErrEmptyPlaylist = errors.New("matrixslide: image url list is empty")

	// ErrMissingCredentials is returned when the WiFi SSID or password is absent.
	ErrMissingCredentials = errors.New("matrixslide: wifi credentials not found")

	// ErrNetworkUnreachable is returned when the network could not be joined.
	ErrNetworkUnreachable = errors.New("matrixslide: network unreachable")

	// ErrFetch marks a per-image download failure.
	ErrFetch = errors.New("matrixslide: fetch failed")

	// ErrDecode marks a per-image decode failure.
	ErrDecode = errors.New("matrixslide: decode failed")
)
