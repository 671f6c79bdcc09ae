package ports

import (
	"context"
	"net"
	"time"

	"github.com/lisheld/matrixslide/internal/domain"
)

// Fetcher downloads the body behind a URL.
type Fetcher interface {
	// Fetch returns the complete response body. Transport errors and
	// non-200 responses are reported as errors wrapping domain.ErrFetch.
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Decoder turns fetched bytes into a frame.
type Decoder interface {
	// Decode returns a frame of exactly width x height pixels or an error
	// wrapping domain.ErrDecode.
	Decode(data []byte, width, height int) (*domain.Frame, error)
}

// Display is the LED matrix. Show replaces the whole visible frame at once.
type Display interface {
	Size() (width, height int)
	Show(frame *domain.Frame) error
	Close() error
}

// Radio brings up the network session.
type Radio interface {
	// Connect joins the network, applying the radio's own retry policy.
	Connect(ctx context.Context, creds domain.Credentials) error

	// Address returns the local address once connected.
	Address() net.IP
}

// Clock provides the cancellable wait between cycles.
type Clock interface {
	Now() time.Time
	Sleep(ctx context.Context, d time.Duration) error
}

// Reclaimer runs after every wait to give memory back.
type Reclaimer interface {
	Reclaim()
}
