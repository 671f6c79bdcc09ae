package domain

// Playlist is the ordered, immutable list of image URLs plus the cursor
// that walks it round-robin.
type Playlist struct {
	urls  []string
	index int
}

// NewPlaylist copies urls into a playlist positioned at the first entry.
// An empty list yields ErrEmptyPlaylist.
func NewPlaylist(urls []string) (*Playlist, error) {
	if len(urls) == 0 {
		return nil, ErrEmptyPlaylist
	}
	cp := make([]string, len(urls))
	copy(cp, urls)
	return &Playlist{urls: cp}, nil
}

// Current returns the URL under the cursor.
func (p *Playlist) Current() string {
	return p.urls[p.index]
}

// Index returns the cursor position.
func (p *Playlist) Index() int {
	return p.index
}

// Len returns the number of URLs.
func (p *Playlist) Len() int {
	return len(p.urls)
}

// Advance moves the cursor one step, wrapping to zero after the last URL.
func (p *Playlist) Advance() {
	p.index = (p.index + 1) % len(p.urls)
}

// URLs returns a copy of the list.
func (p *Playlist) URLs() []string {
	cp := make([]string, len(p.urls))
	copy(cp, p.urls)
	return cp
}
