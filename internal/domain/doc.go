// Package domain contains the core entities of the slideshow.
//
// It has no dependencies on infrastructure (HTTP, display hardware,
// logging) and holds only the rules of the slideshow itself.
//
//   - [Playlist]: the immutable URL list and its round-robin cursor
//   - [Frame]: one decoded image sized to the matrix
//   - [Credentials]: network join credentials
package domain
