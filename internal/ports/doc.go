// Package ports defines the interfaces that connect the slideshow runner to
// infrastructure adapters.
//
// # Port Interfaces
//
//   - [Fetcher]: downloads the raw bytes behind an image URL
//   - [Decoder]: turns downloaded bytes into a matrix-sized frame
//   - [Display]: shows a frame on the LED matrix
//   - [Radio]: joins the network and reports the local address
//   - [Clock]: the timed wait between cycles
//   - [Reclaimer]: the memory-reclamation step after each wait
//   - [Logger]: structured logging
//   - [HTTPClient]: HTTP request abstraction for dependency injection
//
// The application layer (internal/app) depends only on these interfaces.
// Adapters under internal/adapters implement them.
package ports
