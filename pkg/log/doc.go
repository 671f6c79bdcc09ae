// Package log provides the logging abstraction used across matrixslide.
//
// Components depend on the Logger interface only. The CLI wires a zerolog
// backed implementation; tests and embedders that do not care about output
// use the no-op logger.
//
//	logger := log.NewZerologAdapterWithLogger(zerolog.New(os.Stderr))
//	logger.Info("frame shown", log.Int("index", 2), log.String("url", u))
//
// Implement Logger to route messages into an existing logging setup.
package log
