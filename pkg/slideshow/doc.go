// Package slideshow provides an embeddable LED-matrix photo slideshow.
//
// A Slideshow joins the network, then loops over a list of BMP image URLs:
// download, decode, show on the matrix, wait, reclaim memory. Failed
// images are logged and skipped; the loop never stops on its own.
//
// # Basic Usage
//
//	cfg := slideshow.DefaultConfig()
//	cfg.WiFiSSID = "home"
//	cfg.WiFiPassword = "secret"
//	cfg.ImageURLs = []string{"https://example.com/a.bmp"}
//
//	s, err := slideshow.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := s.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	<-ctx.Done()
//	_ = s.Stop()
//
// # Displays
//
// Without [WithDisplay] frames go to an in-memory matrix. The matrix
// package under internal/adapters provides a desktop window and an adapter
// for any tinygo drivers.Displayer.
//
// # Lifecycle States
//
// A Slideshow is in one of [StateStopped], [StateConnecting],
// [StateLooping], [StateStopping] or [StateCrashed]. A failed network join
// moves it to StateCrashed and [Slideshow.Err] returns the cause.
package slideshow
