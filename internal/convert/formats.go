package convert

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	// Registered decoders.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrUnsupportedFormat is returned for files no registered decoder reads.
var ErrUnsupportedFormat = errors.New("unsupported image format")

var supportedExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
	".webp": true,
}

// heifExts are recognised so they can be reported clearly; no pure-Go
// HEIF decoder is available.
var heifExts = map[string]bool{
	".heic": true,
	".heif": true,
}

// Supported reports whether path has an extension the converter reads.
func Supported(path string) bool {
	return supportedExts[strings.ToLower(filepath.Ext(path))]
}

func candidate(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return supportedExts[ext] || heifExts[ext]
}

// openImage decodes the image at path.
func openImage(path string) (image.Image, string, error) {
	if heifExts[strings.ToLower(filepath.Ext(path))] {
		return nil, "", fmt.Errorf("%w: HEIC/HEIF (convert to JPEG first)", ErrUnsupportedFormat)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(path))
		}
		return nil, "", fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return img, format, nil
}
