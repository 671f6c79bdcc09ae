package convert

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/image/bmp"

	"github.com/lisheld/matrixslide/internal/ports"
	"github.com/lisheld/matrixslide/pkg/log"
)

// Converter converts images with fixed options.
type Converter struct {
	opts   Options
	logger ports.Logger
}

// New creates a converter. A nil logger discards output.
func New(opts Options, logger ports.Logger) (*Converter, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Converter{opts: opts, logger: logger}, nil
}

// Convert applies the full pipeline to img.
func (c *Converter) Convert(img image.Image) *image.RGBA {
	out := cropResize(img, c.opts.Width, c.opts.Height)

	adjustContrast(out, c.opts.Contrast)
	adjustBrightness(out, c.opts.Brightness)
	adjustSaturation(out, c.opts.Saturation)

	if c.opts.Quantize {
		out = quantizeColors(out, QuantizeColors)
	}
	if c.opts.Dither {
		out = ditherColors(out, DitherColors)
	}
	return out
}

// ConvertFile reads input, converts it and writes a 24-bit BMP to output.
func (c *Converter) ConvertFile(input, output string) error {
	c.logger.Info("processing", log.String("input", input))

	img, format, err := openImage(input)
	if err != nil {
		return err
	}
	b := img.Bounds()
	c.logger.Debug("decoded",
		log.String("format", format),
		log.Int("width", b.Dx()),
		log.Int("height", b.Dy()),
	)

	out := c.Convert(img)

	if err := writeBMP(output, out); err != nil {
		return err
	}
	c.logger.Info("saved",
		log.String("output", output),
		log.Int("width", out.Bounds().Dx()),
		log.Int("height", out.Bounds().Dy()),
		log.Bool("quantized", c.opts.Quantize),
		log.Bool("dithered", c.opts.Dither),
	)
	return nil
}

// writeBMP replaces path atomically via a temp file in the same directory.
func writeBMP(path string, img *image.RGBA) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".convert-*.bmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := bmp.Encode(tmp, img); err != nil {
		tmp.Close()
		return fmt.Errorf("encode bmp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename output: %w", err)
	}
	return nil
}

// BatchResult summarises a directory conversion.
type BatchResult struct {
	Total     int
	Succeeded int
	Failed    map[string]error
}

// String formats the result the way the batch command reports it.
func (r BatchResult) String() string {
	return fmt.Sprintf("%d/%d images successful", r.Succeeded, r.Total)
}

// OutputPath maps an input file to <outDir>/<stem>.bmp.
func OutputPath(input, outDir string) string {
	base := filepath.Base(input)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outDir, stem+".bmp")
}

// ConvertDir converts every image in inDir (not recursive) into outDir.
// Individual failures are collected, not returned.
func (c *Converter) ConvertDir(inDir, outDir string) (BatchResult, error) {
	res := BatchResult{Failed: map[string]error{}}

	entries, err := os.ReadDir(inDir)
	if err != nil {
		return res, err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return res, fmt.Errorf("create output dir: %w", err)
	}

	var inputs []string
	for _, e := range entries {
		if e.IsDir() || !candidate(e.Name()) {
			continue
		}
		inputs = append(inputs, filepath.Join(inDir, e.Name()))
	}
	sort.Strings(inputs)

	if len(inputs) == 0 {
		c.logger.Warn("no supported image files found", log.String("dir", inDir))
		return res, nil
	}
	c.logger.Info("found images to convert", log.Int("count", len(inputs)))

	for _, in := range inputs {
		res.Total++
		if err := c.ConvertFile(in, OutputPath(in, outDir)); err != nil {
			c.logger.Error("conversion failed", log.String("input", in), log.Err(err))
			res.Failed[in] = err
			continue
		}
		res.Succeeded++
	}
	return res, nil
}
