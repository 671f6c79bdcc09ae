package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/lisheld/matrixslide/internal/convert"
	"github.com/lisheld/matrixslide/pkg/log"
)

func newConvertCmd(lf *logFlags) *cobra.Command {
	opts := convert.DefaultOptions()
	size := []int{opts.Width, opts.Height}
	var (
		watch    bool
		debounce time.Duration
	)

	cmd := &cobra.Command{
		Use:   "convert INPUT OUTPUT",
		Short: "Convert images to LED-optimized 24-bit BMPs",
		Long: `Convert a photo, or every photo in a directory, into a bitmap sized and
tuned for the LED matrix. JPEG, PNG, GIF, BMP, TIFF and WebP are read.
When INPUT is a directory OUTPUT is a directory too.`,
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(size) != 2 {
				return fmt.Errorf("--size takes two values: width,height")
			}
			opts.Width, opts.Height = size[0], size[1]

			zl := lf.logger()
			conv, err := convert.New(opts, log.NewZerologAdapterWithLogger(zl))
			if err != nil {
				return err
			}

			input, output := args[0], args[1]
			st, err := os.Stat(input)
			if err != nil {
				return fmt.Errorf("%s is not a valid file or directory", input)
			}

			if !st.IsDir() {
				if watch {
					return fmt.Errorf("--watch needs an input directory")
				}
				return conv.ConvertFile(input, output)
			}

			if watch && convert.SameDir(input, output) {
				return fmt.Errorf("--watch needs an output directory other than %s", input)
			}

			res, err := conv.ConvertDir(input, output)
			if err != nil {
				return err
			}
			if res.Total > 0 {
				cmd.Printf("Conversion complete: %s\n", res)
			}

			if !watch {
				return nil
			}
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return convert.NewWatcher(conv, input, output, debounce).Run(ctx)
		},
	}

	f := cmd.Flags()
	f.BoolVar(&opts.Dither, "dither", false, "apply LED-optimized Floyd-Steinberg dithering (64 colours)")
	f.BoolVar(&opts.Quantize, "quantize", false, "reduce to a 256 colour median-cut palette")
	f.Float64Var(&opts.Brightness, "brightness", opts.Brightness, "brightness factor (0.1-1.0)")
	f.Float64Var(&opts.Contrast, "contrast", opts.Contrast, "contrast factor (0.5-2.0)")
	f.Float64Var(&opts.Saturation, "saturation", opts.Saturation, "saturation factor")
	f.IntSliceVar(&size, "size", size, "matrix size as width,height")
	f.BoolVar(&watch, "watch", false, "keep running and convert new images in INPUT")
	f.DurationVar(&debounce, "debounce", convert.DefaultDebounce, "quiet period before converting a changed file")

	return cmd
}
