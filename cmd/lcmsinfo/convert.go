package main

import (
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/jrshoare/golcms"
	"github.com/spf13/cobra"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var convertCmd = &cobra.Command{
	Use:   "convert <input image> <output image>",
	Short: "Convert an RGB image between profiles",
	Long: `Convert decodes a PNG, JPEG, TIFF, BMP or WebP image, transforms it from the
input to the output RGB profile and writes it as PNG, JPEG, TIFF or BMP, chosen
by the output file extension. Alpha is carried through unchanged.`,
	Args: cobra.ExactArgs(2),
	RunE: runConvert,
}

var jpegQuality int

func init() {
	convertCmd.Flags().IntVar(&jpegQuality, "quality", 90, "JPEG quality")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	img, err := readImage(args[0])
	if err != nil {
		return err
	}
	intent, err := golcms.ParseIntent(cfg.Intent)
	if err != nil {
		return err
	}

	ctx, err := golcms.NewContext(nil)
	if err != nil {
		return err
	}
	defer ctx.Close()

	src, err := openProfile(ctx, cfg.Input)
	if err != nil {
		return fmt.Errorf("input profile: %w", err)
	}
	dst, err := openProfile(ctx, cfg.Output)
	if err != nil {
		return fmt.Errorf("output profile: %w", err)
	}
	for _, p := range []*golcms.Profile{src, dst} {
		if cs, _ := p.ColorSpace(); cs != golcms.ColorSpaceRGB {
			return fmt.Errorf("profile is %s, convert needs RGB profiles", cs)
		}
	}
	t, err := golcms.NewTransform(ctx, src, golcms.TypeRGBA8, dst, golcms.TypeRGBA8, intent, cfg.flags()|golcms.FlagCopyAlpha)
	if err != nil {
		return err
	}
	defer t.Close()

	out, err := transformImage(t, img)
	if err != nil {
		return err
	}
	slog.Debug("converted", "width", out.Rect.Dx(), "height", out.Rect.Dy(), "intent", intent)
	return writeImage(args[1], out)
}

// transformImage runs every row of img through t, which must map RGBA8 to
// RGBA8.
func transformImage(t *golcms.Transform, img image.Image) (*image.NRGBA, error) {
	b := img.Bounds()
	in, ok := img.(*image.NRGBA)
	if !ok || in.Rect.Min != (image.Point{}) {
		in = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(in, in.Rect, img, b.Min, draw.Src)
	}
	out := image.NewNRGBA(in.Rect)
	w, h := in.Rect.Dx(), in.Rect.Dy()
	if err := t.DoLineStride(in.Pix, out.Pix, w, h, in.Stride, out.Stride, 0, 0); err != nil {
		return nil, err
	}
	return out, nil
}

func readImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	slog.Debug("decoded", "path", path, "format", format)
	return img, nil
}

func writeImage(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := encodeImage(f, strings.ToLower(filepath.Ext(path)), img); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}

func encodeImage(w io.Writer, ext string, img image.Image) error {
	switch ext {
	case ".png":
		return png.Encode(w, img)
	case ".jpg", ".jpeg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: jpegQuality})
	case ".tif", ".tiff":
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	case ".bmp":
		return bmp.Encode(w, img)
	}
	return fmt.Errorf("no encoder for %q", ext)
}
