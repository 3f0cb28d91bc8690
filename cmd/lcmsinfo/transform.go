package main

import (
	"fmt"
	"io"

	"github.com/jrshoare/golcms"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/cobra"
)

var transformCmd = &cobra.Command{
	Use:   "transform <#rrggbb>...",
	Short: "Run hex RGB colours through the input and output profiles",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTransform,
}

func init() {
	rootCmd.AddCommand(transformCmd)
}

func runTransform(cmd *cobra.Command, args []string) error {
	in := make([]uint8, 0, 3*len(args))
	for _, a := range args {
		c, err := colorful.Hex(a)
		if err != nil {
			return fmt.Errorf("colour %q: %w", a, err)
		}
		r, g, b := c.RGB255()
		in = append(in, r, g, b)
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
	if cs, _ := src.ColorSpace(); cs != golcms.ColorSpaceRGB {
		return fmt.Errorf("input profile is %s, want RGB", cs)
	}
	dst, err := openProfile(ctx, cfg.Output)
	if err != nil {
		return fmt.Errorf("output profile: %w", err)
	}
	space, err := dst.ColorSpace()
	if err != nil {
		return err
	}
	f, err := outputFormat(space)
	if err != nil {
		return err
	}

	t, err := golcms.NewTransform(ctx, src, golcms.TypeRGB8, dst, f.format, intent, cfg.flags())
	if err != nil {
		return err
	}
	defer t.Close()

	out := make([]float64, f.channels*len(args))
	if err := golcms.DoSlice(t, in, out, len(args)); err != nil {
		return err
	}
	for i, a := range args {
		f.print(cmd.OutOrStdout(), a, out[i*f.channels:(i+1)*f.channels])
	}
	return nil
}

// colourOutput prints transformed colours of one output colour space.
type colourOutput struct {
	format   golcms.PixelFormat
	channels int
	print    func(w io.Writer, in string, v []float64)
}

func outputFormat(space golcms.ColorSpace) (colourOutput, error) {
	switch space {
	case golcms.ColorSpaceRGB:
		return colourOutput{golcms.TypeRGBDbl, 3, func(w io.Writer, in string, v []float64) {
			c := colorful.Color{R: v[0], G: v[1], B: v[2]}.Clamped()
			fmt.Fprintf(w, "%s -> %s\n", in, c.Hex())
		}}, nil
	case golcms.ColorSpaceLab:
		return colourOutput{golcms.TypeLabDbl, 3, func(w io.Writer, in string, v []float64) {
			fmt.Fprintf(w, "%s -> L*=%.2f a*=%.2f b*=%.2f\n", in, v[0], v[1], v[2])
		}}, nil
	case golcms.ColorSpaceXYZ:
		return colourOutput{golcms.TypeXYZDbl, 3, func(w io.Writer, in string, v []float64) {
			fmt.Fprintf(w, "%s -> X=%.4f Y=%.4f Z=%.4f\n", in, v[0], v[1], v[2])
		}}, nil
	case golcms.ColorSpaceCMYK:
		return colourOutput{golcms.TypeCMYKDbl, 4, func(w io.Writer, in string, v []float64) {
			fmt.Fprintf(w, "%s -> C=%.1f%% M=%.1f%% Y=%.1f%% K=%.1f%%\n", in, v[0], v[1], v[2], v[3])
		}}, nil
	case golcms.ColorSpaceGray:
		return colourOutput{golcms.TypeGrayDbl, 1, func(w io.Writer, in string, v []float64) {
			fmt.Fprintf(w, "%s -> %.4f\n", in, v[0])
		}}, nil
	}
	return colourOutput{}, fmt.Errorf("unsupported output colour space %s", space)
}
