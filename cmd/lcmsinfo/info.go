package main

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/jrshoare/golcms"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info <profile>",
	Short: "Print the header, descriptions and tags of a profile",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	ctx, err := golcms.NewContext(nil)
	if err != nil {
		return err
	}
	defer ctx.Close()

	p, err := openProfile(ctx, args[0])
	if err != nil {
		return fmt.Errorf("opening %s: %w", args[0], err)
	}
	return printProfile(cmd.OutOrStdout(), p)
}

func printProfile(w io.Writer, p *golcms.Profile) error {
	class, err := p.DeviceClass()
	if err != nil {
		return err
	}
	space, _ := p.ColorSpace()
	pcs, _ := p.PCS()
	version, _ := p.Version()
	intent, _ := p.RenderingIntent()
	fmt.Fprintf(w, "class:       %s\n", class)
	fmt.Fprintf(w, "color space: %s\n", space)
	fmt.Fprintf(w, "pcs:         %s\n", pcs)
	fmt.Fprintf(w, "version:     %.2f\n", version)
	fmt.Fprintf(w, "intent:      %s\n", intent)
	if d, err := p.CreationDate(); err == nil && !d.IsZero() {
		fmt.Fprintf(w, "created:     %s\n", d.Format("2006-01-02 15:04:05"))
	}
	if id, err := p.ProfileID(); err == nil && id != [16]byte{} {
		fmt.Fprintf(w, "profile id:  %s\n", hex.EncodeToString(id[:]))
	}

	for _, it := range []struct {
		name string
		typ  golcms.InfoType
	}{
		{"description", golcms.InfoDescription},
		{"manufacturer", golcms.InfoManufacturer},
		{"model", golcms.InfoModel},
		{"copyright", golcms.InfoCopyright},
	} {
		s, err := p.Info(it.typ, "en", "US")
		if err != nil {
			return err
		}
		if s != "" {
			fmt.Fprintf(w, "%-12s %s\n", it.name+":", s)
		}
	}

	if ms, err := p.IsMatrixShaper(); err == nil && ms {
		fmt.Fprintln(w, "matrix-shaper")
		if g, err := p.DetectRGBProfileGamma(0.01); err == nil {
			fmt.Fprintf(w, "gamma:       %.3f\n", g)
		}
	}
	for _, i := range []golcms.Intent{golcms.IntentPerceptual, golcms.IntentRelativeColorimetric, golcms.IntentSaturation, golcms.IntentAbsoluteColorimetric} {
		in, _ := p.IsIntentSupported(i, golcms.UsedAsInput)
		out, _ := p.IsIntentSupported(i, golcms.UsedAsOutput)
		fmt.Fprintf(w, "  %-24s input=%t output=%t\n", i, in, out)
	}

	tags, err := p.Tags()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "tags (%d):\n", len(tags))
	for _, sig := range tags {
		if to, err := p.TagLinkedTo(sig); err == nil && to != 0 {
			fmt.Fprintf(w, "  %s -> %s\n", sig, to)
			continue
		}
		raw, err := p.ReadRawTag(sig)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "  %s %d bytes\n", sig, len(raw))
	}
	return nil
}
