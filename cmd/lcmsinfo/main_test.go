package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jrshoare/golcms"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lcmsinfo.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestConfig_Load(t *testing.T) {
	path := writeConfig(t, `
input = "in.icc"
intent = "saturation"
bpc = true
`)
	c, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "in.icc", c.Input)
	assert.Equal(t, "srgb", c.Output)
	assert.Equal(t, "saturation", c.Intent)
	assert.True(t, c.BPC)
	assert.Equal(t, "warn", c.LogLevel)
	assert.Equal(t, golcms.FlagBlackPointCompensation, c.flags())
}

func TestConfig_LoadErrors(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorContains(t, err, "reading config")

	_, err = loadConfig(writeConfig(t, "input = ["))
	assert.ErrorContains(t, err, "parsing config")
}

func TestConfig_FlagsWin(t *testing.T) {
	c := defaultConfig()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.StringVar(&c.Input, "in", c.Input, "")
	fs.StringVar(&c.Output, "out", c.Output, "")
	fs.StringVar(&c.Intent, "intent", c.Intent, "")
	fs.BoolVar(&c.BPC, "bpc", c.BPC, "")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "")
	require.NoError(t, fs.Parse([]string{"--in", "flag.icc", "--bpc=false"}))

	c.merge(Config{Input: "file.icc", Output: "lab", Intent: "saturation", BPC: true, LogLevel: "debug"}, fs)
	assert.Equal(t, "flag.icc", c.Input)
	assert.Equal(t, "lab", c.Output)
	assert.Equal(t, "saturation", c.Intent)
	assert.False(t, c.BPC)
	assert.Equal(t, "debug", c.LogLevel)
}

func TestParseLevel(t *testing.T) {
	l, err := parseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, "DEBUG", l.String())
	_, err = parseLevel("loud")
	assert.Error(t, err)
}

func TestOpenProfile(t *testing.T) {
	ctx, err := golcms.NewContext(nil)
	require.NoError(t, err)
	defer ctx.Close()

	for name, want := range map[string]golcms.ColorSpace{
		"":     golcms.ColorSpaceRGB,
		"srgb": golcms.ColorSpaceRGB,
		"lab":  golcms.ColorSpaceLab,
		"xyz":  golcms.ColorSpaceXYZ,
	} {
		p, err := openProfile(ctx, name)
		require.NoError(t, err, name)
		cs, err := p.ColorSpace()
		require.NoError(t, err)
		assert.Equal(t, want, cs, name)
	}
	_, err = openProfile(ctx, filepath.Join(t.TempDir(), "missing.icc"))
	assert.Error(t, err)
}

func TestOutputFormat(t *testing.T) {
	f, err := outputFormat(golcms.ColorSpaceRGB)
	require.NoError(t, err)
	assert.Equal(t, golcms.TypeRGBDbl, f.format)
	var buf bytes.Buffer
	f.print(&buf, "#102030", []float64{1, 0.5, 0})
	assert.Equal(t, "#102030 -> #ff8000\n", buf.String())

	f, err = outputFormat(golcms.ColorSpaceCMYK)
	require.NoError(t, err)
	assert.Equal(t, 4, f.channels)

	_, err = outputFormat(golcms.ColorSpaceHSV)
	assert.Error(t, err)
}

func TestTransformCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"transform", "--out", "lab", "#ffffff", "#000000"})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		cfg = defaultConfig()
	})
	require.NoError(t, rootCmd.Execute())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "#ffffff -> L*=100.00"), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "#000000 -> L*=0.00"), lines[1])
}

func TestTransformImage(t *testing.T) {
	ctx, err := golcms.NewContext(nil)
	require.NoError(t, err)
	defer ctx.Close()
	srgb, err := golcms.NewSRGBProfile(ctx)
	require.NoError(t, err)
	x, err := golcms.NewTransform(ctx, srgb, golcms.TypeRGBA8, srgb, golcms.TypeRGBA8, golcms.IntentPerceptual, golcms.FlagCopyAlpha)
	require.NoError(t, err)
	defer x.Close()

	// A sub-image with a non-zero origin is copied before transforming.
	src := image.NewRGBA(image.Rect(0, 0, 4, 3))
	for y := 0; y < 3; y++ {
		for i := 0; i < 4; i++ {
			src.Set(i, y, color.RGBA{R: uint8(60 * i), G: uint8(80 * y), B: 100, A: 255})
		}
	}
	sub := src.SubImage(image.Rect(1, 1, 4, 3))

	got, err := transformImage(x, sub)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 3, 2), got.Rect)
	c := got.NRGBAAt(0, 0)
	assert.InDelta(t, 60, int(c.R), 1)
	assert.InDelta(t, 80, int(c.G), 1)
	assert.Equal(t, uint8(255), c.A)
}

func TestEncodeImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(1, 1, color.NRGBA{R: 200, G: 100, B: 50, A: 255})

	var buf bytes.Buffer
	require.NoError(t, encodeImage(&buf, ".png", img))
	back, err := png.Decode(&buf)
	require.NoError(t, err)
	r, g, b, _ := back.At(1, 1).RGBA()
	assert.Equal(t, []uint32{200, 100, 50}, []uint32{r >> 8, g >> 8, b >> 8})

	for _, ext := range []string{".jpg", ".tiff", ".bmp"} {
		buf.Reset()
		require.NoError(t, encodeImage(&buf, ext, img), ext)
		assert.NotZero(t, buf.Len(), ext)
	}
	assert.Error(t, encodeImage(&buf, ".gif", img))
}
