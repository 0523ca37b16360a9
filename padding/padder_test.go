package padding

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/chai2010/webp"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"

	"github.com/nvr-ai/go-pad/images"
)

var (
	black = color.RGBA{A: 255}
	red   = color.RGBA{R: 255, A: 255}
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func newTestPadder(t *testing.T, config Config, opts ...Option) (*Padder, *test.Hook) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	p, err := New(config, append([]Option{WithLogger(logger)}, opts...)...)
	require.NoError(t, err)
	return p, hook
}

// writeFixture encodes img into dir/name with the given encoder.
func writeFixture(t *testing.T, dir, name string, encode func(*bytes.Buffer) error) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, encode(&buf))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func decodeFile(t *testing.T, path string) image.Image {
	t.Helper()
	img, err := images.Load(path)
	require.NoError(t, err)
	decoded, err := img.Decode()
	require.NoError(t, err)
	return decoded
}

func assertNear(t *testing.T, want color.RGBA, got color.Color, delta float64, msgAndArgs ...interface{}) {
	t.Helper()
	r, g, b, _ := got.RGBA()
	assert.InDelta(t, want.R, r>>8, delta, msgAndArgs...)
	assert.InDelta(t, want.G, g>>8, delta, msgAndArgs...)
	assert.InDelta(t, want.B, b>>8, delta, msgAndArgs...)
}

func TestNewValidatesConfig(t *testing.T) {
	_, err := New(Config{Ratio: 1, Quality: 95})
	assert.True(t, errors.Is(err, ErrInvalidRatio))

	_, err = New(DefaultConfig(), WithBackend("vips"))
	assert.Error(t, err)

	_, err = New(DefaultConfig(), WithFilter(images.ResampleFilter(-1)))
	assert.Error(t, err)

	p, err := New(DefaultConfig(), WithBackend(images.BackendImaging), WithFilter(images.BicubicFilter), WithLogger(nil))
	require.NoError(t, err)
	assert.Equal(t, images.BackendImaging, p.Config().Backend)
	assert.Equal(t, images.BicubicFilter, p.Config().Filter)
}

func TestPadSquare(t *testing.T) {
	p, hook := newTestPadder(t, DefaultConfig())

	canvas, layout, err := p.Pad(solid(100, 100, red))
	require.NoError(t, err)

	assert.Equal(t, image.Rect(0, 0, 100, 100), canvas.Bounds())
	assert.Equal(t, image.Rect(15, 15, 85, 85), layout.Bounds())

	// A solid border of floor(100*0.3/2) = 15 pixels on every side.
	for i := 0; i < 100; i++ {
		for _, p := range []image.Point{{i, 0}, {i, 14}, {0, i}, {14, i}, {i, 85}, {i, 99}, {85, i}, {99, i}} {
			require.Equal(t, black, canvas.RGBAAt(p.X, p.Y), "border pixel %v", p)
		}
	}
	for _, p := range []image.Point{{15, 15}, {50, 50}, {84, 84}, {15, 84}} {
		assert.Equal(t, red, canvas.RGBAAt(p.X, p.Y), "content pixel %v", p)
	}

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.DebugLevel, hook.LastEntry().Level)
	assert.Equal(t, "padded image", hook.LastEntry().Message)
}

func TestPadBackgroundColor(t *testing.T) {
	config := DefaultConfig()
	config.Background = color.RGBA{R: 10, G: 200, B: 30}
	config.Ratio = 0.5
	p, _ := newTestPadder(t, config)

	canvas, _, err := p.Pad(solid(40, 20, red))
	require.NoError(t, err)

	assert.Equal(t, color.RGBA{R: 10, G: 200, B: 30, A: 255}, canvas.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{R: 10, G: 200, B: 30, A: 255}, canvas.RGBAAt(39, 19))
	assert.Equal(t, red, canvas.RGBAAt(20, 10))
}

func TestPadZeroRatioIsIdentity(t *testing.T) {
	config := DefaultConfig()
	config.Ratio = 0
	p, _ := newTestPadder(t, config)

	src := image.NewRGBA(image.Rect(0, 0, 9, 7))
	for y := 0; y < 7; y++ {
		for x := 0; x < 9; x++ {
			src.SetRGBA(x, y, color.RGBA{R: uint8(x * 20), G: uint8(y * 30), B: 99, A: 255})
		}
	}

	canvas, layout, err := p.Pad(src)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(0, 0), layout.Offset())
	assert.Equal(t, images.Checksum(src), images.Checksum(canvas))

	again, _, err := p.Pad(canvas)
	require.NoError(t, err)
	assert.Equal(t, images.Checksum(canvas), images.Checksum(again))
}

func TestPadDiscardsAlpha(t *testing.T) {
	config := DefaultConfig()
	config.Ratio = 0
	config.Background = color.RGBA{R: 255, G: 255, B: 255}
	p, _ := newTestPadder(t, config)

	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for i := 0; i < len(src.Pix); i += 4 {
		copy(src.Pix[i:i+4], []uint8{200, 100, 50, 128})
	}

	canvas, _, err := p.Pad(src)
	require.NoError(t, err)

	// Blending over white would give roughly (227, 177, 152).
	c := canvas.RGBAAt(2, 2)
	assert.InDelta(t, 200, int(c.R), 2)
	assert.InDelta(t, 100, int(c.G), 2)
	assert.InDelta(t, 50, int(c.B), 2)
	assert.Equal(t, uint8(255), c.A)
}

func TestPadRejectsDegenerateInput(t *testing.T) {
	p, _ := newTestPadder(t, DefaultConfig())

	_, _, err := p.Pad(solid(1, 1, red))
	assert.True(t, errors.Is(err, ErrEmptyLayout))

	_, _, err = p.Pad(nil)
	assert.Error(t, err)
}

func TestPadBackends(t *testing.T) {
	for _, backend := range []images.Backend{images.BackendNative, images.BackendNfnt, images.BackendImaging} {
		t.Run(string(backend), func(t *testing.T) {
			p, _ := newTestPadder(t, DefaultConfig(), WithBackend(backend))

			canvas, layout, err := p.Pad(solid(120, 80, red))
			require.NoError(t, err)
			assert.Equal(t, image.Rect(0, 0, 120, 80), canvas.Bounds())
			assert.Equal(t, image.Rect(18, 12, 102, 68), layout.Bounds())

			assert.Equal(t, black, canvas.RGBAAt(17, 40))
			assert.Equal(t, black, canvas.RGBAAt(102, 40))
			assertNear(t, red, canvas.RGBAAt(60, 40), 2)
			assertNear(t, red, canvas.RGBAAt(18, 12), 2)
		})
	}
}

func TestPadFile(t *testing.T) {
	// 200x200 keeps a 30 pixel border, so the sampled border points sit in
	// 16x16 blocks that hold no content and lossy codecs cannot bleed into them.
	src := solid(200, 200, red)

	tests := []struct {
		name   string
		input  string
		encode func(*bytes.Buffer) error
		output string
		format images.ImageFormat
		delta  float64
	}{
		{
			name:   "png to jpeg",
			input:  "icon.png",
			encode: func(b *bytes.Buffer) error { return png.Encode(b, src) },
			output: "icon_padded.jpeg",
			format: images.FormatJPEG,
			delta:  4,
		},
		{
			name:   "webp to png",
			input:  "icon.webp",
			encode: func(b *bytes.Buffer) error { return webp.Encode(b, src, &webp.Options{Lossless: true}) },
			output: "icon_padded.png",
			format: images.FormatPNG,
			delta:  0,
		},
		{
			name:   "bmp to webp",
			input:  "icon.bmp",
			encode: func(b *bytes.Buffer) error { return bmp.Encode(b, src) },
			output: "icon_padded.webp",
			format: images.FormatWebP,
			delta:  8,
		},
		{
			name:   "unknown extension falls back to jpeg",
			input:  "icon.png",
			encode: func(b *bytes.Buffer) error { return png.Encode(b, src) },
			output: "icon_padded",
			format: images.FormatJPEG,
			delta:  4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			input := writeFixture(t, dir, tt.input, tt.encode)
			output := filepath.Join(dir, tt.output)

			p, hook := newTestPadder(t, DefaultConfig())
			require.NoError(t, p.PadFile(input, output))

			loaded, err := images.Load(output)
			require.NoError(t, err)
			assert.Equal(t, tt.format, loaded.Format)
			assert.Equal(t, 200, loaded.Width, "canvas width should match the input")
			assert.Equal(t, 200, loaded.Height, "canvas height should match the input")

			decoded := decodeFile(t, output)
			for _, p := range []image.Point{{5, 5}, {194, 5}, {5, 194}, {194, 194}, {100, 8}, {8, 100}} {
				assertNear(t, color.RGBA{}, decoded.At(p.X, p.Y), tt.delta, "border pixel %v", p)
			}
			assertNear(t, red, decoded.At(100, 100), tt.delta)

			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			assert.Len(t, entries, 2, "no temporary files should remain")

			require.NotNil(t, hook.LastEntry())
			assert.Equal(t, logrus.InfoLevel, hook.LastEntry().Level)
			assert.Equal(t, "Successfully created padded icon at "+output, hook.LastEntry().Message)
		})
	}
}

func TestPadFileFailures(t *testing.T) {
	dir := t.TempDir()
	p, _ := newTestPadder(t, DefaultConfig())

	corrupt := filepath.Join(dir, "corrupt.jpeg")
	require.NoError(t, os.WriteFile(corrupt, []byte("definitely not an image"), 0o644))

	tiny := writeFixture(t, dir, "tiny.png", func(b *bytes.Buffer) error {
		return png.Encode(b, solid(1, 1, red))
	})
	valid := writeFixture(t, dir, "valid.png", func(b *bytes.Buffer) error {
		return png.Encode(b, solid(20, 20, red))
	})

	tests := []struct {
		name   string
		input  string
		output string
		target error
	}{
		{"missing input", filepath.Join(dir, "missing.jpeg"), filepath.Join(dir, "out1.jpeg"), nil},
		{"corrupt input", corrupt, filepath.Join(dir, "out2.jpeg"), nil},
		{"collapsed layout", tiny, filepath.Join(dir, "out3.jpeg"), ErrEmptyLayout},
		{"missing output directory", valid, filepath.Join(dir, "nope", "out4.jpeg"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := p.PadFile(tt.input, tt.output)
			require.Error(t, err)
			if tt.target != nil {
				assert.True(t, errors.Is(err, tt.target), "got %v", err)
			}
			_, statErr := os.Stat(tt.output)
			assert.True(t, os.IsNotExist(statErr), "no output should be written")
		})
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 3, "only the fixtures should remain")
}

func TestPadFileOverwritesExisting(t *testing.T) {
	dir := t.TempDir()
	input := writeFixture(t, dir, "icon.png", func(b *bytes.Buffer) error {
		return png.Encode(b, solid(50, 50, red))
	})
	output := filepath.Join(dir, "icon_padded.png")
	require.NoError(t, os.WriteFile(output, []byte("stale"), 0o644))

	p, _ := newTestPadder(t, DefaultConfig())
	require.NoError(t, p.PadFile(input, output))

	loaded, err := images.Load(output)
	require.NoError(t, err)
	assert.Equal(t, 50, loaded.Width)
}

func BenchmarkPad(b *testing.B) {
	p, err := New(DefaultConfig(), WithLogger(logrus.New()))
	require.NoError(b, err)
	src := solid(512, 512, red)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := p.Pad(src); err != nil {
			b.Fatal(err)
		}
	}
}
