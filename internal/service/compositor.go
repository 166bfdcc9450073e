package service

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
	_ "golang.org/x/image/webp"

	"github.com/set-night/lovematch/internal/config"
	"github.com/set-night/lovematch/internal/domain"
)

var heartColor = color.RGBA{R: 255, A: 255}

// Compositor renders the compatibility card.
type Compositor struct {
	font *opentype.Font
	mask *image.Alpha
}

// NewCompositor parses the bundled font and prepares the avatar mask.
func NewCompositor() (*Compositor, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return &Compositor{
		font: f,
		mask: circleMask(config.AvatarSize),
	}, nil
}

// Compose draws both avatars, the heart, the percentage and the phrase onto
// a white canvas. Any failure is reported as domain.ErrRender.
func (c *Compositor) Compose(first, second image.Image, percentage int, phrase string) (out image.Image, err error) {
	if first == nil || second == nil {
		return nil, fmt.Errorf("%w: missing avatar", domain.ErrRender)
	}
	if first.Bounds().Empty() || second.Bounds().Empty() {
		return nil, fmt.Errorf("%w: empty avatar", domain.ErrRender)
	}

	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = fmt.Errorf("%w: %v", domain.ErrRender, r)
		}
	}()

	// font.Face is not safe for concurrent use, so each render gets its own.
	face, err := opentype.NewFace(c.font, &opentype.FaceOptions{
		Size:    config.FontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: create face: %w", domain.ErrRender, err)
	}
	defer face.Close()

	canvas := image.NewRGBA(image.Rect(0, 0, config.CanvasWidth, config.CanvasHeight))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)

	c.pasteAvatar(canvas, first, image.Pt(config.FirstAvatarX, config.AvatarY))
	c.pasteAvatar(canvas, second, image.Pt(config.SecondAvatarX, config.AvatarY))
	drawHeart(canvas, image.Rect(config.HeartX, config.HeartY, config.HeartX+config.HeartSize, config.HeartY+config.HeartSize))

	metrics := face.Metrics()
	d := &font.Drawer{Dst: canvas, Src: image.Black, Face: face}

	label := fmt.Sprintf("%d%%", percentage)
	d.Dot = fixed.Point26_6{
		X: fixed.I(config.PercentCenterX) - d.MeasureString(label)/2,
		Y: fixed.I(config.PercentCenterY) + (metrics.Ascent-metrics.Descent)/2,
	}
	d.DrawString(label)

	d.Dot = fixed.Point26_6{
		X: fixed.I(config.PhraseX),
		Y: fixed.I(config.PhraseY) + metrics.Ascent,
	}
	d.DrawString(phrase)

	return canvas, nil
}

func (c *Compositor) pasteAvatar(dst draw.Image, src image.Image, at image.Point) {
	size := config.AvatarSize
	scaled := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), src, src.Bounds(), draw.Src, nil)

	r := image.Rect(at.X, at.Y, at.X+size, at.Y+size)
	draw.DrawMask(dst, r, scaled, image.Point{}, c.mask, image.Point{}, draw.Over)
}

// drawHeart fills the four-point heart polygon inside box.
func drawHeart(dst draw.Image, box image.Rectangle) {
	b := dst.Bounds()
	w, h := float32(box.Dx()), float32(box.Dy())
	x0, y0 := float32(box.Min.X-b.Min.X), float32(box.Min.Y-b.Min.Y)

	z := vector.NewRasterizer(b.Dx(), b.Dy())
	z.MoveTo(x0+w*0.5, y0+h*0.2)
	z.LineTo(x0+w*0.85, y0+h*0.5)
	z.LineTo(x0+w*0.5, y0+h*0.8)
	z.LineTo(x0+w*0.15, y0+h*0.5)
	z.ClosePath()
	z.Draw(dst, b, image.NewUniform(heartColor), image.Point{})
}

func circleMask(size int) *image.Alpha {
	mask := image.NewAlpha(image.Rect(0, 0, size, size))
	r := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) + 0.5 - r
			dy := float64(y) + 0.5 - r
			if dx*dx+dy*dy <= r*r {
				mask.SetAlpha(x, y, color.Alpha{A: 255})
			}
		}
	}
	return mask
}

// DecodeImage decodes data in any registered format. Images larger than
// config.MaxImagePixels are rejected before their pixels are allocated.
func DecodeImage(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty file", domain.ErrInvalidImage)
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidImage, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: empty %s image", domain.ErrInvalidImage, format)
	}
	if int64(cfg.Width)*int64(cfg.Height) > config.MaxImagePixels {
		return nil, fmt.Errorf("%w: %s image is %dx%d", domain.ErrInvalidImage, format, cfg.Width, cfg.Height)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidImage, err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("%w: empty %s image", domain.ErrInvalidImage, format)
	}
	return img, nil
}

// EncodePNG encodes img for upload.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("%w: encode png: %w", domain.ErrRender, err)
	}
	return buf.Bytes(), nil
}
