package gateway

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg"
	"image/png"

	"github.com/tensebunny/tensebunny/internal/llm"
)

const mascotPrompt = `ULTIMATE KAWAII PINK THEME CHARACTER DESIGN:
A super-chubby, round snowy-white kitty-cat wearing an oversized, extremely soft Rose-Pink bunny onesie.
The bunny ears are long, floppy, and decorated with delicate cherry blossom (sakura) patterns.

FACIAL FEATURES (EXTRA CUTE):
- Enormous, glossy, dark galaxy eyes with multi-color pink reflections and tiny heart-shaped twinkles.
- Soft, deep-rose airbrushed blushing cheeks with tiny white highlights.
- A tiny 'w' shaped smiling cat mouth, very sweet and friendly.

ACCESSORIES & COLORS:
- Many colorful pastel ribbons in shades of Sakura Pink, Deep Rose, and soft Cream.
- Tiny golden bells and sparkly strawberry charms tied to the bunny ears.
- Floating magical elements: tiny pink hearts, sparkling sakura petals, and soft bubbles.
- Color Palette: All shades of pink (Strawberry, Sakura, Rose, Peachy-Pink).

ART STYLE:
- High-end digital sticker aesthetic.
- Thick, smooth, soft cocoa-pink outlines.
- 3D-like soft shading and highlights to make it look 'squishy' and 'fluffy'.
- Clean white background for perfect extraction.

Rendered in high resolution, maximum charm, and heart-melting pink adorableness.`

// WhiteThreshold is the channel value above which a pixel counts as
// background. All three of r, g and b must exceed it.
const WhiteThreshold = 235

// Image is a generated picture, always PNG encoded.
type Image struct {
	PNG    []byte
	Width  int
	Height int
}

// MascotOptions tunes mascot generation.
type MascotOptions struct {
	// KeepBackground skips the white-to-transparent pass.
	KeepBackground bool
}

// Mascot generates the bunny mascot. It returns nil when no image
// backend is configured or the request fails.
func (g *Gateway) Mascot(ctx context.Context, opts MascotOptions) *Image {
	if g == nil || g.images == nil {
		return nil
	}
	ctx, cancel := g.withTimeout(ctx, PurposeMascot, g.mediaTimeout)
	defer cancel()

	resp, err := g.images.GenerateImage(ctx, llm.ImageRequest{Prompt: mascotPrompt})
	if err != nil || len(resp.Data) == 0 {
		return nil
	}
	img, err := toPNG(resp.Data, !opts.KeepBackground)
	if err != nil {
		return nil
	}
	return img
}

// toPNG decodes an image, optionally clears the near-white background,
// and re-encodes it as PNG.
func toPNG(data []byte, clearBackground bool) (*Image, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)

	if clearBackground {
		RemoveWhiteBackground(dst)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, err
	}
	return &Image{PNG: buf.Bytes(), Width: b.Dx(), Height: b.Dy()}, nil
}

// RemoveWhiteBackground makes every pixel with r, g and b all above
// WhiteThreshold fully transparent. Other pixels are untouched.
func RemoveWhiteBackground(img *image.NRGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := img.NRGBAAt(x, y)
			if c.R > WhiteThreshold && c.G > WhiteThreshold && c.B > WhiteThreshold {
				img.SetNRGBA(x, y, color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0})
			}
		}
	}
}
