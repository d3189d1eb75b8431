// internals/helpers/storage/webp.go
package storage

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"math"

	"campus_events_backend/internals/configs"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

var ErrUnsupportedImage = errors.New("unsupported image format")

/* =======================================================================
   Konfigurasi WebP (ENV-Driven)
======================================================================= */

type WebPOptions struct {
	MaxW    int     // batas lebar (resize keep-aspect)
	MaxH    int     // batas tinggi
	Quality float32 // lossy quality
}

func DefaultWebPOptions() WebPOptions {
	return WebPOptions{
		MaxW:    configs.GetEnvInt("IMAGE_WEBP_MAX_W", 1600),
		MaxH:    configs.GetEnvInt("IMAGE_WEBP_MAX_H", 1600),
		Quality: float32(configs.GetEnvInt("IMAGE_WEBP_QUALITY", 80)),
	}
}

/* =======================================================================
   Resize helper (keep aspect). Pakai CatmullRom.
======================================================================= */

func downscaleIfNeeded(src image.Image, maxW, maxH int) image.Image {
	if maxW <= 0 && maxH <= 0 {
		return src
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if (maxW <= 0 || w <= maxW) && (maxH <= 0 || h <= maxH) {
		return src
	}

	scale := 1.0
	if maxW > 0 {
		scale = math.Min(scale, float64(maxW)/float64(w))
	}
	if maxH > 0 {
		scale = math.Min(scale, float64(maxH)/float64(h))
	}
	nw := int(math.Max(1, math.Round(float64(w)*scale)))
	nh := int(math.Max(1, math.Round(float64(h)*scale)))

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

// ConvertToWebP: decode (EXIF-oriented) → downscale → encode webp.
func ConvertToWebP(r io.Reader, opts WebPOptions) ([]byte, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}

	img = downscaleIfNeeded(img, opts.MaxW, opts.MaxH)

	q := opts.Quality
	if q <= 0 || q > 100 {
		q = 80
	}
	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, img, &webp.Options{Quality: q}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}
	return buf.Bytes(), nil
}
