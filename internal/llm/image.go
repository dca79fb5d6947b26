package llm

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"

	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// The Messages API rejects images over 5 MB base64-encoded, which works out
// to ~3.75 MB raw. Larger uploads are flattened, scaled and re-encoded as
// JPEG until they fit.
const (
	maxRawImageBytes = 3_750_000
	maxEncodedBytes  = 5_242_880
	maxImageEdge     = 2048
)

// EncodeImage reads an image file and returns its base64 payload and media
// type, normalizing oversized images along the way. Images that cannot be
// brought under the encoded ceiling return an error rather than being sent
// upstream.
func EncodeImage(path string) (string, string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("failed to read image %s: %w", filepath.Base(path), err)
	}
	if len(raw) == 0 {
		return "", "", fmt.Errorf("image file is empty: %s", filepath.Base(path))
	}

	mediaType := MediaTypeFor(path)
	if len(raw) > maxRawImageBytes {
		raw, err = normalizeImage(raw)
		if err != nil {
			return "", "", err
		}
		// Re-encoded output is always JPEG regardless of the source format.
		mediaType = "image/jpeg"
	}

	encoded := base64.StdEncoding.EncodeToString(raw)
	if len(encoded) > maxEncodedBytes {
		return "", "", fmt.Errorf("image %s still too large after compression: %d bytes base64 (limit %d)",
			filepath.Base(path), len(encoded), maxEncodedBytes)
	}
	return encoded, mediaType, nil
}

// MediaTypeFor maps a filename extension to the media type declared
// upstream. Unknown extensions fall back to JPEG.
func MediaTypeFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}

// normalizeImage shrinks an oversized image under the raw byte threshold:
// flatten onto white, clamp the longest edge, then walk the JPEG quality
// ladder; as a last resort cut dimensions to 75% of the max edge.
func normalizeImage(raw []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	img := scaleToFit(flattenToWhite(src), maxImageEdge)

	if out, ok := encodeUnderLimit(img, maxRawImageBytes); ok {
		return out, nil
	}

	img = scaleToFit(img, maxImageEdge*3/4)
	out, err := encodeJPEG(img, 75)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// flattenToWhite composites the image onto an opaque white background,
// discarding any alpha channel or palette.
func flattenToWhite(src image.Image) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Over)
	return dst
}

// scaleToFit clamps the longest edge to maxEdge, preserving aspect ratio.
// Images already within bounds are returned unchanged.
func scaleToFit(src image.Image, maxEdge int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxEdge && h <= maxEdge {
		return src
	}
	ratio := float64(maxEdge) / float64(w)
	if r := float64(maxEdge) / float64(h); r < ratio {
		ratio = r
	}
	nw, nh := int(float64(w)*ratio), int(float64(h)*ratio)
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}

// encodeUnderLimit tries JPEG qualities 85 down to 50 in steps of 10,
// returning the first encoding that fits under maxBytes.
func encodeUnderLimit(img image.Image, maxBytes int) ([]byte, bool) {
	for quality := 85; quality >= 50; quality -= 10 {
		out, err := encodeJPEG(img, quality)
		if err == nil && len(out) <= maxBytes {
			return out, true
		}
	}
	return nil, false
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}
