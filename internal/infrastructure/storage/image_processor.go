package storage

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"strings"

	"github.com/disintegration/imaging"
)

var (
	ErrInvalidDataURI = errors.New("image must be a data URI: data:image/<ext>;base64,<payload>")
	ErrInvalidImage   = errors.New("unsupported or corrupt image")
	ErrImageTooLarge  = errors.New("image is too large")
)

// ImageProcessor validates uploads and normalises them to a bounded JPEG.
type ImageProcessor struct {
	MaxSize   int64 // bytes
	MaxPixels int   // longest side after downscale
	Quality   int
}

func NewImageProcessor() *ImageProcessor {
	return &ImageProcessor{MaxSize: 5 * 1024 * 1024, MaxPixels: 1200, Quality: 90}
}

// ValidateImage accepts JPEG and PNG up to MaxSize.
func (p *ImageProcessor) ValidateImage(data []byte) error {
	if int64(len(data)) > p.MaxSize {
		return fmt.Errorf("%w: exceeds %dMB", ErrImageTooLarge, p.MaxSize/(1024*1024))
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	switch format {
	case "jpeg", "png":
		return nil
	default:
		return fmt.Errorf("%w: format %s not allowed (only jpeg/png)", ErrInvalidImage, format)
	}
}

// Process validates data, fits it into MaxPixels x MaxPixels and re-encodes
// it as JPEG. Returns the encoded bytes, the content type and the extension.
func (p *ImageProcessor) Process(data []byte) ([]byte, string, string, error) {
	if err := p.ValidateImage(data); err != nil {
		return nil, "", "", err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", "", fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > p.MaxPixels || bounds.Dy() > p.MaxPixels {
		img = imaging.Fit(img, p.MaxPixels, p.MaxPixels, imaging.Lanczos)
	}

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: p.Quality}); err != nil {
		return nil, "", "", fmt.Errorf("cannot encode image: %w", err)
	}
	return buf.Bytes(), "image/jpeg", "jpg", nil
}

// ParseDataURI decodes "data:image/<ext>;base64,<payload>".
func ParseDataURI(s string) ([]byte, string, error) {
	header, payload, ok := strings.Cut(s, ";base64,")
	if !ok || !strings.HasPrefix(header, "data:image/") {
		return nil, "", ErrInvalidDataURI
	}
	ext := strings.TrimPrefix(header, "data:image/")
	if ext == "" || strings.ContainsAny(ext, "/;,") {
		return nil, "", ErrInvalidDataURI
	}

	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
	if err != nil || len(data) == 0 {
		return nil, "", ErrInvalidDataURI
	}
	return data, ext, nil
}
