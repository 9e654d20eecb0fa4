package image

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"mime/multipart"

	"github.com/chai2010/webp"
)

const (
	MaxImageSize = 10 * 1024 * 1024 // 10MB
)

var (
	AllowedImageTypes = map[string]bool{
		"image/jpeg": true,
		"image/png":  true,
		"image/webp": true,
	}
)

// ProcessImage yüklenen dosyayı açar ve Process'e verir
func ProcessImage(file *multipart.FileHeader) (*bytes.Buffer, string, error) {
	// Dosyayı aç
	src, err := file.Open()
	if err != nil {
		return nil, "", fmt.Errorf("could not open file: %w", err)
	}
	defer src.Close()

	return Process(src)
}

// Process decodes an image and re-encodes it in the same format, which drops
// embedded metadata. It returns the encoded bytes and their content type.
func Process(src io.Reader) (*bytes.Buffer, string, error) {
	// Resmi decode et
	img, format, err := image.Decode(io.LimitReader(src, MaxImageSize+1))
	if err != nil {
		return nil, "", fmt.Errorf("could not decode image: %w", err)
	}

	buf := new(bytes.Buffer)

	// Resmi optimize et ve encode et
	switch format {
	case "jpeg":
		err = jpeg.Encode(buf, img, &jpeg.Options{Quality: 85})
	case "png":
		err = png.Encode(buf, img)
	case "webp":
		err = webp.Encode(buf, img, &webp.Options{Lossless: false, Quality: 85})
	default:
		return nil, "", fmt.Errorf("unsupported image format: %s", format)
	}

	if err != nil {
		return nil, "", fmt.Errorf("could not encode image: %w", err)
	}

	contentType := fmt.Sprintf("image/%s", format)
	if !AllowedImageTypes[contentType] {
		return nil, "", fmt.Errorf("unsupported content type: %s", contentType)
	}

	return buf, contentType, nil
}
