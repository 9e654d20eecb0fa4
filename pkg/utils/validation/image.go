// pkg/utils/validation/image.go
package validation

import (
	"errors"
	"mime/multipart"
	"path/filepath"
	"strings"
)

var (
	ErrFileSize     = errors.New("file size exceeds limit of 10MB")
	ErrFileType     = errors.New("invalid file type. Allowed types: JPG, PNG, WEBP")
	ErrFileRequired = errors.New("no file provided")
)

const MaxImageSize = 10 * 1024 * 1024 // 10MB

var AllowedImageTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

func ValidateImage(file *multipart.FileHeader) error {
	if file == nil {
		return ErrFileRequired
	}

	// Boyut kontrolü
	if file.Size > MaxImageSize {
		return ErrFileSize
	}

	// Tip kontrolü
	if ImageContentType(file.Filename) == "" {
		return ErrFileType
	}

	return nil
}

// ImageContentType dosya uzantısından içerik tipini bulur, desteklenmiyorsa boş döner
func ImageContentType(filename string) string {
	return AllowedImageTypes[filepath.Ext(strings.ToLower(filename))]
}

// ImageError dosya hatasını ValidationError'a çevirir
func ImageError(field string, err error) error {
	if err == nil {
		return nil
	}
	return New(field, err.Error())
}
