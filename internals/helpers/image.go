// file: internals/helpers/image.go
package helper

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const maxPhotoDimension = 512

// GenerateUniqueFilename membuat nama file unik: <folder>/<timestamp>-<uuid>.webp
func GenerateUniqueFilename(folder string) string {
	return fmt.Sprintf("%s/%d-%s.webp", folder, time.Now().Unix(), uuid.NewString())
}

// SaveProfilePhoto membaca file upload, validasi tipe gambar, resize maksimal
// 512px sisi terpanjang, encode ke webp, lalu simpan ke uploadDir.
// Mengembalikan path relatif (dipakai sebagai URL foto profil).
func SaveProfilePhoto(uploadDir string, fileHeader *multipart.FileHeader) (string, error) {
	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("file bukan gambar (%s)", contentType)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("gagal membuka file gambar: %w", err)
	}
	defer src.Close()

	img, _, err := image.Decode(src)
	if err != nil {
		return "", fmt.Errorf("gagal decode gambar: %w", err)
	}

	// resize proporsional, sisi terpanjang 512px
	b := img.Bounds()
	if b.Dx() > maxPhotoDimension || b.Dy() > maxPhotoDimension {
		if b.Dx() >= b.Dy() {
			img = imaging.Resize(img, maxPhotoDimension, 0, imaging.Lanczos)
		} else {
			img = imaging.Resize(img, 0, maxPhotoDimension, imaging.Lanczos)
		}
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: 80}); err != nil {
		return "", fmt.Errorf("gagal encode webp: %w", err)
	}

	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return "", fmt.Errorf("gagal membuat folder upload: %w", err)
	}

	name := GenerateUniqueFilename("profile")
	fullPath := filepath.Join(uploadDir, filepath.Base(name))
	if err := os.WriteFile(fullPath, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("gagal menyimpan gambar: %w", err)
	}

	return "/uploads/" + filepath.Base(name), nil
}
