// Package imaging holds the upload compression step: a raw image file
// comes in, a bounded webp copy comes out next to it. The original file
// is left in place for the temp-dir reclaim pass.
package imaging

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/chai2010/webp"
	img "github.com/disintegration/imaging"
	"github.com/google/uuid"

	"specialist-app/config"
)

func CompressToWebP(srcPath string) (string, error) {
	src, err := img.Open(srcPath, img.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("failed to decode image %s: %w", filepath.Base(srcPath), err)
	}

	maxW, maxH := config.IMAGE_WEBP_MAX_W, config.IMAGE_WEBP_MAX_H
	if maxW <= 0 {
		maxW = 1600
	}
	if maxH <= 0 {
		maxH = 1600
	}
	bounds := src.Bounds()
	if bounds.Dx() > maxW || bounds.Dy() > maxH {
		src = img.Fit(src, maxW, maxH, img.Lanczos)
	}

	quality := config.IMAGE_WEBP_QUALITY
	if quality <= 0 || quality > 100 {
		quality = 70
	}

	dstPath := filepath.Join(filepath.Dir(srcPath), fmt.Sprintf("compressed-%s.webp", uuid.NewString()))
	out, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("failed to create compressed file: %w", err)
	}
	defer out.Close()

	if err := webp.Encode(out, src, &webp.Options{Quality: float32(quality)}); err != nil {
		os.Remove(dstPath)
		return "", fmt.Errorf("image compression failed: %w", err)
	}

	return dstPath, nil
}
