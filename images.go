package termsite

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/image/draw"
)

const (
	maxImageWidth = 800
	jpegQuality   = 80
	imagesSubdir  = "images"
)

// processImage downscales data to maxImageWidth when it is wider, keeping
// the format of the file name. The second result is false when data should
// be copied unchanged: narrow images, GIFs and anything that fails to decode.
func processImage(data []byte, name string) ([]byte, bool, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		return nil, false, nil
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, false, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxImageWidth {
		return nil, false, nil
	}
	newH := h * maxImageWidth / w
	dst := image.NewRGBA(image.Rect(0, 0, maxImageWidth, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if ext == ".png" {
		err = png.Encode(&buf, dst)
	} else {
		err = jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality})
	}
	if err != nil {
		return nil, false, fmt.Errorf("encode %s: %w", ext, err)
	}
	return buf.Bytes(), true, nil
}

// copyAssets mirrors <src> into <dst>, downscaling wide raster images. Files
// whose copy is at least as new as the source are left alone. A missing src
// is not an error.
func copyAssets(src, dst string) (int, error) {
	if _, err := os.Stat(src); os.IsNotExist(err) {
		return 0, nil
	}
	copied := 0
	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		if upToDate(path, target) {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read asset: %w", err)
		}
		out, resized, err := processImage(data, d.Name())
		if err != nil {
			log.Warn().Err(err).Str("file", path).Msg("Copying image unchanged")
		}
		if !resized {
			out = data
		}
		if err := os.WriteFile(target, out, 0o644); err != nil {
			return fmt.Errorf("write asset: %w", err)
		}
		copied++
		return nil
	})
	if err != nil {
		return copied, fmt.Errorf("copy assets: %w", err)
	}
	return copied, nil
}

func upToDate(src, dst string) bool {
	si, err := os.Stat(src)
	if err != nil {
		return false
	}
	di, err := os.Stat(dst)
	if err != nil {
		return false
	}
	return !di.ModTime().Before(si.ModTime())
}

// writeEmbeddedStyles writes the bundled blog.css into root unless the site
// ships its own.
func writeEmbeddedStyles(root string) (bool, error) {
	target := filepath.Join(root, blogCSS)
	if _, err := os.Stat(target); err == nil {
		return false, nil
	}
	data, err := EmbeddedAssets.ReadFile("embedded/" + blogCSS)
	if err != nil {
		return false, err
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return false, fmt.Errorf("write %s: %w", blogCSS, err)
	}
	return true, nil
}
