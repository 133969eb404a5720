package termsite

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 255, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestProcessImage(t *testing.T) {
	out, resized, err := processImage(pngBytes(t, 1600, 400), "wide.png")
	if err != nil || !resized {
		t.Fatalf("processImage(wide) = resized %v, err %v", resized, err)
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(out))
	if err != nil {
		t.Fatal(err)
	}
	if format != "png" || cfg.Width != maxImageWidth || cfg.Height != 200 {
		t.Errorf("resized to %s %dx%d", format, cfg.Width, cfg.Height)
	}

	if _, resized, err := processImage(pngBytes(t, 300, 300), "small.png"); err != nil || resized {
		t.Errorf("narrow image: resized %v, err %v", resized, err)
	}
	if _, resized, err := processImage([]byte("GIF89a"), "anim.gif"); err != nil || resized {
		t.Errorf("gif: resized %v, err %v", resized, err)
	}
	if _, _, err := processImage([]byte("not an image"), "bad.jpg"); err == nil {
		t.Error("undecodable jpg should report an error")
	}
}

func TestCopyAssets(t *testing.T) {
	dir := t.TempDir()
	src, dst := filepath.Join(dir, "src"), filepath.Join(dir, "dst")
	writeFile(t, filepath.Join(src, "diagram.png"), string(pngBytes(t, 1000, 100)))
	writeFile(t, filepath.Join(src, "notes", "bad.jpg"), "garbage")

	n, err := copyAssets(src, dst)
	if err != nil {
		t.Fatalf("copyAssets() error = %v", err)
	}
	if n != 2 {
		t.Errorf("copied %d, want 2", n)
	}
	if data, _ := os.ReadFile(filepath.Join(dst, "notes", "bad.jpg")); string(data) != "garbage" {
		t.Errorf("undecodable file should be copied as-is, got %q", data)
	}

	n, err = copyAssets(src, dst)
	if err != nil || n != 0 {
		t.Errorf("second copy = %d, %v; want nothing copied", n, err)
	}

	if n, err := copyAssets(filepath.Join(dir, "none"), dst); err != nil || n != 0 {
		t.Errorf("missing src = %d, %v", n, err)
	}
}

func TestCopyAssetsComparesModTime(t *testing.T) {
	dir := t.TempDir()
	src, dst := filepath.Join(dir, "src"), filepath.Join(dir, "dst")
	writeFile(t, filepath.Join(src, "notes.txt"), "aaaa")
	if _, err := copyAssets(src, dst); err != nil {
		t.Fatalf("copyAssets() error = %v", err)
	}

	// Same size, newer source.
	writeFile(t, filepath.Join(src, "notes.txt"), "bbbb")
	later := time.Now().Add(time.Hour)
	if err := os.Chtimes(filepath.Join(src, "notes.txt"), later, later); err != nil {
		t.Fatal(err)
	}
	n, err := copyAssets(src, dst)
	if err != nil || n != 1 {
		t.Fatalf("copy after edit = %d, %v; want 1", n, err)
	}
	if data, _ := os.ReadFile(filepath.Join(dst, "notes.txt")); string(data) != "bbbb" {
		t.Errorf("copy = %q, want the edited source", data)
	}

	// Different size, older source.
	writeFile(t, filepath.Join(src, "notes.txt"), "c")
	earlier := time.Now().Add(-time.Hour)
	if err := os.Chtimes(filepath.Join(src, "notes.txt"), earlier, earlier); err != nil {
		t.Fatal(err)
	}
	if n, err := copyAssets(src, dst); err != nil || n != 0 {
		t.Errorf("copy of older source = %d, %v; want 0", n, err)
	}
}

func TestWriteEmbeddedStyles(t *testing.T) {
	root := t.TempDir()
	wrote, err := writeEmbeddedStyles(root)
	if err != nil || !wrote {
		t.Fatalf("first write = %v, %v", wrote, err)
	}
	writeFile(t, filepath.Join(root, blogCSS), "/* mine */")
	wrote, err = writeEmbeddedStyles(root)
	if err != nil || wrote {
		t.Errorf("second write = %v, %v; want existing file kept", wrote, err)
	}
}
