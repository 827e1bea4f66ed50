package renderer

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writePNG(t *testing.T, dir, name string) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	// Top row red, bottom row blue.
	img.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})
	img.SetRGBA(1, 0, color.RGBA{R: 255, A: 255})
	img.SetRGBA(0, 1, color.RGBA{B: 255, A: 255})
	img.SetRGBA(1, 1, color.RGBA{B: 255, A: 255})

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDecodeTextureFlipsRows(t *testing.T) {
	path := writePNG(t, t.TempDir(), "tex.png")

	rgba, err := DecodeTexture(path)
	if err != nil {
		t.Fatal(err)
	}

	if got := rgba.RGBAAt(0, 0); got.B != 255 {
		t.Errorf("Expected blue on row zero after flip, got %v", got)
	}
	if got := rgba.RGBAAt(0, 1); got.R != 255 {
		t.Errorf("Expected red on the last row after flip, got %v", got)
	}
}

func TestTextureManagerLoad(t *testing.T) {
	path := writePNG(t, t.TempDir(), "tex.png")
	tm := NewTextureManager(2)
	defer tm.Close()

	texture := tm.Load(path)
	tm.Wait()

	if texture.State() != TEXTURE_DECODED {
		t.Fatalf("Expected decoded texture, got %v (err %v)", texture.State(), texture.Err())
	}
	if w, h := texture.Size(); w != 2 || h != 2 {
		t.Errorf("Expected 2x2, got %dx%d", w, h)
	}
	if texture.ID() != 0 {
		t.Error("Texture should not have a GPU id before upload")
	}
}

func TestTextureManagerCachesByPath(t *testing.T) {
	path := writePNG(t, t.TempDir(), "tex.png")
	tm := NewTextureManager(1)
	defer tm.Close()

	first := tm.Load(path)
	second := tm.Load(path)
	tm.Wait()

	if first != second {
		t.Error("Same path should return the same handle")
	}
	if tm.RefCount(path) != 2 {
		t.Errorf("Expected ref count 2, got %d", tm.RefCount(path))
	}
	stats := tm.GetStats()
	if stats.CacheHits != 1 || stats.CacheMisses != 1 || stats.TotalTextures != 1 {
		t.Errorf("Unexpected stats %+v", stats)
	}
}

func TestTextureManagerMissingFile(t *testing.T) {
	tm := NewTextureManager(1)
	defer tm.Close()

	texture := tm.Load(filepath.Join(t.TempDir(), "missing.png"))
	tm.Wait()

	if texture.State() != TEXTURE_FAILED {
		t.Errorf("Expected failed texture, got %v", texture.State())
	}
	if texture.Err() == nil {
		t.Error("Failed texture should keep its error")
	}
	if texture.takePixels() != nil {
		t.Error("Failed texture should have nothing to upload")
	}
	if tm.GetStats().FailedTextures != 1 {
		t.Errorf("Expected 1 failed texture, got %d", tm.GetStats().FailedTextures)
	}
}

func TestTextureMarkUploaded(t *testing.T) {
	path := writePNG(t, t.TempDir(), "tex.png")
	tm := NewTextureManager(1)
	defer tm.Close()

	texture := tm.Load(path)
	tm.Wait()

	if texture.takePixels() == nil {
		t.Fatal("Decoded texture should hand out its pixels")
	}
	texture.markUploaded(9)

	if texture.State() != TEXTURE_UPLOADED || texture.ID() != 9 {
		t.Errorf("Expected uploaded texture with id 9, got %v/%d", texture.State(), texture.ID())
	}
	if texture.takePixels() != nil {
		t.Error("Uploaded texture should not be uploaded twice")
	}
}

func TestTextureUploadReleasesPixels(t *testing.T) {
	texture := &Texture{Path: "mem.png", state: TEXTURE_PENDING}
	texture.resolve(image.NewRGBA(image.Rect(0, 0, 8, 4)), nil)

	texture.takePixels()
	texture.markUploaded(3)

	if texture.pixels != nil {
		t.Error("Uploaded texture should drop its decoded pixels")
	}
	if w, h := texture.Size(); w != 8 || h != 4 {
		t.Errorf("Expected size 8x4 after upload, got %dx%d", w, h)
	}
}
