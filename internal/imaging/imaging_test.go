package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
)

// createSplitImage fills the left part with left and the rest with right.
func createSplitImage(width, height, leftCols int, left, right color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if x < leftCols {
				img.Set(x, y, left)
			} else {
				img.Set(x, y, right)
			}
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestExtractPalette_TwoColors(t *testing.T) {
	img := createSplitImage(30, 10, 20, color.RGBA{255, 0, 0, 255}, color.RGBA{0, 0, 255, 255})

	swatches, err := ExtractPalette(img, DefaultPaletteOptions())
	if err != nil {
		t.Fatalf("ExtractPalette failed: %v", err)
	}
	if len(swatches) != 2 {
		t.Fatalf("expected 2 swatches, got %d: %+v", len(swatches), swatches)
	}
	if swatches[0].Hex != "#ff0000" {
		t.Errorf("first swatch: got %s, want #ff0000", swatches[0].Hex)
	}
	if swatches[1].Hex != "#0000ff" {
		t.Errorf("second swatch: got %s, want #0000ff", swatches[1].Hex)
	}
	if swatches[0].Share < 0.66 || swatches[0].Share > 0.67 {
		t.Errorf("red share: got %v, want ~0.667", swatches[0].Share)
	}
	if swatches[0].R != 255 || swatches[0].G != 0 || swatches[0].B != 0 {
		t.Errorf("red rgb: got (%d,%d,%d)", swatches[0].R, swatches[0].G, swatches[0].B)
	}
}

func TestExtractPalette_MergesNearColors(t *testing.T) {
	// 250,0,0 and 255,0,0 land in the same quantization bucket anyway; use
	// values across a bucket boundary that are visually identical.
	img := createSplitImage(20, 20, 10, color.RGBA{0x7F, 0x7F, 0x7F, 255}, color.RGBA{0x80, 0x80, 0x80, 255})

	swatches, err := ExtractPalette(img, DefaultPaletteOptions())
	if err != nil {
		t.Fatalf("ExtractPalette failed: %v", err)
	}
	if len(swatches) != 1 {
		t.Fatalf("expected near-identical grays to merge, got %+v", swatches)
	}
	if swatches[0].Share != 1 {
		t.Errorf("expected merged share 1, got %v", swatches[0].Share)
	}
}

func TestExtractPalette_RespectsCount(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 40, 10))
	colors := []color.RGBA{
		{255, 0, 0, 255}, {0, 255, 0, 255}, {0, 0, 255, 255}, {255, 255, 0, 255},
	}
	for y := 0; y < 10; y++ {
		for x := 0; x < 40; x++ {
			img.Set(x, y, colors[x/10])
		}
	}

	opts := DefaultPaletteOptions()
	opts.Count = 2
	swatches, err := ExtractPalette(img, opts)
	if err != nil {
		t.Fatalf("ExtractPalette failed: %v", err)
	}
	if len(swatches) != 2 {
		t.Fatalf("expected 2 swatches, got %d", len(swatches))
	}
}

func TestExtractPalette_TransparentImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	if _, err := ExtractPalette(img, DefaultPaletteOptions()); !errors.Is(err, ErrEmptyImage) {
		t.Fatalf("expected ErrEmptyImage, got %v", err)
	}
}

func TestExtractPalette_DownscalesLargeImages(t *testing.T) {
	img := createSplitImage(600, 300, 300, color.RGBA{0, 200, 0, 255}, color.RGBA{255, 255, 255, 255})
	swatches, err := ExtractPalette(img, DefaultPaletteOptions())
	if err != nil {
		t.Fatalf("ExtractPalette failed: %v", err)
	}
	if len(swatches) == 0 || len(swatches) > 5 {
		t.Fatalf("unexpected swatch count %d", len(swatches))
	}
}

func TestDecode(t *testing.T) {
	data := encodePNG(t, createSplitImage(4, 3, 2, color.Black, color.White))
	img, mime, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if mime != "image/png" {
		t.Errorf("mime: got %s, want image/png", mime)
	}
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 3 {
		t.Errorf("unexpected bounds %v", img.Bounds())
	}

	if _, _, err := Decode([]byte("definitely not an image")); !errors.Is(err, ErrUnsupportedImage) {
		t.Errorf("expected ErrUnsupportedImage, got %v", err)
	}
	if _, _, err := Decode(nil); !errors.Is(err, ErrUnsupportedImage) {
		t.Errorf("expected ErrUnsupportedImage for empty data, got %v", err)
	}
}

func TestParseDataURL(t *testing.T) {
	payload := []byte{1, 2, 3, 4}
	url := "data:image/png;base64," + base64.StdEncoding.EncodeToString(payload)

	mime, data, err := ParseDataURL(url)
	if err != nil {
		t.Fatalf("ParseDataURL: %v", err)
	}
	if mime != "image/png" || !bytes.Equal(data, payload) {
		t.Errorf("got mime=%s data=%v", mime, data)
	}

	tests := []string{
		"",
		"image/png;base64,AAAA",
		"data:image/png;base64",
		"data:text/plain,hello",
		"data:image/png;base64,!!!",
	}
	for _, tt := range tests {
		if _, _, err := ParseDataURL(tt); err == nil {
			t.Errorf("ParseDataURL(%q): expected error", tt)
		}
	}
}

func TestIsImageMimeAndPath(t *testing.T) {
	if !IsImageMime("Image/PNG") || IsImageMime("text/plain") {
		t.Error("IsImageMime misclassified")
	}
	if !IsImagePath("/tmp/shot.JPG") || IsImagePath("/tmp/notes.md") {
		t.Error("IsImagePath misclassified")
	}
}

func TestRegistry_RegisterServeRelease(t *testing.T) {
	r := NewRegistry("/images")
	data := encodePNG(t, createSplitImage(5, 5, 2, color.Black, color.White))

	h, err := r.Register(data)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if h.URL != "/images/"+h.ID {
		t.Errorf("unexpected URL %s", h.URL)
	}
	if h.Width != 5 || h.Height != 5 || h.Mime != "image/png" {
		t.Errorf("unexpected handle %+v", h)
	}
	if _, err := r.Image(h.ID); err != nil {
		t.Errorf("Image: %v", err)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, h.URL, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get("Content-Type") != "image/png" {
		t.Errorf("unexpected content type %q", rec.Header().Get("Content-Type"))
	}
	if !bytes.Equal(rec.Body.Bytes(), data) {
		t.Error("served bytes differ from registered bytes")
	}

	r.Release(h.ID)
	r.Release(h.ID)
	if r.Len() != 0 {
		t.Errorf("expected empty registry, got %d", r.Len())
	}
	if _, err := r.Image(h.ID); !errors.Is(err, ErrHandleNotFound) {
		t.Errorf("expected ErrHandleNotFound, got %v", err)
	}
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, h.URL, nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 after release, got %d", rec.Code)
	}
}

func TestRegistry_RejectsGarbage(t *testing.T) {
	r := NewRegistry("/images/")
	if _, err := r.Register([]byte("nope")); !errors.Is(err, ErrUnsupportedImage) {
		t.Fatalf("expected ErrUnsupportedImage, got %v", err)
	}
	if r.Len() != 0 {
		t.Errorf("garbage should not be registered")
	}
}

func TestRegistry_HandlesAreDistinct(t *testing.T) {
	r := NewRegistry("/images/")
	data := encodePNG(t, createSplitImage(2, 2, 1, color.Black, color.White))
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		h, err := r.Register(data)
		if err != nil {
			t.Fatalf("Register: %v", err)
		}
		if seen[h.ID] {
			t.Fatalf("duplicate handle %s", h.ID)
		}
		seen[h.ID] = true
	}
}
