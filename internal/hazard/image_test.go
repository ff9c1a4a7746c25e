package hazard

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestReadImageDetectsType(t *testing.T) {
	img, err := ReadImage(bytes.NewReader(pngHeader), 1024)
	if err != nil {
		t.Fatalf("read image: %v", err)
	}
	if img.MIME != "image/png" {
		t.Fatalf("expected image/png, got %s", img.MIME)
	}
	if !bytes.Equal(img.Data, pngHeader) {
		t.Fatal("expected bytes stored as read")
	}
}

func TestReadImageLimits(t *testing.T) {
	if _, err := ReadImage(bytes.NewReader(make([]byte, 11)), 10); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected oversize image to be rejected, got %v", err)
	}
	if _, err := ReadImage(bytes.NewReader(make([]byte, 10)), 10); err != nil {
		t.Fatalf("expected image at limit to be accepted, got %v", err)
	}
	if _, err := ReadImage(bytes.NewReader(nil), 10); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected empty image to be rejected, got %v", err)
	}
	if _, err := ReadImage(bytes.NewReader(make([]byte, 4096)), 0); err != nil {
		t.Fatalf("expected no cap with zero limit, got %v", err)
	}
}

func TestReadImageFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "smoke.png")
	if err := os.WriteFile(path, pngHeader, 0o644); err != nil {
		t.Fatal(err)
	}
	img, err := ReadImageFile(path, 0)
	if err != nil {
		t.Fatalf("read image file: %v", err)
	}
	if img.MIME != "image/png" {
		t.Fatalf("expected image/png, got %s", img.MIME)
	}

	if _, err := ReadImageFile(filepath.Join(t.TempDir(), "missing.png"), 0); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestDataURL(t *testing.T) {
	img := &Image{MIME: "image/jpeg", Data: []byte{0xff, 0xd8, 0xff}}
	url := img.DataURL()
	if url != "data:image/jpeg;base64,/9j/" {
		t.Fatalf("unexpected data URL %s", url)
	}
	back, err := ParseDataURL(url)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if back.MIME != img.MIME || !bytes.Equal(back.Data, img.Data) {
		t.Fatalf("expected %+v, got %+v", img, back)
	}

	for _, bad := range []string{"image/png;base64,AAAA", "data:image/png;base64", "data:image/png,AAAA", "data:image/png;base64,@@"} {
		if _, err := ParseDataURL(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestParseLocation(t *testing.T) {
	loc, err := ParseLocation(" 12.5 ", "-77.25")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if *loc != (Location{Lat: 12.5, Lng: -77.25}) {
		t.Fatalf("unexpected location %v", loc)
	}
	if !strings.Contains(loc.MapURL(), "mlat=12.500000") {
		t.Fatalf("unexpected map url %s", loc.MapURL())
	}

	for _, tc := range [][2]string{{"", "1"}, {"1", ""}, {"north", "1"}, {"1", "east"}, {"91", "0"}, {"0", "-181"}, {"NaN", "0"}} {
		if _, err := ParseLocation(tc[0], tc[1]); !errors.Is(err, ErrValidation) {
			t.Fatalf("expected validation error for %v, got %v", tc, err)
		}
	}
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory(" Water ")
	if err != nil || c != Water {
		t.Fatalf("expected water, got %q err=%v", c, err)
	}
	if _, err := ParseCategory("noise"); err == nil {
		t.Fatal("expected unknown category to fail")
	}
	if Air.Urgency() <= Water.Urgency() || Water.Urgency() <= Waste.Urgency() {
		t.Fatal("expected air > water > waste urgency")
	}
}
