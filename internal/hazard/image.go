package hazard

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"strings"
)

// Image is an embedded photo of the hazard. The bytes are stored as read.
type Image struct {
	MIME string
	Data []byte
}

// ReadImage reads an image payload fully. limit caps the accepted size in
// bytes; zero or less means no cap.
func ReadImage(r io.Reader, limit int64) (*Image, error) {
	if limit > 0 {
		r = io.LimitReader(r, limit+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	if limit > 0 && int64(len(data)) > limit {
		return nil, &ValidationError{Field: "image", Reason: fmt.Sprintf("larger than %d bytes", limit)}
	}
	if len(data) == 0 {
		return nil, &ValidationError{Field: "image", Reason: "file is empty"}
	}
	return &Image{MIME: http.DetectContentType(data), Data: data}, nil
}

// Validate checks that the image survives storage as a data URL: the media
// type must parse and must not contain a comma.
func (img *Image) Validate() error {
	if strings.Contains(img.MIME, ",") {
		return &ValidationError{Field: "image", Reason: fmt.Sprintf("media type %q contains a comma", img.MIME)}
	}
	if _, _, err := mime.ParseMediaType(img.MIME); err != nil {
		return &ValidationError{Field: "image", Reason: fmt.Sprintf("media type %q: %v", img.MIME, err)}
	}
	return nil
}

// ReadImageFile opens path and reads it with ReadImage.
func ReadImageFile(path string, limit int64) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image %s: %w", path, err)
	}
	defer f.Close()
	return ReadImage(f, limit)
}

// DataURL renders the image as a data: URL.
func (img *Image) DataURL() string {
	return "data:" + img.MIME + ";base64," + base64.StdEncoding.EncodeToString(img.Data)
}

// ParseDataURL decodes a base64 data: URL.
func ParseDataURL(s string) (*Image, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return nil, fmt.Errorf("not a data URL")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, fmt.Errorf("data URL has no payload")
	}
	mime, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return nil, fmt.Errorf("data URL is not base64 encoded")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode data URL: %w", err)
	}
	if mime == "" {
		mime = "application/octet-stream"
	}
	return &Image{MIME: mime, Data: data}, nil
}

// MarshalJSON encodes the image as a data URL string.
func (img *Image) MarshalJSON() ([]byte, error) {
	if img == nil {
		return []byte("null"), nil
	}
	return json.Marshal(img.DataURL())
}

// UnmarshalJSON decodes a data URL string.
func (img *Image) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("decode image: %w", err)
	}
	parsed, err := ParseDataURL(s)
	if err != nil {
		return err
	}
	*img = *parsed
	return nil
}
