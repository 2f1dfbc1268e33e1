package image

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	pngBytes  = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00\x1f\x15\xc4\x89")
	jpegBytes = []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00\x01\x01\x00\x00\x01\x00\x01\x00\x00")
	pdfBytes  = []byte("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n1 0 obj\n<<>>\nendobj\n")
	// No known signature and not text.
	opaqueBytes = []byte{0x13, 0x37, 0xc0, 0xde, 0x00, 0xff, 0x42, 0x99}
)

func TestResolveContentTypeSniffs(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		filename string
		ext      string
		mime     string
		original string
	}{
		{"png", pngBytes, "photo.png", "png", "image/png", "photo"},
		{"jpeg", jpegBytes, "photo.jpg", "jpg", "image/jpeg", "photo"},
		{"pdf", pdfBytes, "report.pdf", "pdf", "application/pdf", "report"},
		// Content wins over a misleading client name.
		{"png named jpg", pngBytes, "photo.jpg", "png", "image/png", "photo"},
		{"multiple dots", pngBytes, "my.trip.photo.png", "png", "image/png", "my.trip.photo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ct, err := ResolveContentType(tt.data, tt.filename)
			require.NoError(t, err)
			assert.Equal(t, tt.ext, ct.Extension)
			assert.Equal(t, tt.mime, ct.MIME)
			assert.Equal(t, tt.original, ct.OriginalFilename)
		})
	}
}

func TestResolveContentTypeFallsBackToFilename(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		filename string
		ext      string
		original string
	}{
		{"legacy binary", opaqueBytes, "budget.xls", "xls", "budget"},
		{"plain text", []byte("just some notes\n"), "notes.md", "md", "notes"},
		{"csv text", []byte("name, age\nbob, 3\nann, 4\n"), "notes.txt", "txt", "notes"},
		{"html text", []byte("<html><body><p>hello</p></body></html>"), "page.txt", "txt", "page"},
		{"json text", []byte(`{"a": 1}`), "cfg.txt", "txt", "cfg"},
		{"empty file", nil, "empty.dat", "dat", "empty"},
		{"multiple dots", opaqueBytes, "my.trip.photo.raw", "raw", "my.trip.photo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ct, err := ResolveContentType(tt.data, tt.filename)
			require.NoError(t, err)
			assert.Equal(t, tt.ext, ct.Extension)
			assert.Equal(t, FallbackMIME, ct.MIME)
			assert.Equal(t, tt.original, ct.OriginalFilename)
		})
	}
}

func TestResolveContentTypeInvalidFilename(t *testing.T) {
	for _, filename := range []string{"", "photo", "photo.", ".png", "photo.tar-gz"} {
		t.Run(filename, func(t *testing.T) {
			_, err := ResolveContentType(pngBytes, filename)
			assert.ErrorIs(t, err, ErrInvalidFilename)
		})
	}
}

var idAlphabet = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

func TestNewID(t *testing.T) {
	seen := make(map[string]bool, 1000)
	for i := 0; i < 1000; i++ {
		id := NewID()
		require.Len(t, id, IDLength)
		require.Regexp(t, idAlphabet, id)
		require.False(t, seen[id], "duplicate id %q", id)
		seen[id] = true
	}
}
