package image

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// ErrInvalidFilename is returned when a filename has no "name.ext" shape.
var ErrInvalidFilename = errors.New("invalid filename")

// FallbackMIME is reported when the content carries no recognizable signature.
const FallbackMIME = "application/octet-stream"

// filenamePattern captures everything before the last dot and the word
// characters after it.
var filenamePattern = regexp.MustCompile(`^(.+)\.(\w+)$`)

// ContentType is the outcome of resolving an upload's type.
type ContentType struct {
	Extension        string // without the leading dot
	MIME             string
	OriginalFilename string // filename with its final extension stripped
}

// ResolveContentType sniffs data for a binary signature and falls back to the
// filename's extension when sniffing is inconclusive. A filename that does not
// match name.ext fails with ErrInvalidFilename even when sniffing succeeds.
func ResolveContentType(data []byte, filename string) (*ContentType, error) {
	m := filenamePattern.FindStringSubmatch(filename)
	if m == nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFilename, filename)
	}
	ct := &ContentType{OriginalFilename: m[1]}

	if ext, mime, ok := sniff(data); ok {
		ct.Extension, ct.MIME = ext, mime
		return ct, nil
	}
	// Legacy formats such as doc or xls have no usable signature.
	ct.Extension, ct.MIME = m[2], FallbackMIME
	return ct, nil
}

// sniff reports the extension and MIME type detected from data. Anything in
// the text/plain subtree (csv, html, json, xml...) is a heuristic guess rather
// than a signature, so it counts as inconclusive.
func sniff(data []byte) (ext, mime string, ok bool) {
	if len(data) == 0 {
		return "", "", false
	}
	detected := mimetype.Detect(data)
	if detected.Is(FallbackMIME) {
		return "", "", false
	}
	for m := detected; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return "", "", false
		}
	}
	ext = strings.TrimPrefix(detected.Extension(), ".")
	if ext == "" {
		return "", "", false
	}
	mime = detected.String()
	if i := strings.IndexByte(mime, ';'); i != -1 {
		mime = strings.TrimSpace(mime[:i])
	}
	return ext, mime, true
}
