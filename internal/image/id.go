package image

import gonanoid "github.com/matoous/go-nanoid/v2"

// IDLength is the number of characters in a generated identifier. With the
// 64-symbol nanoid alphabet this gives 126 bits of randomness.
const IDLength = 21

// NewID returns a random URL-safe identifier used as an object's base name.
// No uniqueness check against the store is performed.
func NewID() string {
	return gonanoid.Must(IDLength)
}
